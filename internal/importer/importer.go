// Package importer turns raw transaction feeds into imported transactions:
// every merchant name is resolved to a vendor and given a category.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/budget-sync/internal/categorizer"
	"fjacquet/budget-sync/internal/dateutils"
	"fjacquet/budget-sync/internal/fileutils"
	"fjacquet/budget-sync/internal/logging"
	"fjacquet/budget-sync/internal/models"
	"fjacquet/budget-sync/internal/parsererror"
	"fjacquet/budget-sync/internal/store"
	"fjacquet/budget-sync/internal/vendormatch"
)

// Options controls the CSV dialect of input and output files.
type Options struct {
	Delimiter  rune
	DateLayout string // Go layout for output dates; empty keeps dates as read
}

// Stats summarizes one import.
type Stats struct {
	vendormatch.BatchStats
	Categorized   int
	Uncategorized int
}

// Result is the outcome of one import.
type Result struct {
	Transactions []models.ImportedTransaction
	Vendors      []models.Vendor // the owner's vendors after the import
	Stats        Stats
}

// Importer runs the import pipeline. Transactions of one import are
// processed sequentially in feed order.
type Importer struct {
	vendors     store.VendorLister
	resolver    *vendormatch.Resolver
	categorizer *categorizer.Categorizer
	opts        Options
	logger      logging.Logger
}

// New creates an Importer.
func New(vendors store.VendorLister, resolver *vendormatch.Resolver, cat *categorizer.Categorizer, opts Options, logger logging.Logger) *Importer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	return &Importer{
		vendors:     vendors,
		resolver:    resolver,
		categorizer: cat,
		opts:        opts,
		logger:      logger,
	}
}

// Import resolves and categorizes txs for owner. A failure to list the
// owner's vendors is logged and the batch starts from an empty snapshot.
// Only context cancellation aborts an import.
func (im *Importer) Import(ctx context.Context, owner string, txs []models.RawTransaction) (*Result, error) {
	r := im.start(ctx, owner)
	rows, err := r.add(ctx, txs)
	if err != nil {
		return nil, err
	}
	return r.finish(rows), nil
}

// run is one import: a vendor batch plus category counters.
type run struct {
	im    *Importer
	owner string
	batch *vendormatch.Batch
	stats Stats
}

func (im *Importer) start(ctx context.Context, owner string) *run {
	existing, err := im.vendors.ListVendors(ctx, owner)
	if err != nil {
		im.logger.WithError(err).Warn("Failed to list vendors, matching against an empty list",
			logging.Field{Key: logging.FieldOwner, Value: owner})
		existing = nil
	}
	return &run{im: im, owner: owner, batch: im.resolver.NewBatch(owner, existing)}
}

func (r *run) add(ctx context.Context, txs []models.RawTransaction) ([]models.ImportedTransaction, error) {
	rows := make([]models.ImportedTransaction, 0, len(txs))
	for i, tx := range txs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("import cancelled at row %d: %w", i+1, err)
		}

		res := r.batch.Resolve(ctx, tx.MerchantName())
		out := models.ImportedTransaction{
			Date:         r.im.formatDate(tx.Date),
			RawPayee:     tx.MerchantName(),
			Description:  tx.Description,
			Amount:       tx.Amount.StringFixed(2),
			Reference:    tx.Reference,
			VendorID:     res.VendorID,
			VendorName:   res.VendorName,
			VendorIsNew:  res.IsNew,
			CategoryName: models.CategoryUncategorized,
		}

		if res.VendorName != "" {
			r.im.categorize(&out, res.VendorName)
		}
		if out.CategoryID != "" {
			r.stats.Categorized++
		} else {
			r.stats.Uncategorized++
		}
		rows = append(rows, out)
	}
	return rows, nil
}

func (r *run) finish(rows []models.ImportedTransaction) *Result {
	r.stats.BatchStats = r.batch.Stats()
	result := &Result{Transactions: rows, Vendors: r.batch.Vendors(), Stats: r.stats}

	r.im.logger.Info("Import finished",
		logging.Field{Key: logging.FieldOwner, Value: r.owner},
		logging.Field{Key: logging.FieldCount, Value: len(rows)},
		logging.Field{Key: "created", Value: r.stats.Created},
		logging.Field{Key: "matched", Value: r.stats.Matched},
		logging.Field{Key: "cached", Value: r.stats.Cached},
		logging.Field{Key: "degraded", Value: r.stats.Degraded},
		logging.Field{Key: "uncategorized", Value: r.stats.Uncategorized})
	return result
}

func (im *Importer) categorize(out *models.ImportedTransaction, vendorName string) {
	if im.categorizer == nil {
		return
	}
	suggestion, category, err := im.categorizer.Categorize(vendorName)
	if err != nil {
		im.logger.WithError(err).Warn("Failed to create category, leaving transaction uncategorized",
			logging.Field{Key: logging.FieldVendorName, Value: vendorName})
	}
	if suggestion != nil {
		out.SuggestedCategory = suggestion.CategoryKeyword
		out.SuggestedGroup = suggestion.GroupKeyword
		out.Confidence = suggestion.Confidence
	}
	if category != nil {
		out.CategoryID = category.ID
		out.CategoryName = category.Name
	}
}

func (im *Importer) formatDate(date string) string {
	if im.opts.DateLayout == "" || strings.TrimSpace(date) == "" {
		return date
	}
	formatted, err := dateutils.Reformat(date, im.opts.DateLayout)
	if err != nil {
		im.logger.Debug("Keeping unparsable date as read",
			logging.Field{Key: "date", Value: date})
		return date
	}
	return formatted
}

// ImportFile reads a feed from inputFile, imports it for owner and writes
// the enriched transactions to outputFile. Files ending in .json are read as
// bank-sync feeds; anything else as CSV.
func (im *Importer) ImportFile(ctx context.Context, owner, inputFile, outputFile string) (*Result, error) {
	txs, err := im.ReadFile(inputFile)
	if err != nil {
		return nil, err
	}

	result, err := im.Import(ctx, owner, txs)
	if err != nil {
		return nil, err
	}

	if err := im.WriteFile(outputFile, result.Transactions); err != nil {
		return nil, err
	}
	return result, nil
}

// FeedExtensions are the file extensions ImportDir picks up.
var FeedExtensions = []string{".csv", ".json"}

// ImportDir imports every feed file of inputDir, in name order, as one batch:
// a vendor created for one file is matched by the files after it. Each file
// is written to outputDir as <name>-imported.csv. A file that cannot be read
// is logged and skipped.
func (im *Importer) ImportDir(ctx context.Context, owner, inputDir, outputDir string) (*Result, error) {
	files, err := fileutils.ListFilesWithExtension(inputDir, FeedExtensions...)
	if err != nil {
		return nil, &parsererror.ValidationError{FilePath: inputDir, Reason: err.Error()}
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, err
	}

	r := im.start(ctx, owner)
	var all []models.ImportedTransaction

	for _, file := range files {
		txs, err := im.ReadFile(file)
		if err != nil {
			im.logger.WithError(err).Warn("Skipping unreadable feed",
				logging.Field{Key: logging.FieldInputFile, Value: file})
			continue
		}

		rows, err := r.add(ctx, txs)
		if err != nil {
			return nil, err
		}

		if err := im.WriteFile(filepath.Join(outputDir, OutputName(file)), rows); err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}

	return r.finish(all), nil
}

// OutputName returns the output file name for an input feed.
func OutputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "-imported.csv"
}

// ReadFile validates and reads a feed file.
func (im *Importer) ReadFile(path string) ([]models.RawTransaction, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &parsererror.ValidationError{FilePath: path, Reason: "file does not exist"}
		}
		return nil, fmt.Errorf("error checking input file: %w", err)
	}
	if info.IsDir() {
		return nil, &parsererror.ValidationError{FilePath: path, Reason: "path is a directory"}
	}

	im.logger.Info("Reading input file",
		logging.Field{Key: logging.FieldInputFile, Value: path},
		logging.Field{Key: logging.FieldDelimiter, Value: string(im.opts.Delimiter)})

	file, err := os.Open(path) // #nosec G304 -- user-supplied input path
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			im.logger.WithError(cerr).Warn("Failed to close input file")
		}
	}()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(file, path)
	}
	return ReadCSV(file, im.opts.Delimiter, path, im.logger)
}

// WriteFile writes imported transactions as CSV, creating the parent
// directory when needed.
func (im *Importer) WriteFile(path string, rows []models.ImportedTransaction) error {
	if err := fileutils.EnsureDirectoryExists(filepath.Dir(path)); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReport) // #nosec G304 -- user-supplied output path
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}

	if err := WriteCSV(file, rows, im.opts.Delimiter); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing output file: %w", err)
	}

	im.logger.Info("Successfully wrote transactions",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}
