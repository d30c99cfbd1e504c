package importer

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-sync/internal/logging"
	"fjacquet/budget-sync/internal/models"
	"fjacquet/budget-sync/internal/parsererror"

	"github.com/gocarina/gocsv"
)

// merchantColumns are the header names a feed must provide at least one of.
var merchantColumns = []string{"Payee", "Description"}

// headerRecorder keeps the header row gocsv reads and strips a UTF-8 byte
// order mark from it.
type headerRecorder struct {
	gocsv.CSVReader
	header  []string
	readErr error
}

func (h *headerRecorder) ReadAll() ([][]string, error) {
	rows, err := h.CSVReader.ReadAll()
	h.readErr = err
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
		h.header = rows[0]
	}
	return rows, err
}

func (h *headerRecorder) hasAny(columns ...string) bool {
	for _, col := range h.header {
		for _, want := range columns {
			if strings.EqualFold(strings.TrimSpace(col), want) {
				return true
			}
		}
	}
	return false
}

// ReadCSV reads raw transactions from a CSV feed with the given delimiter.
// Amounts that cannot be parsed are kept as zero and logged.
func ReadCSV(r io.Reader, delimiter rune, name string, logger logging.Logger) ([]models.RawTransaction, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	csvReader := csv.NewReader(r)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	recorder := &headerRecorder{CSVReader: csvReader}

	var rows []models.RawTransaction
	err := gocsv.UnmarshalCSV(recorder, &rows)
	switch {
	case recorder.readErr != nil:
		return nil, fmt.Errorf("error reading CSV file: %w", recorder.readErr)
	case recorder.header == nil:
		return nil, &parsererror.ValidationError{FilePath: name, Reason: "file is empty"}
	case !recorder.hasAny(merchantColumns...):
		return nil, &parsererror.InvalidFormatError{
			FilePath:       name,
			ExpectedFormat: "CSV with a Payee or Description column",
			Msg:            "missing merchant column",
		}
	case err != nil:
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	for i := range rows {
		rows[i].Source = models.SourceCSV
		if strings.TrimSpace(rows[i].AmountText) == "" {
			continue
		}
		amount, ok := models.ParseAmount(rows[i].AmountText)
		if !ok {
			err := &parsererror.ParseError{
				Parser: "CSV",
				Row:    i + 2, // header is row 1
				Field:  "Amount",
				Value:  rows[i].AmountText,
				Err:    errors.New("not a number"),
			}
			logger.WithError(err).Warn("Keeping row with zero amount",
				logging.Field{Key: logging.FieldRow, Value: i + 2})
		}
		rows[i].Amount = amount
	}

	logger.Debug("Read CSV feed",
		logging.Field{Key: logging.FieldInputFile, Value: name},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

// ReadJSON reads a bank-sync feed: a JSON array of transactions.
func ReadJSON(r io.Reader, name string) ([]models.RawTransaction, error) {
	var rows []models.RawTransaction
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &parsererror.ValidationError{FilePath: name, Reason: "file is empty"}
		}
		return nil, fmt.Errorf("error parsing JSON feed: %w", err)
	}
	for i := range rows {
		if rows[i].Source == "" {
			rows[i].Source = models.SourceBankSync
		}
	}
	return rows, nil
}

// WriteCSV writes imported transactions with the given delimiter.
func WriteCSV(w io.Writer, rows []models.ImportedTransaction, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
