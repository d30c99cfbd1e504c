// Package importcmd imports a transaction feed.
package importcmd

import (
	"fmt"
	"path/filepath"

	"fjacquet/budget-sync/cmd/root"
	"fjacquet/budget-sync/internal/fileutils"
	"fjacquet/budget-sync/internal/importer"

	"github.com/spf13/cobra"
)

var (
	inputFile  string
	outputFile string
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a transaction feed",
	Long: `Import a CSV (or bank-sync JSON) transaction feed. Every merchant name is
resolved to one of the owner's vendors, creating vendors as needed, and given a
category suggestion. The enriched transactions are written as CSV.`,
	RunE: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (.csv or .json) or directory of feeds")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file, or directory when importing a directory")
	_ = Cmd.MarkFlagRequired("input")
}

// DefaultOutput returns the output path used when none is given: next to a
// feed file, or an "imported" directory inside a feed directory.
func DefaultOutput(input string) string {
	if fileutils.DirectoryExists(input) {
		return filepath.Join(input, "imported")
	}
	return filepath.Join(filepath.Dir(input), importer.OutputName(input))
}

func importFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}
	defer root.CloseContainer(c)

	output := outputFile
	if output == "" {
		output = DefaultOutput(inputFile)
	}

	imp := c.GetImporter()
	var result *importer.Result
	if fileutils.DirectoryExists(inputFile) {
		result, err = imp.ImportDir(root.Context(cmd), root.Owner(), inputFile, output)
	} else {
		result, err = imp.ImportFile(root.Context(cmd), root.Owner(), inputFile, output)
	}
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	s := result.Stats
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "imported %d transactions into %s\n", s.Total(), output)
	fmt.Fprintf(out, "vendors: %d cached, %d matched, %d created, %d unlinked, %d blank\n",
		s.Cached, s.Matched, s.Created, s.Degraded, s.Skipped)
	fmt.Fprintf(out, "categories: %d categorized, %d uncategorized\n", s.Categorized, s.Uncategorized)
	return nil
}
