// Package suggest prints the category suggestion for a vendor name.
package suggest

import (
	"fmt"

	"fjacquet/budget-sync/cmd/root"
	"fjacquet/budget-sync/internal/categorizer"
	"fjacquet/budget-sync/internal/logging"
	"fjacquet/budget-sync/internal/store"

	"github.com/spf13/cobra"
)

var (
	vendorName string
	explain    bool
)

// Cmd represents the suggest command
var Cmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest a category for a vendor name",
	Long: `Suggest a category for a vendor name from the built-in rule table, falling
back to the user's own category names. The suggestion is resolved against the
category list when one matches.`,
	RunE: suggestFunc,
}

func init() {
	Cmd.Flags().StringVarP(&vendorName, "name", "n", "", "Vendor name")
	Cmd.Flags().BoolVarP(&explain, "explain", "e", false, "Show the result of every strategy")
	_ = Cmd.MarkFlagRequired("name")
}

func suggestFunc(cmd *cobra.Command, args []string) error {
	if root.AppConfig == nil {
		if err := root.LoadConfig(); err != nil {
			return err
		}
	}

	// No vendor store is needed, so the container is not built.
	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	categoryStore := store.NewCategoryStore(root.AppConfig.Categories.File, logger)
	cat := categorizer.NewCategorizer(categoryStore, logger)

	out := cmd.OutOrStdout()

	if explain {
		results := cat.Explain(vendorName)
		fmt.Fprintf(out, "preprocessed: %s\n", results.Preprocessed)
		fmt.Fprintf(out, "strategies: %s\n", results.Summary())
	}

	suggestion := cat.Suggest(vendorName)
	if suggestion == nil {
		fmt.Fprintln(out, "no suggestion")
		return nil
	}

	fmt.Fprintf(out, "category: %s\n", suggestion.CategoryKeyword)
	fmt.Fprintf(out, "group: %s\n", suggestion.GroupKeyword)
	fmt.Fprintf(out, "confidence: %s\n", suggestion.Confidence)
	fmt.Fprintf(out, "reason: %s\n", suggestion.Reason)

	if category := categorizer.ResolveCategory(suggestion, cat.Categories()); category != nil {
		fmt.Fprintf(out, "user_category: %s (%s)\n", category.Name, category.ID)
	}
	return nil
}
