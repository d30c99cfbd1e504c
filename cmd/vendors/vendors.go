// Package vendors lists and deletes an owner's vendors.
package vendors

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"fjacquet/budget-sync/cmd/root"
	"fjacquet/budget-sync/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the vendors command
var Cmd = &cobra.Command{
	Use:   "vendors",
	Short: "List the owner's vendors",
	Long:  `List the vendors known for the owner, oldest first.`,
	RunE:  listFunc,
}

// DeleteCmd removes one vendor.
var DeleteCmd = &cobra.Command{
	Use:   "delete <vendor-id>",
	Short: "Delete a vendor",
	Long: `Delete a vendor. Raw names that mapped to it are resolved again on their
next import.`,
	Args: cobra.ExactArgs(1),
	RunE: deleteFunc,
}

func init() {
	Cmd.AddCommand(DeleteCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}
	defer root.CloseContainer(c)

	list, err := c.GetVendorStore().ListVendors(root.Context(cmd), root.Owner())
	if err != nil {
		return fmt.Errorf("failed to list vendors: %w", err)
	}

	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no vendors")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED")
	for _, v := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", v.ID, v.Name, v.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func deleteFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}
	defer root.CloseContainer(c)

	id := args[0]
	if err := c.GetVendorStore().DeleteVendor(root.Context(cmd), root.Owner(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("vendor %s not found", id)
		}
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted vendor %s\n", id)
	return nil
}
