// Package resolve resolves one raw merchant name to a vendor.
package resolve

import (
	"fmt"

	"fjacquet/budget-sync/cmd/root"

	"github.com/spf13/cobra"
)

var rawName string

// Cmd represents the resolve command
var Cmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a raw merchant name to a vendor",
	Long: `Resolve a raw merchant name, as it appears on a bank statement, to one of the
owner's vendors. Known names are answered from the stored mappings, close names
match an existing vendor, and anything else creates a new vendor.`,
	RunE: resolveFunc,
}

func init() {
	Cmd.Flags().StringVarP(&rawName, "name", "n", "", "Raw merchant name")
	_ = Cmd.MarkFlagRequired("name")
}

func resolveFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}
	defer root.CloseContainer(c)

	ctx := root.Context(cmd)
	owner := root.Owner()
	logger := c.GetLogger()

	vendors, err := c.GetVendorStore().ListVendors(ctx, owner)
	if err != nil {
		logger.WithError(err).Warn("Failed to list vendors, matching against an empty list")
		vendors = nil
	}

	res := c.GetResolver().Resolve(ctx, owner, rawName, vendors)
	if res.VendorName == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to resolve")
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "vendor_id: %s\n", res.VendorID)
	fmt.Fprintf(out, "vendor_name: %s\n", res.VendorName)
	fmt.Fprintf(out, "is_new: %t\n", res.IsNew)
	if res.Degraded() {
		fmt.Fprintln(out, "warning: vendor could not be stored")
	}
	return nil
}
