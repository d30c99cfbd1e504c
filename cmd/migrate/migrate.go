// Package migrate applies the SQL schema migrations of the vendor store.
package migrate

import (
	"fmt"

	"fjacquet/budget-sync/cmd/root"

	"github.com/spf13/cobra"
)

var down bool

// Cmd represents the migrate command
var Cmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Long: `Apply pending schema migrations for the postgres and sqlite storage drivers.
With --down the most recent migration is rolled back instead.`,
	RunE: migrateFunc,
}

func init() {
	Cmd.Flags().BoolVar(&down, "down", false, "Roll back the most recent migration")
}

func migrateFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}
	defer root.CloseContainer(c)

	m, err := c.GetMigrator()
	if err != nil {
		return err
	}

	if down {
		err = m.Rollback()
	} else {
		err = m.Migrate()
	}
	if err != nil {
		return err
	}

	version, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
	return nil
}
