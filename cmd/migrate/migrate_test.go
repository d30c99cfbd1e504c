package migrate_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"fjacquet/budget-sync/cmd/migrate"
	"fjacquet/budget-sync/cmd/root"
	"fjacquet/budget-sync/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfig(t *testing.T, driver string) {
	t.Helper()
	dir := t.TempDir()
	root.AppConfig = &config.Config{
		Log:        config.LogConfig{Level: "error", Format: "text"},
		Storage:    config.StorageConfig{Driver: driver, Directory: filepath.Join(dir, "database")},
		Categories: config.CategoriesConfig{File: filepath.Join(dir, "categories.yaml")},
		Import:     config.ImportConfig{Owner: "alice"},
	}
	t.Cleanup(func() { root.AppConfig = nil })
}

func TestMigrateCommand_Flags(t *testing.T) {
	downFlag := migrate.Cmd.Flags().Lookup("down")
	require.NotNil(t, downFlag)
	assert.Equal(t, "false", downFlag.DefValue)
}

func TestMigrateCommand_SQLite(t *testing.T) {
	useTempConfig(t, config.DriverSQLite)

	var out bytes.Buffer
	migrate.Cmd.SetOut(&out)
	require.NoError(t, migrate.Cmd.RunE(migrate.Cmd, nil))
	assert.Equal(t, "schema version: 2\n", out.String())
}

func TestMigrateCommand_YAMLHasNoSchema(t *testing.T) {
	useTempConfig(t, config.DriverYAML)

	err := migrate.Cmd.RunE(migrate.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema to migrate")
}
