package resolve_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"fjacquet/budget-sync/cmd/resolve"
	"fjacquet/budget-sync/cmd/root"
	"fjacquet/budget-sync/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	root.AppConfig = &config.Config{
		Log:        config.LogConfig{Level: "error", Format: "text"},
		CSV:        config.CSVConfig{Delimiter: ",", DateFormat: "YYYY-MM-DD"},
		Storage:    config.StorageConfig{Driver: config.DriverYAML, Directory: filepath.Join(dir, "database")},
		Categories: config.CategoriesConfig{File: filepath.Join(dir, "categories.yaml")},
		Import:     config.ImportConfig{Owner: "alice"},
	}
	t.Cleanup(func() { root.AppConfig = nil })
}

func run(t *testing.T, name string) string {
	t.Helper()
	require.NoError(t, resolve.Cmd.Flags().Set("name", name))
	var out bytes.Buffer
	resolve.Cmd.SetOut(&out)
	require.NoError(t, resolve.Cmd.RunE(resolve.Cmd, nil))
	return out.String()
}

func TestResolveCommand_Metadata(t *testing.T) {
	assert.Equal(t, "resolve", resolve.Cmd.Use)
	assert.Contains(t, resolve.Cmd.Short, "Resolve a raw merchant name")
	assert.NotNil(t, resolve.Cmd.RunE)

	nameFlag := resolve.Cmd.Flags().Lookup("name")
	require.NotNil(t, nameFlag)
	assert.Equal(t, "n", nameFlag.Shorthand)
	assert.Equal(t, "", nameFlag.DefValue)
}

func TestResolveCommand_CreatesThenReuses(t *testing.T) {
	useTempConfig(t)

	first := run(t, "CARD PAYMENT TO GREGGS")
	assert.Contains(t, first, "vendor_name: Greggs")
	assert.Contains(t, first, "is_new: true")

	second := run(t, "GREGGS")
	assert.Contains(t, second, "vendor_name: Greggs")
	assert.Contains(t, second, "is_new: false")
}

func TestResolveCommand_BlankName(t *testing.T) {
	useTempConfig(t)

	assert.Equal(t, "nothing to resolve\n", run(t, "   "))
}
