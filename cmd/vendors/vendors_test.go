package vendors_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"fjacquet/budget-sync/cmd/root"
	"fjacquet/budget-sync/cmd/vendors"
	"fjacquet/budget-sync/internal/config"
	"fjacquet/budget-sync/internal/logging"
	"fjacquet/budget-sync/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "database")
	root.AppConfig = &config.Config{
		Log:        config.LogConfig{Level: "error", Format: "text"},
		Storage:    config.StorageConfig{Driver: config.DriverYAML, Directory: dir},
		Categories: config.CategoriesConfig{File: filepath.Join(dir, "categories.yaml")},
		Import:     config.ImportConfig{Owner: "alice"},
	}
	t.Cleanup(func() { root.AppConfig = nil })
	return filepath.Join(dir, store.DefaultVendorsFile)
}

func TestVendorsCommand_Metadata(t *testing.T) {
	assert.Equal(t, "vendors", vendors.Cmd.Use)
	assert.NotNil(t, vendors.Cmd.RunE)

	found := false
	for _, sub := range vendors.Cmd.Commands() {
		if sub == vendors.DeleteCmd {
			found = true
		}
	}
	assert.True(t, found, "delete subcommand is registered")
}

func TestVendorsCommand_ListAndDelete(t *testing.T) {
	path := useTempConfig(t)

	seed, err := store.NewYAMLVendorStore(path, logging.NewMockLogger())
	require.NoError(t, err)
	greggs, err := seed.InsertVendor(context.Background(), "alice", "Greggs")
	require.NoError(t, err)
	_, err = seed.InsertVendor(context.Background(), "bob", "Tesco")
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	var out bytes.Buffer
	vendors.Cmd.SetOut(&out)
	require.NoError(t, vendors.Cmd.RunE(vendors.Cmd, nil))
	assert.Contains(t, out.String(), "Greggs")
	assert.NotContains(t, out.String(), "Tesco")

	out.Reset()
	vendors.DeleteCmd.SetOut(&out)
	require.NoError(t, vendors.DeleteCmd.RunE(vendors.DeleteCmd, []string{greggs.ID}))
	assert.Contains(t, out.String(), "deleted vendor "+greggs.ID)

	err = vendors.DeleteCmd.RunE(vendors.DeleteCmd, []string{greggs.ID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	out.Reset()
	require.NoError(t, vendors.Cmd.RunE(vendors.Cmd, nil))
	assert.Equal(t, "no vendors\n", out.String())
}
