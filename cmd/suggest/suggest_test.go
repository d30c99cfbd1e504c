package suggest_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-sync/cmd/root"
	"fjacquet/budget-sync/cmd/suggest"
	"fjacquet/budget-sync/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfig(t *testing.T, categories string) {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "categories.yaml")
	if categories != "" {
		require.NoError(t, os.WriteFile(file, []byte(categories), 0600))
	}
	root.AppConfig = &config.Config{
		Log:        config.LogConfig{Level: "error", Format: "text"},
		Storage:    config.StorageConfig{Driver: config.DriverYAML, Directory: filepath.Join(dir, "database")},
		Categories: config.CategoriesConfig{File: file},
		Import:     config.ImportConfig{Owner: "alice"},
	}
	t.Cleanup(func() { root.AppConfig = nil })
}

func run(t *testing.T, name string, explain bool) string {
	t.Helper()
	require.NoError(t, suggest.Cmd.Flags().Set("name", name))
	if explain {
		require.NoError(t, suggest.Cmd.Flags().Set("explain", "true"))
		t.Cleanup(func() { _ = suggest.Cmd.Flags().Set("explain", "false") })
	}
	var out bytes.Buffer
	suggest.Cmd.SetOut(&out)
	require.NoError(t, suggest.Cmd.RunE(suggest.Cmd, nil))
	return out.String()
}

func TestSuggestCommand_Flags(t *testing.T) {
	nameFlag := suggest.Cmd.Flags().Lookup("name")
	require.NotNil(t, nameFlag)
	assert.Equal(t, "n", nameFlag.Shorthand)

	explainFlag := suggest.Cmd.Flags().Lookup("explain")
	require.NotNil(t, explainFlag)
	assert.Equal(t, "false", explainFlag.DefValue)
}

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		name     string
		vendor   string
		contains []string
	}{
		{"brand", "Greggs", []string{"category: Dining Out", "confidence: high"}},
		{"keyword", "The Corner Cafe", []string{"category: Coffee", "confidence: medium"}},
		{"unknown", "Zzyzx Holdings", []string{"no suggestion"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempConfig(t, "")
			out := run(t, tt.vendor, false)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestSuggestCommand_ResolvesUserCategory(t *testing.T) {
	useTempConfig(t, "categories:\n  - id: c1\n    name: Eating Out\n    group: Fun\n  - id: c2\n    name: Dining Out\n    group: Fun\n")

	out := run(t, "PRET A MANGER", true)
	assert.Contains(t, out, "strategies: Keyword:Dining Out(high)")
	assert.Contains(t, out, "user_category: Dining Out (c2)")
}
