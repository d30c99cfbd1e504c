package config

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-sync/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearTestEnvVars blanks every variable the configuration reads. t.Setenv
// restores the previous values when the test ends.
func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, envVar := range []string{
		"BUDGET_LOG_LEVEL",
		"BUDGET_LOG_FORMAT",
		"BUDGET_CSV_DELIMITER",
		"BUDGET_CSV_DATE_FORMAT",
		"BUDGET_STORAGE_DRIVER",
		"BUDGET_STORAGE_DSN",
		"BUDGET_STORAGE_DIRECTORY",
		"BUDGET_CATEGORIES_FILE",
		"BUDGET_IMPORT_OWNER",
		"BUDGET_IMPORT_AUTO_CREATE_CATEGORIES",
		"DATABASE_URL",
	} {
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}

// chdir switches into dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(original) })
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, "YYYY-MM-DD", config.CSV.DateFormat)
	assert.Equal(t, DriverYAML, config.Storage.Driver)
	assert.Equal(t, "database", config.Storage.Directory)
	assert.Empty(t, config.Storage.DSN)
	assert.Equal(t, "categories.yaml", config.Categories.File)
	assert.Equal(t, "default", config.Import.Owner)
	assert.False(t, config.Import.AutoCreateCategories)
	assert.Equal(t, ',', config.Delimiter())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("BUDGET_LOG_LEVEL", "debug")
	t.Setenv("BUDGET_LOG_FORMAT", "JSON")
	t.Setenv("BUDGET_CSV_DELIMITER", ";")
	t.Setenv("BUDGET_STORAGE_DRIVER", "sqlite")
	t.Setenv("BUDGET_IMPORT_OWNER", "alice")
	t.Setenv("BUDGET_IMPORT_AUTO_CREATE_CATEGORIES", "true")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ';', config.Delimiter())
	assert.Equal(t, DriverSQLite, config.Storage.Driver)
	assert.Equal(t, "alice", config.Import.Owner)
	assert.True(t, config.Import.AutoCreateCategories)
}

func TestInitializeConfig_DatabaseURL(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("BUDGET_STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/budget")

	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/budget", config.Storage.DSN)

	t.Setenv("BUDGET_STORAGE_DSN", "postgres://override/budget")
	config, err = InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://override/budget", config.Storage.DSN)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
  date_format: "DD/MM/YYYY"
storage:
  driver: sqlite
  directory: /var/lib/budget
categories:
  file: my-categories.yaml
import:
  owner: bob
  auto_create_categories: true
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "DD/MM/YYYY", config.CSV.DateFormat)
	assert.Equal(t, DriverSQLite, config.Storage.Driver)
	assert.Equal(t, "/var/lib/budget", config.Storage.Directory)
	assert.Equal(t, "my-categories.yaml", config.Categories.File)
	assert.Equal(t, "bob", config.Import.Owner)
	assert.True(t, config.Import.AutoCreateCategories)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
log:
  level: "warn"
csv:
  delimiter: "|"
import:
  owner: bob
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0600))
	chdir(t, tempDir)

	t.Setenv("BUDGET_LOG_LEVEL", "error")
	t.Setenv("BUDGET_IMPORT_OWNER", "alice")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "alice", config.Import.Owner)
}

func TestLoad_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("import:\n  owner: carol\n"), 0600))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "carol", config.Import.Owner)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Log:     LogConfig{Level: "info", Format: "text"},
			CSV:     CSVConfig{Delimiter: ","},
			Storage: StorageConfig{Driver: DriverYAML},
			Import:  ImportConfig{Owner: "default"},
		}
	}

	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{"invalid log level", func(c *Config) { c.Log.Level = "invalid" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"invalid CSV delimiter", func(c *Config) { c.CSV.Delimiter = "abc" }, "CSV delimiter must be a single character"},
		{"empty CSV delimiter", func(c *Config) { c.CSV.Delimiter = "" }, "CSV delimiter must be a single character"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "invalid storage driver"},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = DriverPostgres }, "storage.dsn"},
		{"empty owner", func(c *Config) { c.Import.Owner = "" }, "import.owner"},
	}

	require.NoError(t, validateConfig(valid()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	logger := ConfigureLoggingFromConfig(&Config{Log: LogConfig{Level: "debug", Format: "json"}})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = ConfigureLoggingFromConfig(&Config{Log: LogConfig{Level: "bogus", Format: "text"}})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("BUDGET_TEST_ONLY_VAR=from-dotenv\n"), 0600))
	t.Setenv("BUDGET_TEST_ONLY_VAR", "")
	require.NoError(t, os.Unsetenv("BUDGET_TEST_ONLY_VAR"))

	loaded := loadEnvFile(logging.NewMockLogger(), filepath.Join(dir, "missing.env"), envFile)

	assert.Equal(t, envFile, loaded)
	assert.Equal(t, "from-dotenv", os.Getenv("BUDGET_TEST_ONLY_VAR"))
	assert.Empty(t, loadEnvFile(logging.NewMockLogger(), filepath.Join(dir, "none")))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("BUDGET_TEST_GETENV", "set")
	assert.Equal(t, "set", GetEnv("BUDGET_TEST_GETENV", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BUDGET_TEST_GETENV_MISSING", "fallback"))
}
