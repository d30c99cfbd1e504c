// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	DriverYAML     = "yaml"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "BUDGET"

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig configures CSV input and output.
type CSVConfig struct {
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
}

// StorageConfig selects and configures the vendor store.
type StorageConfig struct {
	Driver    string `mapstructure:"driver" yaml:"driver"`
	DSN       string `mapstructure:"dsn" yaml:"-"` // may carry credentials
	Directory string `mapstructure:"directory" yaml:"directory"`
}

// CategoriesConfig locates the user's category list.
type CategoriesConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// ImportConfig configures the import pipeline.
type ImportConfig struct {
	Owner                string `mapstructure:"owner" yaml:"owner"`
	AutoCreateCategories bool   `mapstructure:"auto_create_categories" yaml:"auto_create_categories"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	CSV        CSVConfig        `mapstructure:"csv" yaml:"csv"`
	Storage    StorageConfig    `mapstructure:"storage" yaml:"storage"`
	Categories CategoriesConfig `mapstructure:"categories" yaml:"categories"`
	Import     ImportConfig     `mapstructure:"import" yaml:"import"`
}

// InitializeConfig loads configuration from the standard locations.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load builds the configuration from, in increasing precedence: defaults, the
// config file (configFile, or config.yaml in the standard locations), and
// BUDGET_* environment variables.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.budget-sync")
		v.AddConfigPath(".budget-sync")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// The conventional variable wins over nothing but loses to BUDGET_STORAGE_DSN.
	if err := v.BindEnv("storage.dsn", EnvPrefix+"_STORAGE_DSN", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	normalize(&config)
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.date_format", "YYYY-MM-DD")

	v.SetDefault("storage.driver", DriverYAML)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.directory", "database")

	v.SetDefault("categories.file", "categories.yaml")

	v.SetDefault("import.owner", "default")
	v.SetDefault("import.auto_create_categories", false)
}

func normalize(config *Config) {
	config.Log.Level = strings.ToLower(strings.TrimSpace(config.Log.Level))
	config.Log.Format = strings.ToLower(strings.TrimSpace(config.Log.Format))
	config.Storage.Driver = strings.ToLower(strings.TrimSpace(config.Storage.Driver))
	config.Import.Owner = strings.TrimSpace(config.Import.Owner)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	switch config.Storage.Driver {
	case DriverYAML, DriverSQLite:
	case DriverPostgres:
		if config.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn (or DATABASE_URL) required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (must be 'yaml', 'sqlite' or 'postgres')", config.Storage.Driver)
	}

	if config.Import.Owner == "" {
		return fmt.Errorf("import.owner must not be empty")
	}

	return nil
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	for _, r := range c.CSV.Delimiter {
		return r
	}
	return ','
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
