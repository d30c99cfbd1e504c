// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/budget-sync/internal/config"
	"fjacquet/budget-sync/internal/container"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by every command.
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	Owner      string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// AppConfig is the configuration loaded before any subcommand runs.
	AppConfig *config.Config

	// SharedFlags holds the persistent flag values.
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "budget-sync",
		Short: "Import bank transactions, matching merchants to vendors and suggesting categories.",
		Long: `budget-sync imports bank transaction feeds into a personal budget.
Noisy merchant strings are normalized and matched to the owner's known vendors,
new vendors are created when nothing is close enough, and each vendor gets a
category suggestion.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to budget-sync!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return LoadConfig()
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.budget-sync, .budget-sync or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Owner, "owner", "", "Owner whose vendors are used (default: import.owner)")
}

// LoadConfig loads the configuration, applies flag overrides and configures
// the command logger.
func LoadConfig() error {
	config.LoadEnv()

	cfg, err := config.Load(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}

	if level := strings.ToLower(strings.TrimSpace(SharedFlags.LogLevel)); level != "" {
		if _, err := logrus.ParseLevel(level); err != nil {
			return fmt.Errorf("invalid log level: %s", SharedFlags.LogLevel)
		}
		cfg.Log.Level = level
	}
	if owner := strings.TrimSpace(SharedFlags.Owner); owner != "" {
		cfg.Import.Owner = owner
	}

	AppConfig = cfg
	Log = config.ConfigureLoggingFromConfig(cfg)
	return nil
}

// Owner returns the owner the current command acts for.
func Owner() string {
	if AppConfig == nil {
		return strings.TrimSpace(SharedFlags.Owner)
	}
	return AppConfig.Import.Owner
}

// Context returns the command context, or a background context when the
// command runs outside Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// NewContainer wires the application for one command run.
func NewContainer(cmd *cobra.Command) (*container.Container, error) {
	if AppConfig == nil {
		if err := LoadConfig(); err != nil {
			return nil, err
		}
	}
	return container.NewContainer(Context(cmd), AppConfig)
}

// CloseContainer closes c, logging failures.
func CloseContainer(c *container.Container) {
	if err := c.Close(); err != nil {
		Log.Warnf("Failed to close storage: %v", err)
	}
}
