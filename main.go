package main

import (
	"fmt"
	"os"
	"strings"

	importcmd "fjacquet/budget-sync/cmd/import"
	"fjacquet/budget-sync/cmd/migrate"
	"fjacquet/budget-sync/cmd/resolve"
	"fjacquet/budget-sync/cmd/root"
	"fjacquet/budget-sync/cmd/suggest"
	"fjacquet/budget-sync/cmd/vendors"
	"fjacquet/budget-sync/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load .env before anything reads the environment
	config.LoadEnv()

	// 2. Early log level until the configuration is loaded
	configureLogLevelDirectly()

	// 3. Initialize root command and subcommands
	root.Init()

	root.Cmd.AddCommand(resolve.Cmd)
	root.Cmd.AddCommand(suggest.Cmd)
	root.Cmd.AddCommand(importcmd.Cmd)
	root.Cmd.AddCommand(vendors.Cmd)
	root.Cmd.AddCommand(migrate.Cmd)
}

// configureLogLevelDirectly sets the global logrus level from BUDGET_LOG_LEVEL.
func configureLogLevelDirectly() {
	level, err := logrus.ParseLevel(strings.ToLower(config.GetEnv(config.EnvPrefix+"_LOG_LEVEL", "info")))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	root.Log.SetLevel(level)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
