// Package migrations holds the SQL schema of the database backends and applies
// it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"fjacquet/budget-sync/internal/logging"

	"github.com/pressly/goose/v3"
)

// Dialect selects the migration set.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

func dir(d Dialect) (string, error) {
	switch d {
	case Postgres:
		return "postgres", nil
	case SQLite:
		return "sqlite", nil
	}
	return "", fmt.Errorf("unsupported migration dialect %q", d)
}

// gooseLogger routes goose progress output into the application logger.
type gooseLogger struct {
	logger logging.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatalf(format, v...)
}

func prepare(d Dialect, logger logging.Logger) (string, error) {
	migrationsDir, err := dir(d)
	if err != nil {
		return "", err
	}
	if logger == nil {
		goose.SetLogger(goose.NopLogger())
	} else {
		goose.SetLogger(gooseLogger{logger: logger})
	}
	goose.SetBaseFS(files)
	if err := goose.SetDialect(string(d)); err != nil {
		return "", fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return migrationsDir, nil
}

// Up applies every pending migration. A nil logger silences goose.
func Up(db *sql.DB, d Dialect, logger logging.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	migrationsDir, err := prepare(d, logger)
	if err != nil {
		return err
	}
	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(db *sql.DB, d Dialect, logger logging.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	migrationsDir, err := prepare(d, logger)
	if err != nil {
		return err
	}
	if err := goose.Down(db, migrationsDir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}

// Version returns the current schema version.
func Version(db *sql.DB, d Dialect) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if _, err := prepare(d, nil); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersion(db)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}
