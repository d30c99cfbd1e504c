// Package container provides dependency injection for budget-sync.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"path/filepath"

	"fjacquet/budget-sync/internal/categorizer"
	"fjacquet/budget-sync/internal/config"
	"fjacquet/budget-sync/internal/dateutils"
	"fjacquet/budget-sync/internal/importer"
	"fjacquet/budget-sync/internal/logging"
	"fjacquet/budget-sync/internal/store"
	"fjacquet/budget-sync/internal/store/postgres"
	"fjacquet/budget-sync/internal/store/sqlite"
	"fjacquet/budget-sync/internal/vendormatch"
)

// SQLiteFile is the database file name used by the sqlite driver inside
// storage.directory.
const SQLiteFile = "budget.db"

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and only
// reachable through getters.
type Container struct {
	logger        logging.Logger
	config        *config.Config
	vendors       store.VendorStore
	categoryStore *store.CategoryStore
	categorizer   *categorizer.Categorizer
	resolver      *vendormatch.Resolver
	importer      *importer.Importer
}

// NewContainer creates and wires all application dependencies. The vendor
// store is opened with ctx; call Close to release it.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg),
		logging.Field{Key: logging.FieldOwner, Value: cfg.Import.Owner})
	logging.SetDefault(logger)

	return newContainer(ctx, cfg, logger)
}

func newContainer(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	vendors, err := OpenVendorStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	categoryStore := store.NewCategoryStore(cfg.Categories.File, logger)
	cat := categorizer.NewCategorizer(categoryStore, logger,
		categorizer.WithAutoCreate(cfg.Import.AutoCreateCategories))

	resolver := vendormatch.NewResolver(vendors, logger)

	imp := importer.New(vendors, resolver, cat, importer.Options{
		Delimiter:  cfg.Delimiter(),
		DateLayout: dateutils.LayoutFromPattern(cfg.CSV.DateFormat),
	}, logger)

	logger.Debug("Container initialized",
		logging.Field{Key: logging.FieldBackend, Value: cfg.Storage.Driver},
		logging.Field{Key: "auto_create_categories", Value: cfg.Import.AutoCreateCategories})

	return &Container{
		logger:        logger,
		config:        cfg,
		vendors:       vendors,
		categoryStore: categoryStore,
		categorizer:   cat,
		resolver:      resolver,
		importer:      imp,
	}, nil
}

// OpenVendorStore opens the vendor store selected by storage.driver.
func OpenVendorStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (store.VendorStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverYAML, "":
		path := filepath.Join(cfg.Storage.Directory, store.DefaultVendorsFile)
		s, err := store.NewYAMLVendorStore(path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open vendor store: %w", err)
		}
		return s, nil
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, filepath.Join(cfg.Storage.Directory, SQLiteFile), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open vendor store: %w", err)
		}
		return s, nil
	case config.DriverPostgres:
		s, err := postgres.Open(ctx, cfg.Storage.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open vendor store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetVendorStore returns the vendor store.
func (c *Container) GetVendorStore() store.VendorStore {
	return c.vendors
}

// GetMigrator returns the vendor store as a Migrator, or an error when the
// configured backend has no versioned schema.
func (c *Container) GetMigrator() (store.Migrator, error) {
	m, ok := c.vendors.(store.Migrator)
	if !ok {
		return nil, fmt.Errorf("storage driver %q has no schema to migrate", c.config.Storage.Driver)
	}
	return m, nil
}

// GetCategoryStore returns the category store.
func (c *Container) GetCategoryStore() *store.CategoryStore {
	return c.categoryStore
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetResolver returns the vendor resolver.
func (c *Container) GetResolver() *vendormatch.Resolver {
	return c.resolver
}

// GetImporter returns the import pipeline.
func (c *Container) GetImporter() *importer.Importer {
	return c.importer
}

// Close releases the vendor store.
func (c *Container) Close() error {
	if err := c.vendors.Close(); err != nil {
		return fmt.Errorf("failed to close vendor store: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
