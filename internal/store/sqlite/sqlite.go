// Package sqlite implements the vendor store on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/budget-sync/internal/logging"
	"fjacquet/budget-sync/internal/models"
	"fjacquet/budget-sync/internal/parsererror"
	"fjacquet/budget-sync/internal/store"
	"fjacquet/budget-sync/internal/store/migrations"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const backend = "sqlite"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store implements store.VendorStore using SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

var (
	_ store.VendorStore = (*Store)(nil)
	_ store.Migrator    = (*Store)(nil)
)

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(ctx context.Context, path string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, parsererror.NewStorageError(backend, "open", err)
	}

	// One connection: SQLite serializes writers anyway, and an in-memory
	// database exists only on its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, parsererror.NewStorageError(backend, "ping", err)
	}

	if err := migrations.Up(db, migrations.SQLite, logger); err != nil {
		_ = db.Close()
		return nil, parsererror.NewStorageError(backend, "migrate", err)
	}

	logger.Debug("Opened SQLite vendor store", logging.Field{Key: logging.FieldFile, Value: path})
	return &Store{db: db, path: path, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate applies pending schema migrations. Open already does this; the
// method exists for the migrate command.
func (s *Store) Migrate() error {
	if err := migrations.Up(s.db, migrations.SQLite, s.logger); err != nil {
		return parsererror.NewStorageError(backend, "migrate", err)
	}
	return nil
}

// Rollback rolls the schema back by one migration.
func (s *Store) Rollback() error {
	if err := migrations.Down(s.db, migrations.SQLite, s.logger); err != nil {
		return parsererror.NewStorageError(backend, "rollback", err)
	}
	return nil
}

// SchemaVersion returns the applied schema version.
func (s *Store) SchemaVersion() (int64, error) {
	v, err := migrations.Version(s.db, migrations.SQLite)
	if err != nil {
		return 0, parsererror.NewStorageError(backend, "version", err)
	}
	return v, nil
}

// DB exposes the underlying handle for maintenance commands.
func (s *Store) DB() *sql.DB {
	return s.db
}

// FindMapping returns the mapping for (owner, rawKey), or nil.
func (s *Store) FindMapping(ctx context.Context, owner, rawKey string) (*models.VendorMapping, error) {
	m := models.VendorMapping{Owner: owner, RawKey: rawKey}
	err := s.db.QueryRowContext(ctx,
		`SELECT vendor_id, created_at FROM vendor_mappings WHERE owner = ? AND raw_key = ?`,
		owner, rawKey,
	).Scan(&m.VendorID, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, parsererror.NewStorageError(backend, "find mapping", err)
	}
	return &m, nil
}

// InsertMapping stores or replaces the mapping for (owner, rawKey).
func (s *Store) InsertMapping(ctx context.Context, owner, rawKey, vendorID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO vendor_mappings (owner, raw_key, vendor_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (owner, raw_key) DO UPDATE SET
			vendor_id = excluded.vendor_id,
			created_at = excluded.created_at`,
		owner, rawKey, vendorID, time.Now().UTC(),
	)
	return parsererror.NewStorageError(backend, "insert mapping", err)
}

// InsertVendor creates a vendor.
func (s *Store) InsertVendor(ctx context.Context, owner, name string) (models.Vendor, error) {
	v := models.Vendor{
		ID:        uuid.NewString(),
		Name:      name,
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vendors (id, owner, name, created_at) VALUES (?, ?, ?, ?)`,
		v.ID, v.Owner, v.Name, v.CreatedAt,
	)
	if err != nil {
		return models.Vendor{}, parsererror.NewStorageError(backend, "insert vendor", err)
	}
	return v, nil
}

// ListVendors returns owner's vendors in creation order.
func (s *Store) ListVendors(ctx context.Context, owner string) ([]models.Vendor, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner, name, created_at FROM vendors WHERE owner = ? ORDER BY created_at, rowid`,
		owner,
	)
	if err != nil {
		return nil, parsererror.NewStorageError(backend, "list vendors", err)
	}
	defer func() { _ = rows.Close() }()

	var vendors []models.Vendor
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.Owner, &v.Name, &v.CreatedAt); err != nil {
			return nil, parsererror.NewStorageError(backend, "scan vendor", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, parsererror.NewStorageError(backend, "list vendors", err)
	}
	return vendors, nil
}

// DeleteVendor removes a vendor; its mappings become stale.
func (s *Store) DeleteVendor(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vendors WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return parsererror.NewStorageError(backend, "delete vendor", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return parsererror.NewStorageError(backend, "delete vendor", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
