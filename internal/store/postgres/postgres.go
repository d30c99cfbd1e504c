// Package postgres implements the vendor store on PostgreSQL through a pgx
// connection pool.
package postgres

import (
	"context"
	"errors"
	"time"

	"fjacquet/budget-sync/internal/logging"
	"fjacquet/budget-sync/internal/models"
	"fjacquet/budget-sync/internal/parsererror"
	"fjacquet/budget-sync/internal/store"
	"fjacquet/budget-sync/internal/store/migrations"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const backend = "postgres"

// Store implements store.VendorStore using PostgreSQL.
type Store struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

var (
	_ store.VendorStore = (*Store)(nil)
	_ store.Migrator    = (*Store)(nil)
)

// Open connects to the database at dsn and verifies the connection.
// The schema is not migrated; see Migrate.
func Open(ctx context.Context, dsn string, logger logging.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, parsererror.NewStorageError(backend, "connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, parsererror.NewStorageError(backend, "ping", err)
	}
	return NewStore(pool, logger), nil
}

// NewStore wraps an existing pool.
func NewStore(pool *pgxpool.Pool, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Store{pool: pool, logger: logger}
}

// Migrate applies pending schema migrations through a database/sql view of
// the pool.
func (s *Store) Migrate() error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer func() { _ = db.Close() }()

	if err := migrations.Up(db, migrations.Postgres, s.logger); err != nil {
		return parsererror.NewStorageError(backend, "migrate", err)
	}
	return nil
}

// Rollback rolls the schema back by one migration.
func (s *Store) Rollback() error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer func() { _ = db.Close() }()

	if err := migrations.Down(db, migrations.Postgres, s.logger); err != nil {
		return parsererror.NewStorageError(backend, "rollback", err)
	}
	return nil
}

// SchemaVersion returns the applied schema version.
func (s *Store) SchemaVersion() (int64, error) {
	db := stdlib.OpenDBFromPool(s.pool)
	defer func() { _ = db.Close() }()

	v, err := migrations.Version(db, migrations.Postgres)
	if err != nil {
		return 0, parsererror.NewStorageError(backend, "version", err)
	}
	return v, nil
}

// Close closes the pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// FindMapping returns the mapping for (owner, rawKey), or nil.
func (s *Store) FindMapping(ctx context.Context, owner, rawKey string) (*models.VendorMapping, error) {
	m := models.VendorMapping{Owner: owner, RawKey: rawKey}
	err := s.pool.QueryRow(ctx,
		`SELECT vendor_id, created_at FROM vendor_mappings WHERE owner = $1 AND raw_key = $2`,
		owner, rawKey,
	).Scan(&m.VendorID, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, parsererror.NewStorageError(backend, "find mapping", err)
	}
	return &m, nil
}

// InsertMapping stores or replaces the mapping for (owner, rawKey).
func (s *Store) InsertMapping(ctx context.Context, owner, rawKey, vendorID string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO vendor_mappings (owner, raw_key, vendor_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner, raw_key) DO UPDATE SET
			vendor_id = EXCLUDED.vendor_id,
			created_at = EXCLUDED.created_at`,
		owner, rawKey, vendorID, time.Now().UTC(),
	)
	return parsererror.NewStorageError(backend, "insert mapping", err)
}

// InsertVendor creates a vendor.
func (s *Store) InsertVendor(ctx context.Context, owner, name string) (models.Vendor, error) {
	v := models.Vendor{
		ID:    uuid.NewString(),
		Name:  name,
		Owner: owner,
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO vendors (id, owner, name)
		VALUES ($1, $2, $3)
		RETURNING created_at`,
		v.ID, v.Owner, v.Name,
	).Scan(&v.CreatedAt)
	if err != nil {
		return models.Vendor{}, parsererror.NewStorageError(backend, "insert vendor", err)
	}
	return v, nil
}

// ListVendors returns owner's vendors in creation order.
func (s *Store) ListVendors(ctx context.Context, owner string) ([]models.Vendor, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, owner, name, created_at FROM vendors WHERE owner = $1 ORDER BY created_at, id`,
		owner,
	)
	if err != nil {
		return nil, parsererror.NewStorageError(backend, "list vendors", err)
	}
	defer rows.Close()

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
	tag, err := s.pool.Exec(ctx, `DELETE FROM vendors WHERE owner = $1 AND id = $2`, owner, id)
	if err != nil {
		return parsererror.NewStorageError(backend, "delete vendor", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
