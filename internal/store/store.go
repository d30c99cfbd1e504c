// Package store provides the persistence of vendors, vendor mappings and the
// user's category list. The YAML backend and the in-memory mock live here;
// SQL backends live in the postgres and sqlite subpackages.
package store

import (
	"context"
	"errors"

	"fjacquet/budget-sync/internal/models"
)

// ErrNotFound is returned when a vendor does not exist for the given owner.
var ErrNotFound = errors.New("not found")

// VendorLister provides the vendor snapshot a resolution batch starts from.
type VendorLister interface {
	ListVendors(ctx context.Context, owner string) ([]models.Vendor, error)
}

// VendorStore is implemented by every vendor backend. It covers the narrow
// interface the resolution pipeline needs plus listing and maintenance.
type VendorStore interface {
	VendorLister

	FindMapping(ctx context.Context, owner, rawKey string) (*models.VendorMapping, error)
	InsertMapping(ctx context.Context, owner, rawKey, vendorID string) error
	InsertVendor(ctx context.Context, owner, name string) (models.Vendor, error)

	// DeleteVendor removes a vendor. Mappings pointing at it become stale and
	// are ignored by the pipeline. Returns ErrNotFound when absent.
	DeleteVendor(ctx context.Context, owner, id string) error

	Close() error
}

// Migrator is implemented by the SQL backends, whose schema is versioned.
type Migrator interface {
	Migrate() error
	Rollback() error
	SchemaVersion() (int64, error)
}
