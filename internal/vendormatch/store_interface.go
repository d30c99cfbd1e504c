package vendormatch

import (
	"context"

	"fjacquet/budget-sync/internal/models"
)

// Store is the storage collaborator of the resolution pipeline. It is kept
// narrow so the pipeline never sees schema rows.
type Store interface {
	// FindMapping returns the mapping for (owner, rawKey), or nil and no error
	// when none exists.
	FindMapping(ctx context.Context, owner, rawKey string) (*models.VendorMapping, error)
	// InsertMapping records rawKey -> vendorID for owner. An existing mapping for
	// the same key is replaced.
	InsertMapping(ctx context.Context, owner, rawKey, vendorID string) error
	// InsertVendor creates a vendor owned by owner.
	InsertVendor(ctx context.Context, owner, name string) (models.Vendor, error)
}
