package vendormatch

import (
	"context"
	"time"

	"fjacquet/budget-sync/internal/models"
)

// BatchStats counts how the resolutions of one batch were produced.
type BatchStats struct {
	Cached   int
	Matched  int
	Created  int
	Degraded int
	Skipped  int
}

// Total returns the number of resolutions performed.
func (s BatchStats) Total() int {
	return s.Cached + s.Matched + s.Created + s.Degraded + s.Skipped
}

// Batch resolves the raw names of one import or sync, in feed order, against
// a working copy of the owner's vendors. Vendors created along the way join
// the working list, so a near-identical name later in the same batch matches
// them instead of creating a duplicate.
//
// A Batch is not safe for concurrent use; resolutions depend on each other.
type Batch struct {
	resolver *Resolver
	owner    string
	vendors  []models.Vendor
	stats    BatchStats
}

// NewBatch starts a batch for owner over a snapshot of the owner's vendors.
// The snapshot is copied.
func (r *Resolver) NewBatch(owner string, vendors []models.Vendor) *Batch {
	working := make([]models.Vendor, len(vendors))
	copy(working, vendors)
	return &Batch{resolver: r, owner: owner, vendors: working}
}

// Resolve resolves one raw name and updates the working vendor list.
func (b *Batch) Resolve(ctx context.Context, rawMerchantName string) models.Resolution {
	res, out := b.resolver.resolve(ctx, b.owner, rawMerchantName, b.vendors)

	switch out {
	case outcomeCached:
		b.stats.Cached++
	case outcomeMatched:
		b.stats.Matched++
	case outcomeCreated:
		b.stats.Created++
		b.vendors = append(b.vendors, models.Vendor{
			ID:        res.VendorID,
			Name:      res.VendorName,
			Owner:     b.owner,
			CreatedAt: time.Now().UTC(),
		})
	case outcomeDegraded:
		b.stats.Degraded++
	default:
		b.stats.Skipped++
	}
	return res
}

// Vendors returns a copy of the working vendor list.
func (b *Batch) Vendors() []models.Vendor {
	out := make([]models.Vendor, len(b.vendors))
	copy(out, b.vendors)
	return out
}

// Stats returns the counters accumulated so far.
func (b *Batch) Stats() BatchStats {
	return b.stats
}
