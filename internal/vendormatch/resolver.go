package vendormatch

import (
	"context"
	"strings"

	"fjacquet/budget-sync/internal/logging"
	"fjacquet/budget-sync/internal/models"
)

// MatchThreshold is the minimum similarity for a fuzzy match to be accepted.
// Scores equal to the threshold are accepted.
const MatchThreshold = 0.7

// outcome records which path of the pipeline produced a resolution.
type outcome int

const (
	outcomeSkipped outcome = iota
	outcomeCached
	outcomeMatched
	outcomeCreated
	outcomeDegraded
)

// Resolver maps raw merchant names to vendors:
//
//  1. a learned mapping for the verbatim raw name, if its vendor still exists;
//  2. otherwise the best fuzzy match among the owner's vendors, if it clears
//     MatchThreshold;
//  3. otherwise a new vendor named after the normalized raw name.
//
// Outcomes of steps 2 and 3 are stored as mappings. Storage failures never
// fail a resolution: read errors count as cache misses, mapping write errors
// are logged, and a failed vendor insert yields a degraded Resolution with no
// vendor id.
type Resolver struct {
	store  Store
	logger logging.Logger
}

// NewResolver creates a Resolver over the given store.
func NewResolver(store Store, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve returns the vendor for rawMerchantName within owner's scope.
// existing is the caller's snapshot of owner's vendors; it is only read.
func (r *Resolver) Resolve(ctx context.Context, owner, rawMerchantName string, existing []models.Vendor) models.Resolution {
	res, _ := r.resolve(ctx, owner, rawMerchantName, existing)
	return res
}

func (r *Resolver) resolve(ctx context.Context, owner, raw string, existing []models.Vendor) (models.Resolution, outcome) {
	if strings.TrimSpace(raw) == "" {
		return models.Resolution{}, outcomeSkipped
	}

	log := r.logger.WithFields(
		logging.Field{Key: logging.FieldOwner, Value: owner},
		logging.Field{Key: logging.FieldRawName, Value: raw},
	)

	if res, ok := r.lookupMapping(ctx, log, owner, raw, existing); ok {
		return res, outcomeCached
	}

	normalized := Normalize(raw)

	if best, score, ok := BestMatch(normalized, existing); ok {
		log.Debug("Raw name matched existing vendor",
			logging.Field{Key: logging.FieldNormalized, Value: normalized},
			logging.Field{Key: logging.FieldVendorID, Value: best.ID},
			logging.Field{Key: logging.FieldScore, Value: score})
		r.saveMapping(ctx, log, owner, raw, best.ID)
		return models.Resolution{VendorID: best.ID, VendorName: best.Name}, outcomeMatched
	}

	vendor, err := r.store.InsertVendor(ctx, owner, normalized)
	if err != nil {
		log.WithError(err).Warn("Vendor creation failed, importing without vendor link",
			logging.Field{Key: logging.FieldNormalized, Value: normalized})
		return models.Resolution{VendorName: normalized}, outcomeDegraded
	}

	log.Info("Created vendor",
		logging.Field{Key: logging.FieldVendorID, Value: vendor.ID},
		logging.Field{Key: logging.FieldVendorName, Value: vendor.Name})
	r.saveMapping(ctx, log, owner, raw, vendor.ID)

	name := vendor.Name
	if name == "" {
		name = normalized
	}
	return models.Resolution{VendorID: vendor.ID, VendorName: name, IsNew: true}, outcomeCreated
}

// lookupMapping is the fast path. A mapping whose vendor is missing from the
// snapshot is stale and treated like no mapping at all.
func (r *Resolver) lookupMapping(ctx context.Context, log logging.Logger, owner, raw string, existing []models.Vendor) (models.Resolution, bool) {
	mapping, err := r.store.FindMapping(ctx, owner, raw)
	if err != nil {
		log.WithError(err).Warn("Mapping lookup failed, treating as cache miss")
		return models.Resolution{}, false
	}
	if mapping == nil {
		return models.Resolution{}, false
	}

	vendor, ok := models.FindVendor(existing, mapping.VendorID)
	if !ok {
		log.Debug("Ignoring stale mapping", logging.Field{Key: logging.FieldVendorID, Value: mapping.VendorID})
		return models.Resolution{}, false
	}
	return models.Resolution{VendorID: vendor.ID, VendorName: vendor.Name}, true
}

func (r *Resolver) saveMapping(ctx context.Context, log logging.Logger, owner, raw, vendorID string) {
	if err := r.store.InsertMapping(ctx, owner, raw, vendorID); err != nil {
		log.WithError(err).Warn("Failed to store vendor mapping",
			logging.Field{Key: logging.FieldVendorID, Value: vendorID})
	}
}

// BestMatch returns the highest-scoring vendor for a normalized name and
// whether it clears MatchThreshold. Ties go to the vendor seen first.
func BestMatch(normalized string, vendors []models.Vendor) (models.Vendor, float64, bool) {
	var (
		best      models.Vendor
		bestScore float64
		found     bool
	)
	for _, v := range vendors {
		score := Similarity(normalized, v.Name)
		if !found || score > bestScore {
			best, bestScore, found = v, score, true
		}
	}
	if !found || bestScore < MatchThreshold {
		return models.Vendor{}, bestScore, false
	}
	return best, bestScore, true
}
