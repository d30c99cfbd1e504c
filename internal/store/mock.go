package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fjacquet/budget-sync/internal/models"
)

// MockVendorStore is an in-memory VendorStore for tests. The error fields make
// the matching operation fail.
type MockVendorStore struct {
	mu       sync.Mutex
	vendors  []models.Vendor
	mappings map[string]models.VendorMapping
	nextID   int

	FindMappingError   error
	InsertMappingError error
	InsertVendorError  error
	ListVendorsError   error

	FindMappingCalls   int
	InsertMappingCalls int
	InsertVendorCalls  int
}

// NewMockVendorStore returns a mock seeded with vendors.
func NewMockVendorStore(vendors ...models.Vendor) *MockVendorStore {
	return &MockVendorStore{
		vendors:  append([]models.Vendor(nil), vendors...),
		mappings: make(map[string]models.VendorMapping),
	}
}

// FindMapping returns the mock mapping.
func (m *MockVendorStore) FindMapping(_ context.Context, owner, rawKey string) (*models.VendorMapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindMappingCalls++
	if m.FindMappingError != nil {
		return nil, m.FindMappingError
	}
	mapping, ok := m.mappings[mappingKey(owner, rawKey)]
	if !ok {
		return nil, nil
	}
	return &mapping, nil
}

// InsertMapping stores the mapping in memory.
func (m *MockVendorStore) InsertMapping(_ context.Context, owner, rawKey, vendorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertMappingCalls++
	if m.InsertMappingError != nil {
		return m.InsertMappingError
	}
	if m.mappings == nil {
		m.mappings = make(map[string]models.VendorMapping)
	}
	m.mappings[mappingKey(owner, rawKey)] = models.VendorMapping{
		Owner: owner, RawKey: rawKey, VendorID: vendorID, CreatedAt: time.Now().UTC(),
	}
	return nil
}

// InsertVendor creates a vendor with a sequential id.
func (m *MockVendorStore) InsertVendor(_ context.Context, owner, name string) (models.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertVendorCalls++
	if m.InsertVendorError != nil {
		return models.Vendor{}, m.InsertVendorError
	}
	m.nextID++
	v := models.Vendor{
		ID:        fmt.Sprintf("vendor-%d", m.nextID),
		Name:      name,
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}
	m.vendors = append(m.vendors, v)
	return v, nil
}

// ListVendors returns owner's vendors.
func (m *MockVendorStore) ListVendors(_ context.Context, owner string) ([]models.Vendor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListVendorsError != nil {
		return nil, m.ListVendorsError
	}
	var out []models.Vendor
	for _, v := range m.vendors {
		if v.Owner == owner {
			out = append(out, v)
		}
	}
	return out, nil
}

// DeleteVendor removes a vendor.
func (m *MockVendorStore) DeleteVendor(_ context.Context, owner, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range m.vendors {
		if v.Owner == owner && v.ID == id {
			m.vendors = append(m.vendors[:i], m.vendors[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Mapping returns the stored vendor id for (owner, rawKey).
func (m *MockVendorStore) Mapping(owner, rawKey string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mapping, ok := m.mappings[mappingKey(owner, rawKey)]
	return mapping.VendorID, ok
}

// Close does nothing.
func (m *MockVendorStore) Close() error { return nil }

// MockCategoryStore is an in-memory category list for tests.
type MockCategoryStore struct {
	Categories []models.Category

	LoadCategoriesError error
	SaveCategoriesError error
	SaveCalls           int
}

// LoadCategories returns a copy of the mock categories.
func (m *MockCategoryStore) LoadCategories() ([]models.Category, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return append([]models.Category(nil), m.Categories...), nil
}

// SaveCategories replaces the mock categories.
func (m *MockCategoryStore) SaveCategories(categories []models.Category) error {
	if m.SaveCategoriesError != nil {
		return m.SaveCategoriesError
	}
	m.SaveCalls++
	m.Categories = append([]models.Category(nil), categories...)
	return nil
}
