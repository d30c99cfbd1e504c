package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"fjacquet/budget-sync/internal/logging"
	"fjacquet/budget-sync/internal/models"
	"fjacquet/budget-sync/internal/parsererror"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const yamlBackend = "yaml"

// DefaultVendorsFile is the file name used inside the storage directory.
const DefaultVendorsFile = "vendors.yaml"

type vendorFile struct {
	Vendors  []models.Vendor        `yaml:"vendors"`
	Mappings []models.VendorMapping `yaml:"mappings"`
}

// YAMLVendorStore keeps vendors and mappings of all owners in one YAML file.
// The whole file is held in memory and rewritten after every change.
type YAMLVendorStore struct {
	path   string
	logger logging.Logger

	mu       sync.RWMutex
	vendors  []models.Vendor
	mappings map[string]models.VendorMapping
}

// NewYAMLVendorStore opens the store at path, loading it when the file exists.
func NewYAMLVendorStore(path string, logger logging.Logger) (*YAMLVendorStore, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	s := &YAMLVendorStore{
		path:     path,
		logger:   logger,
		mappings: make(map[string]models.VendorMapping),
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("Vendor file not found, starting empty",
				logging.Field{Key: logging.FieldFile, Value: path})
			return s, nil
		}
		return nil, parsererror.NewStorageError(yamlBackend, "read vendor file", err)
	}

	var file vendorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, parsererror.NewStorageError(yamlBackend, "parse vendor file", err)
	}
	s.vendors = file.Vendors
	for _, m := range file.Mappings {
		s.mappings[mappingKey(m.Owner, m.RawKey)] = m
	}

	logger.Debug("Loaded vendor file",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(s.vendors)})
	return s, nil
}

func mappingKey(owner, rawKey string) string {
	return owner + "\x00" + rawKey
}

// Path returns the backing file.
func (s *YAMLVendorStore) Path() string {
	return s.path
}

// FindMapping returns the mapping for (owner, rawKey) or nil.
func (s *YAMLVendorStore) FindMapping(_ context.Context, owner, rawKey string) (*models.VendorMapping, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.mappings[mappingKey(owner, rawKey)]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// InsertMapping stores or replaces the mapping for (owner, rawKey).
func (s *YAMLVendorStore) InsertMapping(_ context.Context, owner, rawKey, vendorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := mappingKey(owner, rawKey)
	previous, existed := s.mappings[key]
	s.mappings[key] = models.VendorMapping{
		Owner:     owner,
		RawKey:    rawKey,
		VendorID:  vendorID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.saveLocked(); err != nil {
		if existed {
			s.mappings[key] = previous
		} else {
			delete(s.mappings, key)
		}
		return parsererror.NewStorageError(yamlBackend, "insert mapping", err)
	}
	return nil
}

// InsertVendor creates a vendor with a fresh id.
func (s *YAMLVendorStore) InsertVendor(_ context.Context, owner, name string) (models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := models.Vendor{
		ID:        uuid.NewString(),
		Name:      name,
		Owner:     owner,
		CreatedAt: time.Now().UTC(),
	}
	s.vendors = append(s.vendors, v)

	if err := s.saveLocked(); err != nil {
		s.vendors = s.vendors[:len(s.vendors)-1]
		return models.Vendor{}, parsererror.NewStorageError(yamlBackend, "insert vendor", err)
	}
	return v, nil
}

// ListVendors returns owner's vendors in creation order.
func (s *YAMLVendorStore) ListVendors(_ context.Context, owner string) ([]models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Vendor
	for _, v := range s.vendors {
		if v.Owner == owner {
			out = append(out, v)
		}
	}
	return out, nil
}

// DeleteVendor removes a vendor. Its mappings are kept and become stale.
func (s *YAMLVendorStore) DeleteVendor(_ context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, v := range s.vendors {
		if v.Owner == owner && v.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	previous := s.vendors
	s.vendors = append(append([]models.Vendor(nil), previous[:idx]...), previous[idx+1:]...)
	if err := s.saveLocked(); err != nil {
		s.vendors = previous
		return parsererror.NewStorageError(yamlBackend, "delete vendor", err)
	}
	return nil
}

// Close is a no-op; every change is already on disk.
func (s *YAMLVendorStore) Close() error {
	return nil
}

// saveLocked writes the file through a temporary file and a rename so a crash
// never leaves a truncated file behind. Callers hold s.mu.
func (s *YAMLVendorStore) saveLocked() error {
	file := vendorFile{Vendors: s.vendors, Mappings: make([]models.VendorMapping, 0, len(s.mappings))}
	for _, m := range s.mappings {
		file.Mappings = append(file.Mappings, m)
	}
	sort.Slice(file.Mappings, func(i, j int) bool {
		if file.Mappings[i].Owner != file.Mappings[j].Owner {
			return file.Mappings[i].Owner < file.Mappings[j].Owner
		}
		return file.Mappings[i].RawKey < file.Mappings[j].RawKey
	})

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("error marshaling vendors: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".vendors-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error writing vendors: %w", err)
	}
	if err := tmp.Chmod(models.PermissionDataFile); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("error setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing temporary file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("error replacing vendor file: %w", err)
	}
	return nil
}
