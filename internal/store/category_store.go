package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/budget-sync/internal/logging"
	"fjacquet/budget-sync/internal/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DefaultCategoriesFile is used when no categories file is configured.
const DefaultCategoriesFile = "categories.yaml"

// categoryNamespace seeds the ids of categories written by hand without one,
// so the same name always gets the same id.
var categoryNamespace = uuid.MustParse("6f1c64a4-3c52-4b43-9a7e-7a0d3b9f5e21")

// CategoryStore manages loading and saving of the user's category list.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a new store for the categories file.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &CategoryStore{CategoriesFile: categoriesFile, logger: logger}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "budget-sync", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

func (s *CategoryStore) filename() string {
	if s.CategoriesFile == "" {
		return DefaultCategoriesFile
	}
	return s.CategoriesFile
}

// LoadCategories loads the category list. A missing file is an empty list.
// Both the "categories:" document layout and a bare list are accepted.
func (s *CategoryStore) LoadCategories() ([]models.Category, error) {
	filename := s.filename()

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("Categories file not found", logging.Field{Key: logging.FieldFile, Value: filename})
			return []models.Category{}, nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var categories []models.Category
	var doc models.CategoriesConfig
	if err := yaml.Unmarshal(data, &doc); err == nil {
		categories = doc.Categories
	} else if listErr := yaml.Unmarshal(data, &categories); listErr != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}

	out := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		if c.ID == "" {
			c.ID = uuid.NewSHA1(categoryNamespace, []byte(strings.ToLower(c.Name))).String()
		}
		out = append(out, c)
	}

	s.logger.Debug("Loaded categories",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(out)})
	return out, nil
}

// SaveCategories writes the category list, to the existing file when one is
// found and to the database directory otherwise.
func (s *CategoryStore) SaveCategories(categories []models.Category) error {
	filename := s.filename()

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error resolving categories file: %w", err)
		}
		filePath = filename
		if !filepath.IsAbs(filename) {
			filePath = filepath.Join("database", filename)
		}
	}

	if err := os.MkdirAll(filepath.Dir(filePath), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(models.CategoriesConfig{Categories: categories})
	if err != nil {
		return fmt.Errorf("error marshaling categories: %w", err)
	}

	if err := os.WriteFile(filePath, data, models.PermissionDataFile); err != nil {
		return fmt.Errorf("error writing categories: %w", err)
	}

	s.logger.Debug("Saved categories",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(categories)})
	return nil
}
