// Package categorizer suggests budget categories for vendors.
//
// Suggestions come from an ordered list of strategies:
//  1. a static table of brand rules (high confidence) and category keywords
//     (medium confidence), embedded from rules.yaml;
//  2. the user's own category names found in the vendor name (low confidence).
//
// A suggestion is then mapped onto the user's categories with ResolveCategory.
package categorizer

import (
	"fmt"
	"strings"
	"sync"

	"fjacquet/budget-sync/internal/logging"
	"fjacquet/budget-sync/internal/models"

	"github.com/google/uuid"
)

// Categorizer runs the suggestion strategies against a vendor name and maps the
// result onto the user's category list, optionally creating missing
// categories.
type Categorizer struct {
	strategies []SuggestionStrategy
	store      CategoryStoreInterface
	logger     logging.Logger
	autoCreate bool

	mu         sync.RWMutex
	categories []models.Category
}

// Option configures a Categorizer.
type Option func(*Categorizer)

// WithAutoCreate makes Categorize create a category from the suggestion
// keywords when the user has no matching one.
func WithAutoCreate(enabled bool) Option {
	return func(c *Categorizer) { c.autoCreate = enabled }
}

// WithStrategies replaces the default strategy list.
func WithStrategies(strategies ...SuggestionStrategy) Option {
	return func(c *Categorizer) { c.strategies = strategies }
}

// NewCategorizer creates a Categorizer and loads the user's categories from
// store. A store that fails to load leaves the category list empty.
func NewCategorizer(store CategoryStoreInterface, logger logging.Logger, opts ...Option) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}

	c := &Categorizer{
		strategies: []SuggestionStrategy{
			NewKeywordStrategy(nil),
			NewUserCategoryStrategy(),
		},
		store:  store,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	if store != nil {
		categories, err := store.LoadCategories()
		if err != nil {
			c.logger.WithError(err).Warn("Failed to load categories")
		} else {
			c.categories = categories
		}
	}

	return c
}

// Categories returns a copy of the user's categories.
func (c *Categorizer) Categories() []models.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Suggest returns the first suggestion produced by the strategies, or nil.
func (c *Categorizer) Suggest(vendorName string) *models.CategorySuggestion {
	return c.Explain(vendorName).Best()
}

// Explain runs every strategy and reports each outcome.
func (c *Categorizer) Explain(vendorName string) StrategyResults {
	categories := c.Categories()
	preprocessed := Preprocess(vendorName)

	results := StrategyResults{
		Vendor:       vendorName,
		Preprocessed: preprocessed,
		Results:      make([]StrategyResult, 0, len(c.strategies)),
	}
	for _, s := range c.strategies {
		results.Results = append(results.Results, StrategyResult{
			Strategy:   s.Name(),
			Suggestion: s.Suggest(preprocessed, categories),
		})
	}
	return results
}

// Categorize suggests a category for vendorName and resolves it against the
// user's categories. The suggestion is nil when no strategy matched; the
// category is nil when the suggestion could not be resolved (and was not
// created). An error is only returned when a new category could not be saved.
func (c *Categorizer) Categorize(vendorName string) (*models.CategorySuggestion, *models.Category, error) {
	suggestion := c.Suggest(vendorName)
	if suggestion == nil {
		c.logger.Debug("No category suggestion",
			logging.Field{Key: logging.FieldVendorName, Value: vendorName})
		return nil, nil, nil
	}

	log := c.logger.WithFields(
		logging.Field{Key: logging.FieldVendorName, Value: vendorName},
		logging.Field{Key: logging.FieldCategory, Value: suggestion.CategoryKeyword},
		logging.Field{Key: logging.FieldConfidence, Value: suggestion.Confidence},
	)

	if category := ResolveCategory(suggestion, c.Categories()); category != nil {
		log.Debug("Suggestion resolved to user category")
		return suggestion, category, nil
	}

	if !c.autoCreate {
		log.Debug("Suggestion matches no user category")
		return suggestion, nil, nil
	}

	category, err := c.createCategory(suggestion)
	if err != nil {
		return suggestion, nil, err
	}
	log.Info("Created category from suggestion",
		logging.Field{Key: logging.FieldGroup, Value: category.Group})
	return suggestion, category, nil
}

func (c *Categorizer) createCategory(suggestion *models.CategorySuggestion) (*models.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another vendor of the same import may have created it already.
	if existing := ResolveCategory(suggestion, c.categories); existing != nil {
		return existing, nil
	}

	category := models.Category{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(suggestion.CategoryKeyword),
		Group: strings.TrimSpace(suggestion.GroupKeyword),
	}
	updated := append(append([]models.Category(nil), c.categories...), category)

	if c.store != nil {
		if err := c.store.SaveCategories(updated); err != nil {
			return nil, fmt.Errorf("failed to save category %q: %w", category.Name, err)
		}
	}
	c.categories = updated
	return &category, nil
}
