package categorizer

import "fjacquet/budget-sync/internal/models"

// SuggestionStrategy is one way of guessing a category for a vendor.
// Strategies are evaluated in order by the Categorizer; the first one that
// returns a suggestion wins.
type SuggestionStrategy interface {
	// Suggest receives the preprocessed vendor name and the user's categories.
	// It returns nil when it has no opinion.
	Suggest(preprocessed string, categories []models.Category) *models.CategorySuggestion

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
