package categorizer

import (
	"strings"

	"fjacquet/budget-sync/internal/models"
)

// UserCategoryStrategy suggests one of the user's own categories when its
// name appears as a whole phrase in the vendor name, e.g. "Pets" for
// "Pets At Home". These guesses are always low confidence.
type UserCategoryStrategy struct{}

// NewUserCategoryStrategy creates a UserCategoryStrategy.
func NewUserCategoryStrategy() *UserCategoryStrategy {
	return &UserCategoryStrategy{}
}

// Name returns the name of this strategy for logging and debugging.
func (s *UserCategoryStrategy) Name() string {
	return "UserCategory"
}

// Suggest returns the first category, in list order, whose name matches.
func (s *UserCategoryStrategy) Suggest(preprocessed string, categories []models.Category) *models.CategorySuggestion {
	if preprocessed == "" {
		return nil
	}
	padded := " " + preprocessed + " "

	for _, c := range categories {
		name := strings.Join(strings.Fields(strings.ToLower(c.Name)), " ")
		if name == "" {
			continue
		}
		if strings.Contains(padded, " "+name+" ") {
			return &models.CategorySuggestion{
				CategoryKeyword: c.Name,
				GroupKeyword:    c.Group,
				Confidence:      models.ConfidenceLow,
				Reason:          "Vendor name contains category name",
			}
		}
	}
	return nil
}
