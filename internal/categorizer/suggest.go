package categorizer

import (
	"strings"

	"fjacquet/budget-sync/internal/models"
)

// Suggest returns a category suggestion for vendorName from the built-in rule
// table, or nil when no rule matches.
func Suggest(vendorName string) *models.CategorySuggestion {
	return DefaultTable().Suggest(vendorName)
}

// ResolveCategory maps a suggestion onto one of the user's categories. It
// tries, in order: a case-insensitive exact name match, a category name
// contained in the keyword, and the keyword contained in a category name.
// Each pass scans the whole list before the next pass starts. It returns nil
// when nothing matches.
func ResolveCategory(suggestion *models.CategorySuggestion, categories []models.Category) *models.Category {
	if suggestion == nil {
		return nil
	}
	keyword := strings.ToLower(strings.TrimSpace(suggestion.CategoryKeyword))
	if keyword == "" {
		return nil
	}

	matchers := []func(name string) bool{
		func(name string) bool { return name == keyword },
		func(name string) bool { return strings.Contains(keyword, name) },
		func(name string) bool { return strings.Contains(name, keyword) },
	}

	for _, matches := range matchers {
		for i := range categories {
			name := strings.ToLower(strings.TrimSpace(categories[i].Name))
			if name == "" {
				continue
			}
			if matches(name) {
				c := categories[i]
				return &c
			}
		}
	}
	return nil
}
