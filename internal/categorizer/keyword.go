package categorizer

import (
	"fjacquet/budget-sync/internal/models"
)

// KeywordStrategy suggests categories from a rule table of brand and keyword
// patterns.
type KeywordStrategy struct {
	table *Table
}

// NewKeywordStrategy creates a KeywordStrategy. A nil table selects the
// built-in one.
func NewKeywordStrategy(table *Table) *KeywordStrategy {
	if table == nil {
		table = DefaultTable()
	}
	return &KeywordStrategy{table: table}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Suggest ignores the user's categories; the table is static.
func (s *KeywordStrategy) Suggest(preprocessed string, _ []models.Category) *models.CategorySuggestion {
	r, ok := s.table.Match(preprocessed)
	if !ok {
		return nil
	}
	return r.Suggestion()
}
