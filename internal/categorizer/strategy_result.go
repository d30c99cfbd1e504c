package categorizer

import (
	"fmt"
	"strings"

	"fjacquet/budget-sync/internal/models"
)

// StrategyResult is the outcome of one strategy for one vendor.
type StrategyResult struct {
	Strategy   string
	Suggestion *models.CategorySuggestion
}

// Found reports whether the strategy produced a suggestion.
func (r StrategyResult) Found() bool {
	return r.Suggestion != nil
}

// StrategyResults collects the outcome of every strategy, in evaluation order.
type StrategyResults struct {
	Vendor       string
	Preprocessed string
	Results      []StrategyResult
}

// Best returns the suggestion of the first strategy that found one.
func (sr StrategyResults) Best() *models.CategorySuggestion {
	for _, r := range sr.Results {
		if r.Found() {
			return r.Suggestion
		}
	}
	return nil
}

// Summary returns a human-readable summary of all strategy attempts.
func (sr StrategyResults) Summary() string {
	parts := make([]string, 0, len(sr.Results))
	for _, r := range sr.Results {
		status := "no_match"
		if r.Found() {
			status = fmt.Sprintf("%s(%s)", r.Suggestion.CategoryKeyword, r.Suggestion.Confidence)
		}
		parts = append(parts, fmt.Sprintf("%s:%s", r.Strategy, status))
	}
	return strings.Join(parts, ", ")
}
