// Package models provides the data structures used throughout the application.
package models

import "strings"

// Confidence is a coarse trust label on a category suggestion.
type Confidence string

const (
	// ConfidenceHigh is produced by rules naming a specific brand.
	ConfidenceHigh Confidence = "high"
	// ConfidenceMedium is produced by generic category keywords.
	ConfidenceMedium Confidence = "medium"
	// ConfidenceLow is reserved for matches against the user's own category names.
	ConfidenceLow Confidence = "low"
)

// ParseConfidence converts a string into a Confidence. Unknown values yield false.
func ParseConfidence(s string) (Confidence, bool) {
	switch Confidence(strings.ToLower(strings.TrimSpace(s))) {
	case ConfidenceHigh:
		return ConfidenceHigh, true
	case ConfidenceMedium:
		return ConfidenceMedium, true
	case ConfidenceLow:
		return ConfidenceLow, true
	}
	return "", false
}

// CategorySuggestion is a transient guess at the budget category of a vendor.
// It is never applied without the user being able to override it.
type CategorySuggestion struct {
	CategoryKeyword string     `json:"categoryKeyword"`
	GroupKeyword    string     `json:"groupKeyword"`
	Confidence      Confidence `json:"confidence"`
	Reason          string     `json:"reason"`
}

// Category is one of a user's budget categories.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Group string `json:"group" yaml:"group"`
}

// CategoriesConfig is the layout of the categories YAML file.
type CategoriesConfig struct {
	Categories []Category `yaml:"categories"`
}
