package categorizer

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"fjacquet/budget-sync/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rule is one entry of the suggestion table.
type Rule struct {
	Pattern    *regexp.Regexp
	Category   string
	Group      string
	Confidence models.Confidence
	Reason     string
}

// Suggestion converts the rule into a new suggestion value.
func (r Rule) Suggestion() *models.CategorySuggestion {
	return &models.CategorySuggestion{
		CategoryKeyword: r.Category,
		GroupKeyword:    r.Group,
		Confidence:      r.Confidence,
		Reason:          r.Reason,
	}
}

type ruleEntry struct {
	Pattern    string `yaml:"pattern"`
	Category   string `yaml:"category"`
	Group      string `yaml:"group"`
	Confidence string `yaml:"confidence"`
	Reason     string `yaml:"reason"`
}

type ruleFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

// Table is an ordered, immutable list of suggestion rules. The first rule
// whose pattern matches wins.
type Table struct {
	rules []Rule
}

// ParseTable decodes and compiles a YAML rule document. Every high-confidence
// rule must precede every medium-confidence rule; low confidence is not
// allowed in a table.
func ParseTable(data []byte) (*Table, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing rule table: %w", err)
	}

	rules := make([]Rule, 0, len(file.Rules))
	seenMedium := false
	for i, entry := range file.Rules {
		if entry.Pattern == "" || entry.Category == "" {
			return nil, fmt.Errorf("rule %d: pattern and category are required", i+1)
		}

		confidence, ok := models.ParseConfidence(entry.Confidence)
		if !ok || confidence == models.ConfidenceLow {
			return nil, fmt.Errorf("rule %d (%s): invalid confidence %q", i+1, entry.Category, entry.Confidence)
		}
		if confidence == models.ConfidenceMedium {
			seenMedium = true
		} else if seenMedium {
			return nil, fmt.Errorf("rule %d (%s): high-confidence rule after a medium-confidence rule", i+1, entry.Category)
		}

		re, err := regexp.Compile(entry.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i+1, entry.Category, err)
		}

		rules = append(rules, Rule{
			Pattern:    re,
			Category:   entry.Category,
			Group:      entry.Group,
			Confidence: confidence,
			Reason:     strings.TrimSpace(entry.Reason),
		})
	}

	return &Table{rules: rules}, nil
}

var (
	defaultTableOnce sync.Once
	defaultTable     *Table
)

// DefaultTable returns the built-in rule table. It is parsed on first use and
// shared afterwards; a broken built-in table is a programming error and panics.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		t, err := ParseTable(defaultRulesYAML)
		if err != nil {
			panic(fmt.Sprintf("categorizer: built-in rule table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.rules)
}

// Rules returns a copy of the rules in evaluation order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Match evaluates an already preprocessed string and returns the first
// matching rule.
func (t *Table) Match(preprocessed string) (Rule, bool) {
	if preprocessed == "" {
		return Rule{}, false
	}
	for _, r := range t.rules {
		if r.Pattern.MatchString(preprocessed) {
			return r, true
		}
	}
	return Rule{}, false
}

// Suggest preprocesses vendorName and returns the suggestion of the first
// matching rule, or nil.
func (t *Table) Suggest(vendorName string) *models.CategorySuggestion {
	r, ok := t.Match(Preprocess(vendorName))
	if !ok {
		return nil
	}
	return r.Suggestion()
}
