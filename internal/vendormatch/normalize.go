// Package vendormatch turns noisy merchant strings from bank feeds into vendor
// records: it normalizes names, scores similarity against a user's vendors and
// remembers which raw string resolved to which vendor.
package vendormatch

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// noisePatterns are removed in order, case-insensitively. None of them is
// anchored to the start of the string, so removing one match never exposes a
// new match for a pattern that already ran.
var noisePatterns = []*regexp.Regexp{
	// Payment-method boilerplate. Longer phrases first: alternation is leftmost-first.
	regexp.MustCompile(`(?i)\b(card payment to|card payment|debit card payment|card purchase|pos purchase|` +
		`contactless payment|contactless|direct debit to|direct debit|standing order to|standing order|` +
		`faster payments? (to|from)|faster payments?|bank transfer (to|from)|bank transfer|` +
		`bill payment to|bill payment|online payment|payment to|payment from|paid to|` +
		`(apple|google|samsung) pay)\b`),
	// REF: ABC123 / REFERENCE 99
	regexp.MustCompile(`(?i)\bref(erence)?\b[.:#]?\s*\S*`),
	// VIA APPLE PAY, VIA PAYPAL: drop the routing tail.
	regexp.MustCompile(`(?i)\bvia\b.*$`),
	// Masked card fragments: ****1234, XX1234, CARD ENDING 1234.
	regexp.MustCompile(`(?i)(\*{2,}|\bx{2,})\d{2,4}\b`),
	regexp.MustCompile(`(?i)\bcard\s*(no\.?|number|ending)?\s*(in\s*)?\d{4}\b`),
	regexp.MustCompile(`(?i)\bending\s*(in\s*)?\d{4}\b`),
	// Dates: 12/03/2024, ON 12/03.
	regexp.MustCompile(`\b\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4}\b`),
	regexp.MustCompile(`(?i)\bon\s+\d{1,2}[/.-]\d{1,2}\b`),
	// Long reference numbers. Short store numbers (e.g. 2093) are kept.
	regexp.MustCompile(`\b\d{6,}\b`),
	// Legal-entity suffixes.
	regexp.MustCompile(`(?i)\b(ltd|limited|plc|llc|llp|inc|corp|gmbh)\b\.?`),
	// Country codes.
	regexp.MustCompile(`(?i)\b(gb|gbr|uk|us|usa|irl)\b`),
	regexp.MustCompile(`[*#]+`),
}

// maxNormalizePasses bounds the fixed-point loop in Normalize.
const maxNormalizePasses = 4

// Normalize strips bank-transaction noise from a raw merchant string, collapses
// whitespace and title-cases every word. When nothing survives the stripping,
// the trimmed raw string is returned so a name is never empty.
//
// Normalize is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	cleaned := raw
	for i := 0; i < maxNormalizePasses; i++ {
		next := stripNoise(cleaned)
		if next == cleaned {
			break
		}
		cleaned = next
	}

	if cleaned == "" {
		return strings.TrimSpace(raw)
	}
	return titleCase(cleaned)
}

// stripNoise runs one pass of every noise pattern, then drops tokens made only
// of separators and joins the rest with single spaces.
func stripNoise(s string) string {
	for _, re := range noisePatterns {
		s = re.ReplaceAllString(s, " ")
	}

	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if isSeparatorToken(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

func isSeparatorToken(tok string) bool {
	return strings.Trim(tok, "-–—,.:;/|\\_+") == ""
}

// titleCase capitalizes the first letter of each word and lowercases the rest.
// A Caser keeps state, so one is built per call.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
