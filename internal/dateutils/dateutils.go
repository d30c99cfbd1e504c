// Package dateutils parses the dates found in bank exports and formats them
// for output.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date layouts.
const (
	DateLayoutISO     = "2006-01-02"
	DateLayoutUK      = "02/01/2006"
	DateLayoutDotted  = "02.01.2006"
	DateLayoutFull    = "2006-01-02 15:04:05"
	DateLayoutISOTime = "2006-01-02T15:04:05Z07:00"
)

// CommonFormats is the list of layouts tried by ParseDate, in order. Day-first
// layouts come before month-first ones, so 03/04/2024 is the 3rd of April.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutISOTime,
	DateLayoutFull,
	DateLayoutUK,
	DateLayoutDotted,
	"02-01-2006",
	"2/1/2006",
	"02/01/06",
	"01/02/2006",
	"2006/01/02",
	"02 Jan 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate attempts to parse a date string using CommonFormats.
// Returns the parsed time and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("empty date")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// FormatDate formats a time.Time value according to the specified layout.
// If no layout is provided, DateLayoutISO is used.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// CleanDateString trims a date string and collapses inner whitespace.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// layoutTokens maps the human notation used in configuration files onto Go
// reference-time tokens. Longer tokens first.
var layoutTokens = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MMMM", "January",
	"MMM", "Jan",
	"MM", "01",
	"DD", "02",
)

// LayoutFromPattern converts a pattern such as "DD/MM/YYYY" into a Go layout.
// A string that already is a Go layout is returned unchanged.
func LayoutFromPattern(pattern string) string {
	if pattern == "" {
		return DateLayoutISO
	}
	return layoutTokens.Replace(pattern)
}

// Reformat parses dateStr and formats it with layout. When the input cannot
// be parsed it is returned cleaned but otherwise unchanged.
func Reformat(dateStr, layout string) (string, error) {
	t, _, err := ParseDate(dateStr)
	if err != nil {
		return CleanDateString(dateStr), err
	}
	return FormatDate(t, layout), nil
}
