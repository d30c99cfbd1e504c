package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		layout   string
	}{
		{"iso", "2024-03-12", time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), DateLayoutISO},
		{"uk day first", "03/04/2024", time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC), DateLayoutUK},
		{"dotted", "12.03.2024", time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC), DateLayoutDotted},
		{"month first fallback", "12/31/2024", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), "01/02/2006"},
		{"short month", "5 Mar 2024", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "2 Jan 2006"},
		{"extra whitespace", "  05   Mar  2024 ", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), "02 Jan 2006"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, layout, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(got), "got %s", got)
			assert.Equal(t, tt.layout, layout)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not a date", "2024-13-45"} {
		_, _, err := ParseDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-05", FormatDate(d, ""))
	assert.Equal(t, "05/03/2024", FormatDate(d, DateLayoutUK))
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "05 Mar 2024", CleanDateString("  05 \t Mar   2024\n"))
}

func TestLayoutFromPattern(t *testing.T) {
	tests := map[string]string{
		"YYYY-MM-DD":  "2006-01-02",
		"DD/MM/YYYY":  "02/01/2006",
		"DD.MM.YYYY":  "02.01.2006",
		"DD MMM YYYY": "02 Jan 2006",
		"DD/MM/YY":    "02/01/06",
		"2006-01-02":  "2006-01-02",
		"":            DateLayoutISO,
	}

	for pattern, expected := range tests {
		assert.Equal(t, expected, LayoutFromPattern(pattern), "pattern %q", pattern)
	}
}

func TestReformat(t *testing.T) {
	got, err := Reformat("12/03/2024", DateLayoutISO)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", got)

	got, err = Reformat(" yesterday ", DateLayoutISO)
	assert.Error(t, err)
	assert.Equal(t, "yesterday", got)
}
