package vendormatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "Tesco", "Tesco", 1.0},
		{"case insensitive", "TESCO", "tesco", 1.0},
		{"both empty", "", "", 1.0},
		{"containment", "Tesco", "Tesco Superstore", 5.0 / 16.0},
		{"containment reversed", "Tesco Superstore", "Tesco", 5.0 / 16.0},
		{"empty contained in anything", "", "abc", 0.0},
		{"single substitution", "kitten", "sitten", 1.0 - 1.0/6.0},
		{"classic levenshtein", "kitten", "sitting", 1.0 - 3.0/7.0},
		{"nothing in common", "abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"Sainsburys", "Sainsbury's"},
		{"a", "bbbbbbbbbb"},
		{"Costa Coffee", "Costa"},
		{"", "x"},
		{"Café Nero", "Cafe Nero"},
	}

	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
		assert.Equal(t, s, Similarity(p[1], p[0]), "%q / %q", p[0], p[1])
	}
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, Levenshtein("", ""))
	assert.Equal(t, 3, Levenshtein("", "abc"))
	assert.Equal(t, 3, Levenshtein("kitten", "sitting"))
	assert.Equal(t, 1, Levenshtein("café", "cafe"))
}
