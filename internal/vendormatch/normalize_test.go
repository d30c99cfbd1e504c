package vendormatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"store number kept, country code dropped", "TESCO STORES 2093 LONDON GB", "Tesco Stores 2093 London"},
		{"legal suffix", "PRET A MANGER LTD", "Pret A Manger"},
		{"boilerplate and reference", "DIRECT DEBIT TO BRITISH GAS REF 123456789", "British Gas"},
		{"card payment prefix", "CARD PAYMENT TO GREGGS", "Greggs"},
		{"masked card", "STARBUCKS ****1234", "Starbucks"},
		{"asterisk separator", "UBER *TRIP", "Uber Trip"},
		{"routing tail", "DELIVEROO VIA APPLE PAY", "Deliveroo"},
		{"date", "BOOTS 12/03/2024", "Boots"},
		{"long reference number", "THAMES WATER 98765432", "Thames Water"},
		{"whitespace collapse", "  costa    coffee  ", "Costa Coffee"},
		{"separator tokens dropped", "WAITROSE - KINGSTON", "Waitrose Kingston"},
		{"already normalized", "Tesco Stores", "Tesco Stores"},
		{"everything stripped falls back to raw", "  ****1234 ", "****1234"},
		{"empty", "", ""},
		{"blank", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.raw))
		})
	}
}

func TestNormalize_StripsNoiseTokens(t *testing.T) {
	got := Normalize("TESCO STORES 2093 LONDON GB")

	assert.NotContains(t, strings.Fields(got), "GB")
	assert.NotContains(t, strings.Fields(got), "Gb")
	assert.True(t, strings.HasPrefix(got, "Tesco"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"TESCO STORES 2093 LONDON GB",
		"CARD PAYMENT TO SAINSBURYS S/MKTS REF: X99",
		"DIRECT DEBIT TO BRITISH GAS REF 123456789",
		"AMAZON UK MARKETPLACE",
		"PAYPAL *SPOTIFY",
		"ACME LTD LTD",
		"FASTER PAYMENT TO J SMITH",
		"STANDING ORDER TO LANDLORD LIMITED 01/02/2024",
		"NETFLIX.COM 866-579-7172 US",
		"****1234",
		"- / -",
		"mcdonalds 4521 london",
		"Tfl Travel Charge",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestStripNoise_DropsSeparatorOnlyTokens(t *testing.T) {
	assert.Equal(t, "A B", stripNoise("A - B"))
	assert.Equal(t, "A B", stripNoise("A // B"))
	assert.Equal(t, "A-B", stripNoise("A-B"))
}
