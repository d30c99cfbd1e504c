package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{input: "12.50", want: "12.5", wantOK: true},
		{input: "-4,20", want: "-4.2", wantOK: true},
		{input: "£1,234.56", want: "1234.56", wantOK: true},
		{input: " 99 EUR", want: "99", wantOK: true},
		{input: "1'000.00", want: "1000", wantOK: true},
		{input: "£1,250", want: "1250", wantOK: true},
		{input: "-2,500", want: "-2500", wantOK: true},
		{input: "1,234", want: "1234", wantOK: true},
		{input: "1.234,56", want: "1234.56", wantOK: true},
		{input: "€-1.234.567,89", want: "-1234567.89", wantOK: true},
		{input: "1,234,567", want: "1234567", wantOK: true},
		{input: "1.234.567", want: "1234567", wantOK: true},
		{input: "0,5", want: "0.5", wantOK: true},
		{input: "", want: "0", wantOK: false},
		{input: "n/a", want: "0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestRawTransaction_MerchantName(t *testing.T) {
	assert.Equal(t, "TESCO", RawTransaction{Payee: "TESCO", Description: "groceries"}.MerchantName())
	assert.Equal(t, "CARD PAYMENT TO PRET", RawTransaction{Payee: "  ", Description: "CARD PAYMENT TO PRET"}.MerchantName())
}

func TestResolution_Degraded(t *testing.T) {
	assert.False(t, Resolution{VendorID: "v1", VendorName: "Tesco"}.Degraded())
	assert.True(t, Resolution{VendorName: "Tesco"}.Degraded())
	assert.False(t, Resolution{}.Degraded())
}

func TestFindVendor(t *testing.T) {
	vendors := []Vendor{{ID: "a", Name: "Aldi"}, {ID: "b", Name: "Boots"}}
	v, ok := FindVendor(vendors, "b")
	assert.True(t, ok)
	assert.Equal(t, "Boots", v.Name)

	_, ok = FindVendor(vendors, "zzz")
	assert.False(t, ok)
}

func TestParseConfidence(t *testing.T) {
	c, ok := ParseConfidence(" High ")
	assert.True(t, ok)
	assert.Equal(t, ConfidenceHigh, c)

	_, ok = ParseConfidence("certain")
	assert.False(t, ok)
}

func TestRawTransaction_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantPayee string
	}{
		{"payee", `{"payee":"GREGGS","merchant":"IGNORED"}`, "GREGGS"},
		{"merchant alias", `{"merchant":"TESCO STORES 2093"}`, "TESCO STORES 2093"},
		{"merchant_name alias", `{"merchant_name":"PRET A MANGER"}`, "PRET A MANGER"},
		{"blank payee falls back to alias", `{"payee":" ","merchant":"BOOTS"}`, "BOOTS"},
		{"no merchant keys", `{"description":"CARD PAYMENT TO COSTA"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tx RawTransaction
			require.NoError(t, json.Unmarshal([]byte(tt.input), &tx))
			assert.Equal(t, tt.wantPayee, tx.Payee)
		})
	}
}

func TestRawTransaction_UnmarshalJSON_KeepsOtherFields(t *testing.T) {
	var tx RawTransaction
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-03-15","merchant":"LIDL","amount":"-12.99","reference":"R1"}`), &tx))

	assert.Equal(t, "2024-03-15", tx.Date)
	assert.Equal(t, "LIDL", tx.MerchantName())
	assert.Equal(t, "-12.99", tx.Amount.String())
	assert.Equal(t, "R1", tx.Reference)
}
