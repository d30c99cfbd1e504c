package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// RawTransaction is one row of an incoming feed, before vendor resolution.
// CSV columns map through the csv tags and bank-sync JSON through the json tags.
type RawTransaction struct {
	Date        string          `csv:"Date" json:"date"`
	Payee       string          `csv:"Payee" json:"payee"`
	Description string          `csv:"Description" json:"description"`
	Amount      decimal.Decimal `csv:"-" json:"amount"`
	AmountText  string          `csv:"Amount" json:"-"`
	Reference   string          `csv:"Reference" json:"reference"`
	Source      string          `csv:"-" json:"source"`
}

// MerchantName returns the raw merchant string used for vendor resolution:
// the payee, or the description when the feed left the payee empty.
func (t RawTransaction) MerchantName() string {
	if name := strings.TrimSpace(t.Payee); name != "" {
		return t.Payee
	}
	return t.Description
}

// UnmarshalJSON reads a bank-sync row. Feeds that name the merchant
// "merchant" or "merchant_name" instead of "payee" fill Payee from it.
func (t *RawTransaction) UnmarshalJSON(data []byte) error {
	type plain RawTransaction
	aux := struct {
		*plain
		Merchant     string `json:"merchant"`
		MerchantName string `json:"merchant_name"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if strings.TrimSpace(t.Payee) == "" {
		for _, alias := range []string{aux.Merchant, aux.MerchantName} {
			if strings.TrimSpace(alias) != "" {
				t.Payee = alias
				break
			}
		}
	}
	return nil
}

// ImportedTransaction is a RawTransaction enriched with its vendor link and
// category choice, ready to be written out.
type ImportedTransaction struct {
	Date              string     `csv:"Date"`
	RawPayee          string     `csv:"RawPayee"`
	Description       string     `csv:"Description"`
	Amount            string     `csv:"Amount"`
	Reference         string     `csv:"Reference"`
	VendorID          string     `csv:"VendorID"`
	VendorName        string     `csv:"Vendor"`
	VendorIsNew       bool       `csv:"NewVendor"`
	CategoryID        string     `csv:"CategoryID"`
	CategoryName      string     `csv:"Category"`
	SuggestedCategory string     `csv:"SuggestedCategory"`
	SuggestedGroup    string     `csv:"SuggestedGroup"`
	Confidence        Confidence `csv:"Confidence"`
}

// ParseAmount converts a human-formatted amount into a decimal. Currency
// symbols and spaces are dropped. When both "," and "." appear, the last one is
// the decimal separator. A lone "," is a thousands separator when it repeats or
// is followed by exactly three digits ("1,250"), otherwise a decimal comma
// ("4,20"). Repeated "." are thousands separators ("1.234.567").
// Unparsable input yields decimal.Zero and false.
func ParseAmount(amountStr string) (decimal.Decimal, bool) {
	amount := strings.TrimSpace(amountStr)
	for _, sym := range []string{"GBP", "EUR", "USD", "CHF", "£", "€", "$", " ", "'"} {
		amount = strings.ReplaceAll(amount, sym, "")
	}
	if amount == "" {
		return decimal.Zero, false
	}

	lastComma := strings.LastIndex(amount, ",")
	lastDot := strings.LastIndex(amount, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// 1.234,56
			amount = strings.ReplaceAll(amount, ".", "")
			amount = strings.Replace(amount, ",", ".", 1)
		} else {
			// 1,234.56
			amount = strings.ReplaceAll(amount, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(amount, ",") > 1 || isThousandsGroup(amount[lastComma+1:]) {
			amount = strings.ReplaceAll(amount, ",", "")
		} else {
			amount = strings.Replace(amount, ",", ".", 1)
		}
	case strings.Count(amount, ".") > 1:
		amount = strings.ReplaceAll(amount, ".", "")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	return dec, true
}

func isThousandsGroup(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
