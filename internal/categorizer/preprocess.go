package categorizer

import (
	"regexp"
	"strings"
)

// leadingBoilerplate is checked in order; at most one phrase is removed.
var leadingBoilerplate = []string{
	"card payment to",
	"payment to",
	"direct debit to",
	"standing order to",
	"transfer to",
	"transfer from",
	"pos ",
	"visa ",
	"mastercard ",
	"debit ",
}

var (
	separatorReplacer = strings.NewReplacer("_", " ", "-", " ", "–", " ", "—", " ")
	trailingRef       = regexp.MustCompile(`\sref\b.*$`)
	trailingToken     = regexp.MustCompile(`\s([a-z0-9]{6,})$`)
)

// Preprocess lowercases a vendor name and strips the parts that carry no
// category signal: separators, a leading payment phrase, a trailing
// "ref ..." suffix and a trailing reference code. A reference code is a final
// token of six or more letters and digits containing at least one digit; a
// final all-letter word such as a town name ("tesco london") is kept, since it
// cannot be told apart from part of the merchant name.
func Preprocess(vendorName string) string {
	s := strings.ToLower(strings.TrimSpace(vendorName))
	s = separatorReplacer.Replace(s)
	s = strings.Join(strings.Fields(s), " ")

	for _, phrase := range leadingBoilerplate {
		rest, ok := strings.CutPrefix(s, phrase)
		if !ok {
			continue
		}
		// Phrases without a trailing space only count as whole words.
		if rest != "" && !strings.HasSuffix(phrase, " ") && rest[0] != ' ' {
			continue
		}
		s = strings.TrimSpace(rest)
		break
	}

	s = trailingRef.ReplaceAllString(s, "")
	if m := trailingToken.FindStringSubmatchIndex(s); m != nil {
		if strings.ContainsAny(s[m[2]:m[3]], "0123456789") {
			s = s[:m[0]]
		}
	}

	return strings.TrimSpace(s)
}
