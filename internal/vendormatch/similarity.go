package vendormatch

import "strings"

// Similarity scores two strings in [0, 1], ignoring case:
//
//   - equal strings score 1 (two empty strings included);
//   - when one contains the other, the score is len(shorter)/len(longer), so a
//     short name inside a much longer one still scores low;
//   - otherwise 1 - levenshtein/max(len).
//
// Lengths are counted in runes. The result does not depend on argument order.
func Similarity(a, b string) float64 {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == lb {
		return 1.0
	}

	ra, rb := []rune(la), []rune(lb)
	shorter, longer := la, lb
	ns, nl := len(ra), len(rb)
	if ns > nl {
		shorter, longer = lb, la
		ns, nl = nl, ns
	}

	if strings.Contains(longer, shorter) {
		return float64(ns) / float64(nl)
	}

	dist := levenshteinRunes(ra, rb)
	return 1.0 - float64(dist)/float64(nl)
}

// Levenshtein returns the edit distance between a and b with unit costs for
// insertion, deletion and substitution. It is case-sensitive.
func Levenshtein(a, b string) int {
	return levenshteinRunes([]rune(a), []rune(b))
}

func levenshteinRunes(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows of the DP matrix are enough.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
