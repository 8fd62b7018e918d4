package parser

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// normalize folds compatibility characters (full-width digits, ligatures,
// double primes) with NFKC, lower-cases and collapses whitespace.
// A cases.Caser keeps state, so one is built per call.
func normalize(text string) string {
	folded := norm.NFKC.String(text)
	lower := cases.Lower(language.Und).String(folded)
	return strings.Join(strings.Fields(lower), " ")
}
