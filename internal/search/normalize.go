package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer strips combining marks after NFD decomposition, so that
// "café" and "cafe" compare equal.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold lowercases and removes diacritics for comparison.
func fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Malformed input: fall back to case folding only.
		return strings.ToLower(s)
	}

	return strings.ToLower(folded)
}

// matches reports whether the folded haystack contains the already-folded
// needle.
func matches(haystack, foldedNeedle string) bool {
	return strings.Contains(fold(haystack), foldedNeedle)
}
