// Package textnorm folds visitor text into a comparable form: lower case,
// no diacritics, words separated by single spaces.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining marks, so "Après-Demain" becomes
// "apres-demain". Punctuation is preserved.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Normalize folds s and collapses every run of non letter/digit runes into a
// single space.
func Normalize(s string) string {
	return strings.Join(Words(s), " ")
}

// Words returns the folded words of s.
func Words(s string) []string {
	return strings.FieldsFunc(Fold(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContainsPhrase reports whether phrase occurs in text on word boundaries.
// Both arguments must already be normalized.
func ContainsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(" "+text+" ", " "+phrase+" ")
}

// ContainsPrefix reports whether any word of text starts with prefix.
func ContainsPrefix(text, prefix string) bool {
	if prefix == "" {
		return false
	}
	return strings.HasPrefix(text, prefix) || strings.Contains(text, " "+prefix)
}
