// Package textfold normalizes free text into comparable keys.
//
// Synonym lookups and vocabulary matching both operate on folded text:
// lower-cased, with diacritics stripped, so "Fácil", "FACIL" and "facil"
// compare equal.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and removes combining marks.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Key folds s into a synonym-table key: trimmed, folded, with runs of
// whitespace and hyphens collapsed to a single underscore.
func Key(s string) string {
	folded := Fold(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range folded {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('_')
		}
		pendingSep = false
		b.WriteRune(r)
	}
	return b.String()
}

// Words folds s and reduces it to space-separated alphanumeric words, padded
// with one space on each side so whole-word lookups can use strings.Contains
// with " term ".
func Words(s string) string {
	folded := Fold(s)
	var b strings.Builder
	b.Grow(len(folded) + 2)
	b.WriteByte(' ')
	inWord := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			inWord = true
			continue
		}
		if inWord {
			b.WriteByte(' ')
			inWord = false
		}
	}
	if inWord {
		b.WriteByte(' ')
	}
	return b.String()
}
