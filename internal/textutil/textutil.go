// Package textutil folds names and spreadsheet headers into comparable keys.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CollapseSpaces trims the value and reduces inner whitespace runs to one space.
func CollapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// FoldKey is the case- and whitespace-insensitive identity of a name.
func FoldKey(value string) string {
	return cases.Fold().String(CollapseSpaces(value))
}

// StripAccents removes combining marks, e.g. "Saída" -> "Saida".
func StripAccents(value string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(chain, value)
	if err != nil {
		return value
	}
	return out
}

// NormalizeHeader folds a column header so "Saída 1", "saida_1" and "SAIDA-1"
// compare equal.
func NormalizeHeader(input string) string {
	trimmed := FoldKey(StripAccents(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
