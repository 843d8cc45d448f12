package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeName trims whitespace and title-cases a boundary display name.
// Casers are stateful, so each call gets its own.
func NormalizeName(name string) string {
	return cases.Title(language.English).String(strings.TrimSpace(name))
}

// CountyKey extracts the join key from a raw county label: the text before
// the first comma, trimmed. "Davidson, TN" → "Davidson".
func CountyKey(label string) string {
	head, _, _ := strings.Cut(label, ",")
	return strings.TrimSpace(head)
}

// matchKey folds case so boundary names and county keys compare equal
// regardless of how either side was capitalized.
func matchKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
