package domain

import "strings"

// NormalizeDrinkType canonicalizes a drink label so that "Green  Tea" and
// "green tea" are stored and totalled as the same drink. Any run of
// whitespace becomes one space; diacritics are kept.
func NormalizeDrinkType(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}
