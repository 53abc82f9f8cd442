// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email address for storage and lookup.
// Syntax validation happens elsewhere; this only canonicalizes.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name and collapses internal whitespace runs to a
// single space.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
