package util

import "strings"

// CleanText collapses whitespace (including non-breaking spaces, which
// Google Sheets HTML is full of) and trims the result.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
