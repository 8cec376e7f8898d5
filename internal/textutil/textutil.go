package textutil

import (
	"strings"
	"unicode/utf8"
)

// Shorten collapses all whitespace runs to single spaces, trims the ends, and
// truncates the result to at most max characters, cutting at the last word
// boundary and appending "..." when text was dropped. A non-positive max
// disables truncation.
func Shorten(s string, max int) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		return ""
	}
	if max <= 0 || len(collapsed) <= max {
		return collapsed
	}
	end := max
	for end > 0 && !utf8.RuneStart(collapsed[end]) {
		end--
	}
	cut := collapsed[:end]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
