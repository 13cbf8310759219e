package collect

import (
	"strings"
	"unicode/utf8"
)

// TrimText collapses all whitespace runs to single spaces and truncates the
// result to at most limit bytes, never splitting a UTF-8 sequence. A limit
// of zero or less returns "".
func TrimText(s string, limit int) string {
	if s == "" || limit <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
