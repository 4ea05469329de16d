// Package strutil contains string utilities.
package strutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Title returns s with the first rune changed to upper case.
func Title(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToTitle(r)) + s[size:]
}

// ChopLineEnding removes a line ending ("\r\n" or "\n") from the end of s.
// It returns s if it doesn't end with a line ending.
func ChopLineEnding(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	} else if strings.HasSuffix(s, "\n") {
		return s[:len(s)-1]
	}
	return s
}

// JoinLines appends a newline to each line and joins them.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
