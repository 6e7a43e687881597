package util

import (
	"strings"
	"unicode/utf8"
)

// NormalizeSpaces trims the input and collapses every whitespace run to a
// single space.
func NormalizeSpaces(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// SplitLines breaks extracted text into trimmed lines. Blank lines are kept:
// they carry meaning for the register scanner. Page breaks (form feeds) and
// the unicode line separators count as line ends, and a trailing newline does
// not produce an extra empty line.
func SplitLines(text string) []string {
	text = strings.ToValidUTF8(text, "")
	out := []string{}
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		out = append(out, strings.TrimSpace(text[start:i]))
		i += size
		if r == '\r' && i < len(text) && text[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(text) {
		out = append(out, strings.TrimSpace(text[start:]))
	}
	return out
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
