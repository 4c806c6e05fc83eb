// Package textutil prepares catalogue text (titles, captions, alt text) for
// display in a terminal cell grid.
package textutil

import (
	"strings"
	"unicode"
)

// Bidi overrides and zero-width characters. Captions come from manifests and
// file names, so these are removed rather than rendered.
var formattingRunes = map[rune]struct{}{
	0x061C: {}, 0x200B: {}, 0x200C: {}, 0x200D: {}, 0x200E: {}, 0x200F: {},
	0x202A: {}, 0x202B: {}, 0x202C: {}, 0x202D: {}, 0x202E: {},
	0x2028: {}, 0x2029: {}, 0x00AD: {}, 0x180E: {}, 0x2060: {},
	0x2066: {}, 0x2067: {}, 0x2068: {}, 0x2069: {},
	0x206A: {}, 0x206B: {}, 0x206C: {}, 0x206D: {}, 0x206E: {}, 0x206F: {},
	0xFEFF: {},
}

// SanitizeTerminalText replaces control characters so user-controlled text cannot
// inject terminal escape sequences when rendered.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if requiresSanitization(r) {
			return sanitize(text)
		}
	}
	return text
}

func requiresSanitization(r rune) bool {
	if isFormattingRune(r) {
		return true
	}
	return r < 0x20 || r == 0x7f
}

func sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case isFormattingRune(r):
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanCaption sanitizes text and collapses whitespace runs into single spaces.
func CleanCaption(text string) string {
	text = SanitizeTerminalText(text)
	return strings.Join(strings.FieldsFunc(text, unicode.IsSpace), " ")
}

func isFormattingRune(r rune) bool {
	_, ok := formattingRunes[r]
	return ok
}
