package workspace

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultMaxNameLength is the rune limit applied when no positive limit is given.
	DefaultMaxNameLength = 50
	// FallbackName replaces names that sanitise to nothing usable.
	FallbackName = "untitled_project"

	placeholder = '_'
)

// SanitizeName maps an arbitrary string to a single safe path component.
//
// Surrounding whitespace is trimmed, every rune other than a Unicode letter,
// a Unicode digit, space, '-', '_' or '.' becomes '_', and the result is cut
// to maxLen runes and trimmed again. Names that end up empty or made only of
// dots become FallbackName. Separators can therefore never survive.
func SanitizeName(raw string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxNameLength
	}

	name := strings.Map(func(r rune) rune {
		if isAllowed(r) {
			return r
		}
		return placeholder
	}, strings.TrimSpace(raw))

	if utf8.RuneCountInString(name) > maxLen {
		name = string([]rune(name)[:maxLen])
	}
	name = strings.TrimSpace(name)

	if strings.Trim(name, ".") == "" {
		return FallbackName
	}
	return name
}

func isAllowed(r rune) bool {
	switch r {
	case ' ', '-', '_', '.':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
