package sanitization

import (
	"regexp"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// maxLogLength bounds user input echoed into logs
const maxLogLength = 64

// ForLog renders user input on a single bounded line. Relayed text is never
// passed through here, only what we write to our own logs.
func ForLog(input string) string {
	// Drop control characters, which also removes ANSI escapes' ESC byte
	safe := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)

	// Collapse newlines and runs of spaces
	safe = strings.TrimSpace(whitespaceRegex.ReplaceAllString(safe, " "))

	runes := []rune(safe)
	if len(runes) > maxLogLength {
		return string(runes[:maxLogLength]) + "…"
	}
	return safe
}

// MaskPhone keeps only the last four digits of a phone number
func MaskPhone(input string) string {
	var digits []rune
	for _, r := range input {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + string(digits[len(digits)-4:])
}
