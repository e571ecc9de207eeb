// Package validate holds the input shape guards applied before any
// handler logic runs. All checks are pure.
package validate

import (
	"regexp"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	emailPattern  = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	escapePattern = regexp.MustCompile(`%[0-9A-Fa-f]{2}`)
)

// IsEmailAddress reports whether s is a plain email address.
func IsEmailAddress(s string) bool {
	return emailPattern.MatchString(s)
}

// IsUUID reports whether s is in canonical 8-4-4-4-12 UUID form.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// IsValidDecodedStr reports whether s is safe to store as free text:
// valid UTF-8, no control characters, no leftover percent escapes.
func IsValidDecodedStr(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return !escapePattern.MatchString(s)
}
