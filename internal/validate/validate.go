// Package validate holds the field checks used by the login and register flows.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password accepted on login and register.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s looks like an e-mail address.
func Email(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// Password reports whether s is long enough. Length is counted in runes.
func Password(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength
}

// Name reports whether s has any non-space content.
func Name(s string) bool {
	return strings.TrimSpace(s) != ""
}
