// Package validate checks user-supplied names before they reach the core.
package validate

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLength is the longest accepted name, in characters.
const MaxNameLength = 50

// Input errors. Their messages are safe to show to end users.
var (
	ErrEmptyInput       = errors.New("both names are required")
	ErrTooLong          = errors.New("names must be 50 characters or less")
	ErrInvalidCharacter = errors.New("names can only contain letters, spaces, hyphens, dots, and apostrophes")
)

// IsInputError reports whether err is one of the recoverable input errors.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrTooLong) ||
		errors.Is(err, ErrInvalidCharacter)
}

// Names trims both names and checks them. The trimmed names are returned.
func Names(nameA, nameB string) (string, string, error) {
	nameA = strings.TrimSpace(nameA)
	nameB = strings.TrimSpace(nameB)

	if nameA == "" || nameB == "" {
		return nameA, nameB, ErrEmptyInput
	}
	if utf8.RuneCountInString(nameA) > MaxNameLength || utf8.RuneCountInString(nameB) > MaxNameLength {
		return nameA, nameB, ErrTooLong
	}
	if !allowed(nameA) || !allowed(nameB) {
		return nameA, nameB, ErrInvalidCharacter
	}
	return nameA, nameB, nil
}

func allowed(name string) bool {
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '-', r == '.', r == '\'':
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return true
}
