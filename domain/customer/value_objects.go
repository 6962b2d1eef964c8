package customer

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Email is an immutable, validated email address, normalized to lower case.
type Email struct {
	value string
}

// NewEmail validates and normalizes the address. Malformed input fails
// construction; there is no other way to obtain an Email.
func NewEmail(value string) (Email, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	if value == "" {
		return Email{}, ErrEmptyEmail
	}
	if !emailRegex.MatchString(value) {
		return Email{}, ErrInvalidEmail
	}

	return Email{value: value}, nil
}

// Value returns the normalized address.
func (e Email) Value() string { return e.value }

// Equals reports structural equality.
func (e Email) Equals(other Email) bool { return e.value == other.value }

func (e Email) String() string { return e.value }
