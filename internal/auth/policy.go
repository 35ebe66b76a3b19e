package auth

import "unicode/utf8"

const (
	minPasswordLength = 8
	// bcrypt rejects longer inputs.
	maxPasswordBytes = 72
)

// PasswordPolicy decides whether a plaintext password is strong enough to store.
type PasswordPolicy interface {
	IsValid(password string) bool
}

// DefaultPolicy requires at least eight characters (counted as runes) with an
// uppercase letter, a lowercase letter and a digit, and at most 72 bytes.
type DefaultPolicy struct{}

// NewPasswordPolicy returns the default policy.
func NewPasswordPolicy() PasswordPolicy {
	return DefaultPolicy{}
}

// IsValid implements PasswordPolicy.
func (DefaultPolicy) IsValid(password string) bool {
	if len(password) > maxPasswordBytes || utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}

	var upper, lower, digit bool
	for i := 0; i < len(password); i++ {
		switch c := password[i]; {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}
	return upper && lower && digit
}
