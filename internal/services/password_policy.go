package services

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

var (
	ErrWeakPassword    = errors.New("weak password")
	ErrPasswordTooLong = errors.New("password too long")
)

const (
	minPasswordRunes = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// ValidatePasswordStrength requires at least eight characters mixing upper
// case, lower case and digits.
func ValidatePasswordStrength(password string) error {
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	if utf8.RuneCountInString(password) < minPasswordRunes {
		return ErrWeakPassword
	}

	var classes uint8
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			classes |= 1
		case unicode.IsLower(char):
			classes |= 2
		case unicode.IsDigit(char):
			classes |= 4
		}
	}
	if classes != 7 {
		return ErrWeakPassword
	}
	return nil
}
