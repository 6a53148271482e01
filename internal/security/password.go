package security

import (
	"errors"
	"strings"
)

const (
	passwordUpper  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	passwordLower  = "abcdefghijkmnopqrstuvwxyz"
	passwordDigits = "23456789"

	secretKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

const minGeneratedPasswordLength = 8

var errPasswordAttemptsExhausted = errors.New("could not generate a mixed-case password")

// GeneratePassword returns a password without look-alike characters that
// always mixes upper case, lower case and digits.
func GeneratePassword(length int) (string, error) {
	if length < minGeneratedPasswordLength {
		length = minGeneratedPasswordLength
	}

	alphabet := passwordUpper + passwordLower + passwordDigits
	for attempt := 0; attempt < 64; attempt++ {
		candidate, err := randomFrom(alphabet, length)
		if err != nil {
			return "", err
		}
		if strings.ContainsAny(candidate, passwordUpper) && strings.ContainsAny(candidate, passwordLower) && strings.ContainsAny(candidate, passwordDigits) {
			return candidate, nil
		}
	}
	return "", errPasswordAttemptsExhausted
}

// GenerateSecretKey returns a random token signing key.
func GenerateSecretKey(length int) (string, error) {
	return randomFrom(secretKeyAlphabet, length)
}
