package security

import (
	"crypto/rand"
	"errors"
)

var (
	errNegativeLength = errors.New("length must be non-negative")
	errBadAlphabet    = errors.New("alphabet must hold between 1 and 256 bytes")
)

// randomFrom draws length bytes uniformly from alphabet. Random bytes above
// the largest multiple of the alphabet size are rejected so every symbol is
// equally likely.
func randomFrom(alphabet string, length int) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	size := len(alphabet)
	if size == 0 || size > 256 {
		return "", errBadAlphabet
	}

	ceiling := 256 - 256%size
	out := make([]byte, 0, length)
	buffer := make([]byte, length+length/2+1)
	for len(out) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, value := range buffer {
			if int(value) >= ceiling {
				continue
			}
			out = append(out, alphabet[int(value)%size])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}
