package security

import (
	"strings"
	"testing"
)

func TestGeneratePasswordMixesCharacterClasses(t *testing.T) {
	t.Parallel()

	for i := 0; i < 20; i++ {
		password, err := GeneratePassword(12)
		if err != nil {
			t.Fatalf("GeneratePassword returned error: %v", err)
		}
		if len(password) != 12 {
			t.Fatalf("GeneratePassword len = %d, want 12", len(password))
		}
		if !strings.ContainsAny(password, passwordUpper) || !strings.ContainsAny(password, passwordLower) || !strings.ContainsAny(password, passwordDigits) {
			t.Fatalf("password %q misses a character class", password)
		}
		if strings.ContainsAny(password, "0O1lI") {
			t.Fatalf("password %q contains look-alike characters", password)
		}
	}
}

func TestGeneratePasswordMinimumLength(t *testing.T) {
	t.Parallel()

	password, err := GeneratePassword(4)
	if err != nil {
		t.Fatalf("GeneratePassword returned error: %v", err)
	}
	if len(password) != minGeneratedPasswordLength {
		t.Fatalf("GeneratePassword minimum len = %d, want %d", len(password), minGeneratedPasswordLength)
	}
}

func TestGenerateSecretKey(t *testing.T) {
	t.Parallel()

	key, err := GenerateSecretKey(48)
	if err != nil {
		t.Fatalf("GenerateSecretKey returned error: %v", err)
	}
	if len(key) != 48 {
		t.Fatalf("GenerateSecretKey len = %d, want 48", len(key))
	}
}

func TestRandomFrom(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		alphabet string
		length   int
		wantErr  bool
	}{
		{name: "negative length", alphabet: "abc", length: -1, wantErr: true},
		{name: "empty alphabet", alphabet: "", length: 4, wantErr: true},
		{name: "zero length", alphabet: "abc", length: 0},
		{name: "single symbol", alphabet: "X", length: 8},
		{name: "uneven alphabet", alphabet: passwordUpper + passwordDigits, length: 96},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := randomFrom(test.alphabet, test.length)
			if test.wantErr {
				if err == nil {
					t.Fatalf("randomFrom(%q, %d) expected error", test.alphabet, test.length)
				}
				return
			}
			if err != nil {
				t.Fatalf("randomFrom(%q, %d) returned error: %v", test.alphabet, test.length, err)
			}
			if len(got) != test.length {
				t.Fatalf("randomFrom(%q, %d) len = %d", test.alphabet, test.length, len(got))
			}
			if strings.Trim(got, test.alphabet) != "" {
				t.Fatalf("randomFrom(%q, %d) = %q contains symbols outside the alphabet", test.alphabet, test.length, got)
			}
		})
	}
}
