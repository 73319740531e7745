package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"todoapi/internal/apperr"
)

// commonPasswords is a short deny-list of passwords too frequent to allow
// at any length.
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"iloveyou":    {},
	"letmein1":    {},
	"sunshine":    {},
	"welcome1":    {},
	"admin123":    {},
}

// PasswordPolicy validates plaintext passwords and owns hashing, so raw
// passwords never cross this boundary.
type PasswordPolicy struct {
	MinLength int
}

// Validate checks length, the common-password list, and similarity to the
// username.
func (p PasswordPolicy) Validate(password, username string) error {
	if len(password) < p.MinLength {
		return apperr.Validation("password is too short")
	}

	lower := strings.ToLower(password)
	if _, ok := commonPasswords[lower]; ok {
		return apperr.Validation("password is too common")
	}

	if username != "" {
		lowerUser := strings.ToLower(username)
		if strings.Contains(lower, lowerUser) || strings.Contains(lowerUser, lower) {
			return apperr.Validation("password is too similar to the username")
		}
	}

	return nil
}

// Hash returns the bcrypt hash of password.
func (p PasswordPolicy) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return string(hashed), nil
}

// Verify reports whether password matches the stored hash.
func (p PasswordPolicy) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
