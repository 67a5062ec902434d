package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password does not match")

// bcrypt only looks at the first 72 bytes and rejects anything longer.
const bcryptMaxLen = 72

// HashPassword returns a salted bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(prepare(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares in constant time. Any failure, including a
// malformed stored hash, is reported as ErrPasswordMismatch.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), prepare(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// prepare folds passwords too long for bcrypt into a base64 SHA-256 digest
// so every byte still counts. Shorter passwords pass through unchanged.
func prepare(password string) []byte {
	if len(password) <= bcryptMaxLen {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
