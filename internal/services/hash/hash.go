// Package hash provides bcrypt password hashing and verification.
package hash

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

// HashService hashes and verifies passwords. bcrypt generates a fresh
// random salt per hash, so two hashes of the same password differ.
type HashService struct {
	cost int
}

func NewHashService() *HashService {
	return &HashService{
		cost: bcrypt.DefaultCost,
	}
}

// HashPassword derives a salted bcrypt hash from the plaintext password.
func (hs *HashService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hs.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashPassword, err)
	}
	return string(hashed), nil
}

// CheckPasswordHash reports whether the plaintext password matches the
// stored hash. bcrypt's compare is safe against timing attacks.
func (hs *HashService) CheckPasswordHash(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
