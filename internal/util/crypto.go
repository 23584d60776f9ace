package util

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// minBcryptCost is the lowest cost the service will hash with. Stored
// hashes created at a lower cost still verify.
const minBcryptCost = 10

// BcryptHasher hashes and verifies passwords with bcrypt. The zero
// value is usable and hashes at minBcryptCost.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher with the given cost, clamped to
// minBcryptCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < minBcryptCost {
		cost = minBcryptCost
	}
	return &BcryptHasher{Cost: cost}
}

// Hash generates a salted bcrypt hash for the given plaintext.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("password is empty")
	}
	cost := h.Cost
	if cost < minBcryptCost {
		cost = minBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Check reports whether plain matches the stored hash. A mismatch is a
// normal negative result, not an error.
func (h *BcryptHasher) Check(plain, hashed string) bool {
	if plain == "" || hashed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
