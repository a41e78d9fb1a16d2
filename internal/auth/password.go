// Package auth provides the one-way password hasher used for stored
// credentials.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher wraps bcrypt with a fixed, validated cost factor. The zero value is
// unusable on purpose; construct it through NewHasher.
type Hasher struct {
	cost int
}

// NewHasher clamps out-of-range costs to bcrypt.DefaultCost so a
// misconfigured work factor can never degrade to cost zero.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash produces a salted one-way hash of the plaintext.
func (h Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext matches the stored hash.
func (h Hasher) Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}
