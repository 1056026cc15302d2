// Package password provides the one-way password hasher used for stored credentials.
package password

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// EnvKeyBcryptCost is the environment variable holding the bcrypt work factor.
const EnvKeyBcryptCost = "BCRYPT_COST"

// BcryptHasher hashes and verifies passwords with bcrypt.
// The salt and cost are embedded in every digest, so Verify needs no configuration.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// LoadCostFromEnv reads BCRYPT_COST, returning bcrypt.DefaultCost when unset or invalid.
func LoadCostFromEnv() int {
	v := os.Getenv(EnvKeyBcryptCost)
	if v == "" {
		return bcrypt.DefaultCost
	}
	cost, err := strconv.Atoi(v)
	if err != nil {
		return bcrypt.DefaultCost
	}
	return cost
}

// Hash returns a salted bcrypt digest of plain.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the digest.
func (h *BcryptHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
