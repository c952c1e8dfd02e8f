// Package crypto hashes user passwords with bcrypt.
package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"candlepin/src/core/ports"
)

var _ ports.PasswordHasher = BcryptHasher{}

// BcryptHasher implements ports.PasswordHasher. A zero Cost uses bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (h BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
