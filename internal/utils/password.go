package utils

import (
	"errors"
	"fmt"

	"github.com/SscSPs/fin_manager_app/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordCost is the cheapest bcrypt cost accepted; tests use it to stay fast.
const MinPasswordCost = bcrypt.MinCost

// PasswordHasher hashes and checks local-account passwords with bcrypt.
// The zero value uses bcrypt.DefaultCost.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher clamps cost into bcrypt's accepted range; 0 means the default cost.
func NewPasswordHasher(cost int) PasswordHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return PasswordHasher{cost: cost}
}

// Cost returns the bcrypt cost new hashes are generated with.
func (h PasswordHasher) Cost() int {
	if h.cost == 0 {
		return bcrypt.DefaultCost
	}
	return h.cost
}

// Hash hashes a plaintext password. Passwords bcrypt cannot hash in full are a validation error.
func (h PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost())
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password must be at most 72 bytes", apperrors.ErrValidation)
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Matches compares a plaintext password with a stored hash. An empty hash never matches.
func (h PasswordHasher) Matches(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NeedsRehash reports whether hash was generated with a different cost than the configured one.
func (h PasswordHasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != h.Cost()
}
