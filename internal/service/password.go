package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 8

// ErrWeakPassword is returned when a password is shorter than MinPasswordLen.
var ErrWeakPassword = errors.New("password must be at least 8 characters")

// PasswordManager salts and hashes passwords and verifies candidates
// against stored hashes. Hashing is deliberately expensive.
type PasswordManager struct {
	cost int
}

// NewPasswordManager returns a manager using the given bcrypt cost;
// a cost of 0 selects the bcrypt default.
func NewPasswordManager(cost int) *PasswordManager {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &PasswordManager{cost: cost}
}

// Hash generates a fresh salted hash of password. The salt is embedded in
// the returned encoding.
func (m *PasswordManager) Hash(password string) (string, error) {
	if len(password) < MinPasswordLen {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. It compares in
// constant time and never fails on a mismatch.
func (m *PasswordManager) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
