package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher()

	password := "Str0ngP@ss"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))

	// Every hash carries its own salt, so two digests of the same password differ.
	otherHash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEqual(t, hash, otherHash)
	assert.True(t, hasher.Check(password, otherHash))
}

func TestBcryptHasher_HashUsesDefaultCost(t *testing.T) {
	hasher := NewBcryptHasher()

	hash, err := hasher.Hash("Str0ngP@ss")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher()
	password := "Str0ngP@ss"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("Wr0ngP@ss", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_ValidateStrength(t *testing.T) {
	hasher := NewBcryptHasher()

	validPasswords := []string{
		"Str0ngP@ss",
		"An0ther!Pass",
		"Passw0rd&Go",
		"Aa1@aaaa",
	}

	for _, password := range validPasswords {
		err := hasher.ValidateStrength(password)
		assert.NoError(t, err, "Expected no error for valid password: %s", password)
	}

	testCases := []struct {
		password    string
		expectedErr string
	}{
		{"Aa1@a", "at least 8 characters"},
		{"str0ng@pass", "uppercase letter"},
		{"STR0NG@PASS", "lowercase letter"},
		{"Strong@Pass", "digit"},
		{"Str0ngPass", "symbol"},
		// Symbols outside the allowed set do not count as symbols.
		{"Str0ngPa#s", "symbol"},
	}

	for _, tc := range testCases {
		err := hasher.ValidateStrength(tc.password)
		assert.Error(t, err, "Expected error for password: %s", tc.password)
		assert.Contains(t, err.Error(), tc.expectedErr)
	}
}

func TestBcryptHasher_ValidateStrengthEdgeCases(t *testing.T) {
	hasher := NewBcryptHasher()

	// Empty password fails the length check first
	err := hasher.ValidateStrength("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 8 characters")

	// Unicode letters still count as upper/lower case
	err = hasher.ValidateStrength("Pässw0rd@")
	assert.NoError(t, err)
}
