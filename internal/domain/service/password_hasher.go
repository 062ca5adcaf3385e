// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted digest from a plaintext password. The salt is
	// embedded in the digest, so verification needs no side channel. Hash never
	// fails for well-formed non-empty input.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a digest to see if they match.
	// It returns false (never an error) on malformed digests.
	Check(password, hash string) bool

	// ValidateStrength checks a candidate password against the signup strength
	// policy. It returns nil when the password is acceptable.
	ValidateStrength(password string) error
}
