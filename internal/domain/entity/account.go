// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is the core entity of the system, representing a single registered identity.
// The canonical email is the one hard uniqueness key; the ID is assigned at creation
// and never changes afterwards.
type Account struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the account, immutable post-creation.
	Email        string    // The canonical (lowercased, trimmed) login email, globally unique.
	Name         string    // The account's display name, mutable and non-empty.
	PasswordHash string    // The bcrypt digest of the account's password. Never empty, never a plaintext.
	CreatedAt    time.Time // Timestamp of when this account was created, immutable.
	UpdatedAt    time.Time // Timestamp of the last mutation to this account.
}

// CanonicalEmail converts a raw email into the canonical form used for uniqueness
// and lookup: whitespace-trimmed and lowercased.
func CanonicalEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
