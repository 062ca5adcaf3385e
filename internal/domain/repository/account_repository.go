// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence.
// This allows the application layer to handle specific outcomes without depending on database-specific errors.
var (
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when a write would violate the unique email
	// constraint. The constraint violation surfaced by the store at write time is
	// the sole source of truth for duplicates; callers must not rely on a prior
	// existence check, which is racy under concurrent load.
	ErrDuplicateEmail = errors.New("email already registered")
)

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
// All email arguments are expected in canonical form (entity.CanonicalEmail).
type AccountRepository interface {
	// Create persists a new account. The store's unique index on email guarantees
	// that of two concurrent creates with the same canonical email, exactly one
	// fails with ErrDuplicateEmail.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its canonical email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// UpdateProfile persists the account's name and email and bumps UpdatedAt.
	// An email collision with another row fails with ErrDuplicateEmail.
	UpdateProfile(ctx context.Context, account *entity.Account) error

	// UpdatePasswordHash replaces the stored password digest and bumps UpdatedAt.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}
