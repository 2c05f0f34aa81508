// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
// It is distinct from storage failure: every other error from these methods
// means the store itself misbehaved.
var ErrUserNotFound = errors.New("user not found")

// UserFilter narrows List results. Empty fields are ignored; non-empty
// fields match case-insensitively as substrings.
type UserFilter struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single active user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByIdentifier retrieves a single active user matching the given
	// email and/or username. Empty criteria are ignored; at least one must
	// be provided.
	FindByIdentifier(ctx context.Context, email, username string) (*entity.User, error)

	// List retrieves active users matching the filter.
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies the profile fields of an existing user.
	Update(ctx context.Context, user *entity.User) error

	// SoftDelete marks a user as inactive without removing the row.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// UpdatePasswordHash replaces the stored password hash for a user.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error

	// SetResetToken stores the hash and expiry of a newly issued password
	// reset token, overwriting any previous reset fields for that user.
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error

	// FindByResetTokenHash retrieves the user whose stored reset-token hash
	// matches. Expiry is checked by the caller.
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)

	// ClearResetToken removes the reset-token fields for a user.
	ClearResetToken(ctx context.Context, id uuid.UUID) error
}
