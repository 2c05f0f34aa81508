// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRoleNotFound is returned when a referenced role does not exist.
var ErrRoleNotFound = errors.New("role not found")

// RoleRepository defines the operations for role persistence and the
// users_roles assignment relation.
type RoleRepository interface {
	// FindByUserID retrieves all roles assigned to a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (entity.Roles, error)

	// FindByIDs retrieves the roles matching the given IDs. Callers compare
	// the result length against the input to detect unknown IDs.
	FindByIDs(ctx context.Context, ids []uuid.UUID) (entity.Roles, error)

	// FindByName retrieves a role by its fixed name.
	FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error)

	// AssignToUser adds a single role assignment for a user.
	AssignToUser(ctx context.Context, userID, roleID uuid.UUID) error

	// ReplaceForUser removes every current assignment for the user and
	// inserts the given set.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error
}
