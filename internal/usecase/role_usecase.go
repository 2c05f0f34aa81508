package usecase

import (
	"context"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

// RoleUsecase defines the admin-gated role assignment operations.
type RoleUsecase interface {
	// GetByUserID returns the roles currently assigned to a user.
	GetByUserID(ctx context.Context, userID uuid.UUID) (entity.Roles, error)

	// ReplaceForUser replaces a user's role assignments with the given set.
	// Every role ID must reference an existing role.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) (entity.Roles, error)
}
