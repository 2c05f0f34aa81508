package mocks

import (
	"context"

	"roster/internal/domain/entity"
	"roster/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// RoleRepository is a mock implementation of repository.RoleRepository.
type RoleRepository struct {
	mock.Mock
}

var _ repository.RoleRepository = (*RoleRepository)(nil)

func (m *RoleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (entity.Roles, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(entity.Roles), args.Error(1)
}

func (m *RoleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (entity.Roles, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(entity.Roles), args.Error(1)
}

func (m *RoleRepository) FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Role), args.Error(1)
}

func (m *RoleRepository) AssignToUser(ctx context.Context, userID, roleID uuid.UUID) error {
	args := m.Called(ctx, userID, roleID)

	return args.Error(0)
}

func (m *RoleRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	args := m.Called(ctx, userID, roleIDs)

	return args.Error(0)
}
