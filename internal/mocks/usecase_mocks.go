package mocks

import (
	"context"

	"roster/internal/domain/entity"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// AuthUsecase is a mock implementation of usecase.AuthUsecase.
type AuthUsecase struct {
	mock.Mock
}

var _ usecase.AuthUsecase = (*AuthUsecase)(nil)

func (m *AuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RegisterOutput), args.Error(1)
}

func (m *AuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *AuthUsecase) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) (*usecase.ForgotPasswordOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.ForgotPasswordOutput), args.Error(1)
}

func (m *AuthUsecase) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

// UserUsecase is a mock implementation of usecase.UserUsecase.
type UserUsecase struct {
	mock.Mock
}

var _ usecase.UserUsecase = (*UserUsecase)(nil)

func (m *UserUsecase) List(ctx context.Context, input *usecase.ListUsersInput) ([]*entity.PublicUser, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.PublicUser), args.Error(1)
}

func (m *UserUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entity.PublicUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.PublicUser), args.Error(1)
}

func (m *UserUsecase) Create(ctx context.Context, input *usecase.CreateUserInput) (*entity.PublicUser, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.PublicUser), args.Error(1)
}

func (m *UserUsecase) Update(ctx context.Context, input *usecase.UpdateUserInput) (*entity.PublicUser, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.PublicUser), args.Error(1)
}

func (m *UserUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// RoleUsecase is a mock implementation of usecase.RoleUsecase.
type RoleUsecase struct {
	mock.Mock
}

var _ usecase.RoleUsecase = (*RoleUsecase)(nil)

func (m *RoleUsecase) GetByUserID(ctx context.Context, userID uuid.UUID) (entity.Roles, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(entity.Roles), args.Error(1)
}

func (m *RoleUsecase) ReplaceForUser(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) (entity.Roles, error) {
	args := m.Called(ctx, userID, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(entity.Roles), args.Error(1)
}
