package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/mocks"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (usecase.UserUsecase, *mocks.UserRepository, *mocks.RoleRepository, *mocks.PasswordHasher, *mocks.TransactionManager) {
	t.Helper()

	userRepo := &mocks.UserRepository{}
	roleRepo := &mocks.RoleRepository{}
	hasher := &mocks.PasswordHasher{}
	txManager := &mocks.TransactionManager{}

	factory := &mocks.RepositoryFactory{}
	factory.On("UserRepo").Return(userRepo).Maybe()
	factory.On("RoleRepo").Return(roleRepo).Maybe()
	txManager.Factory = factory

	svc := NewUserService(UserServiceParams{
		TxManager: txManager,
		UserRepo:  userRepo,
		RoleRepo:  roleRepo,
		Hasher:    hasher,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, userRepo, roleRepo, hasher, txManager
}

func TestUserService_List_AppliesFilter(t *testing.T) {
	svc, userRepo, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	users := []*entity.User{
		{ID: uuid.New(), Username: "ada", PasswordHash: "$2a$10$hash"},
	}
	userRepo.On("List", ctx, repository.UserFilter{Role: "teacher"}).Return(users, nil)

	got, err := svc.List(ctx, &usecase.ListUsersInput{Role: "teacher"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ada", got[0].Username)
}

func TestUserService_GetByID_UnknownUser(t *testing.T) {
	svc, userRepo, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	id := uuid.New()
	userRepo.On("FindByID", ctx, id).Return(nil, repository.ErrUserNotFound)

	_, err := svc.GetByID(ctx, id)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_Create_AssignsDefaultRole(t *testing.T) {
	svc, userRepo, roleRepo, hasher, txManager := newTestUserService(t)
	ctx := context.Background()

	studentRole := &entity.Role{ID: uuid.New(), Name: entity.RoleStudent}

	hasher.On("Hash", "S3cret!pass").Return("$2a$10$hash", nil)
	txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "grace" && u.PasswordHash == "$2a$10$hash"
	})).Return(nil)
	roleRepo.On("FindByName", ctx, entity.RoleStudent).Return(studentRole, nil)
	roleRepo.On("AssignToUser", ctx, mock.Anything, studentRole.ID).Return(nil)

	got, err := svc.Create(ctx, &usecase.CreateUserInput{
		Username: "grace",
		Email:    "grace@example.com",
		Password: "S3cret!pass",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"student"}, got.Roles)
}

func TestUserService_Update_PartialFields(t *testing.T) {
	svc, userRepo, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	id := uuid.New()
	existing := &entity.User{
		ID:        id,
		FirstName: "Grace",
		LastName:  "Hopper",
		Username:  "grace",
		Email:     "grace@example.com",
	}

	userRepo.On("FindByID", ctx, id).Return(existing, nil)
	userRepo.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		// Only the first name changes; everything else stays.
		return u.FirstName == "Amazing" && u.LastName == "Hopper" && u.Email == "grace@example.com"
	})).Return(nil)

	newFirst := "Amazing"
	got, err := svc.Update(ctx, &usecase.UpdateUserInput{ID: id, FirstName: &newFirst})
	require.NoError(t, err)
	assert.Equal(t, "Amazing", got.FirstName)
	userRepo.AssertExpectations(t)
}

func TestUserService_Delete_UnknownUser(t *testing.T) {
	svc, userRepo, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	id := uuid.New()
	userRepo.On("SoftDelete", ctx, id).Return(repository.ErrUserNotFound)

	err := svc.Delete(ctx, id)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
