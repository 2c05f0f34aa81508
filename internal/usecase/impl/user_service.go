package impl

import (
	"context"
	"log/slog"

	deliverycontext "roster/internal/delivery/context"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	roleRepo  repository.RoleRepository
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	RoleRepo  repository.RoleRepository
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		roleRepo:  params.RoleRepo,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns the active users matching the filter.
func (srv *userService) List(ctx context.Context, input *usecase.ListUsersInput) ([]*entity.PublicUser, error) {
	filter := repository.UserFilter{}
	if input != nil {
		filter = repository.UserFilter{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Role:      input.Role,
		}
	}

	users, err := srv.userRepo.List(ctx, filter)
	if err != nil {
		srv.log(ctx).Error("Failed to list users", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list users")
	}

	result := make([]*entity.PublicUser, 0, len(users))
	for _, user := range users {
		result = append(result, user.Public())
	}

	return result, nil
}

// GetByID returns a single active user.
func (srv *userService) GetByID(ctx context.Context, id uuid.UUID) (*entity.PublicUser, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load user")
	}

	return user.Public(), nil
}

// Create provisions an account on behalf of an administrator. The new account
// gets the default student role, same as self-registration.
func (srv *userService) Create(ctx context.Context, input *usecase.CreateUserInput) (*entity.PublicUser, error) {
	srv.log(ctx).Info("Creating user", slog.String("username", input.Username))

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password for new user", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password for new user")
	}

	newUser := &entity.User{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Username:        input.Username,
		Email:           input.Email,
		Birthdate:       input.Birthdate,
		PhoneNumber:     input.PhoneNumber,
		CellphoneNumber: input.CellphoneNumber,
		PasswordHash:    passwordHash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		roleRepo := repoFactory.RoleRepo()

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		studentRole, err := roleRepo.FindByName(ctx, entity.RoleStudent)
		if err != nil {
			if errors.Is(err, repository.ErrRoleNotFound) {
				srv.log(ctx).Warn("Default role not found, creating user without role assignment")

				return nil
			}

			return errors.Wrap(err, "failed to look up default role")
		}

		if err := roleRepo.AssignToUser(ctx, newUser.ID, studentRole.ID); err != nil {
			return errors.Wrap(err, "failed to assign default role")
		}
		newUser.Roles = entity.Roles{*studentRole}

		return nil
	})
	if err != nil {
		if appErr, ok := asAppError(err); ok && appErr.HTTPCode() < 500 {
			return nil, err
		}
		srv.log(ctx).Error("Failed to execute user creation transaction", slog.Any("error", err))

		return nil, err
	}

	return newUser.Public(), nil
}

// Update applies a partial profile change. Credential fields are never touched
// here; password changes go through the reset flow.
func (srv *userService) Update(ctx context.Context, input *usecase.UpdateUserInput) (*entity.PublicUser, error) {
	user, err := srv.userRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user update failed")
		}

		return nil, errors.Wrap(err, "failed to load user for update")
	}

	applyIfSet := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyIfSet(&user.FirstName, input.FirstName)
	applyIfSet(&user.LastName, input.LastName)
	applyIfSet(&user.Username, input.Username)
	applyIfSet(&user.Email, input.Email)
	applyIfSet(&user.PhoneNumber, input.PhoneNumber)
	applyIfSet(&user.CellphoneNumber, input.CellphoneNumber)
	if input.Birthdate != nil {
		user.Birthdate = *input.Birthdate
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user update failed")
		}
		if appErr, ok := asAppError(err); ok && appErr.HTTPCode() < 500 {
			return nil, err
		}
		srv.log(ctx).Error("Failed to update user", slog.Any("error", err), slog.Any("userID", input.ID))

		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.log(ctx).Debug("User updated", slog.Any("userID", user.ID))

	return user.Public(), nil
}

// Delete deactivates an account. The row is kept for referential integrity;
// deactivated accounts disappear from lookups and can no longer log in.
func (srv *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.userRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "user delete failed")
		}
		srv.log(ctx).Error("Failed to delete user", slog.Any("error", err), slog.Any("userID", id))

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deactivated", slog.Any("userID", id))

	return nil
}
