package impl

import (
	"context"
	"log/slog"

	deliverycontext "roster/internal/delivery/context"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// roleService implements the RoleUsecase interface.
type roleService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	roleRepo  repository.RoleRepository
	logger    *slog.Logger
}

// RoleServiceParams holds dependencies for roleService, injected by Fx.
type RoleServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	RoleRepo  repository.RoleRepository
	Logger    *slog.Logger
}

// NewRoleService is the constructor for roleService.
func NewRoleService(params RoleServiceParams) usecase.RoleUsecase {
	return &roleService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		roleRepo:  params.RoleRepo,
		logger:    params.Logger,
	}
}

func (srv *roleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetByUserID returns the roles assigned to an existing user.
func (srv *roleService) GetByUserID(ctx context.Context, userID uuid.UUID) (entity.Roles, error) {
	if _, err := srv.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "role lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load user for role lookup")
	}

	roles, err := srv.roleRepo.FindByUserID(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to load roles", slog.Any("error", err), slog.Any("userID", userID))

		return nil, errors.Wrap(err, "failed to load roles")
	}

	return roles, nil
}

// ReplaceForUser swaps a user's role set in one transaction. All given role
// IDs must reference existing roles or the whole replacement is rejected.
func (srv *roleService) ReplaceForUser(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) (entity.Roles, error) {
	var assigned entity.Roles

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		roleRepo := repoFactory.RoleRepo()

		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "role replacement failed")
			}

			return errors.Wrap(err, "failed to load user for role replacement")
		}

		roles, err := roleRepo.FindByIDs(ctx, roleIDs)
		if err != nil {
			return errors.Wrap(err, "failed to resolve roles")
		}
		if len(roles) != len(roleIDs) {
			return errors.Wrap(domainerrors.ErrUnknownRole, "role replacement failed")
		}

		if err := roleRepo.ReplaceForUser(ctx, userID, roleIDs); err != nil {
			return errors.Wrap(err, "failed to replace roles")
		}
		assigned = roles

		return nil
	})
	if err != nil {
		if appErr, ok := asAppError(err); ok && appErr.HTTPCode() < 500 {
			return nil, err
		}
		srv.log(ctx).Error("Failed to execute role replacement transaction", slog.Any("error", err), slog.Any("userID", userID))

		return nil, err
	}

	srv.log(ctx).Info("Roles replaced", slog.Any("userID", userID), slog.Any("roles", assigned.Names()))

	return assigned, nil
}
