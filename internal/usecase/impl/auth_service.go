// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"roster/config"
	deliverycontext "roster/internal/delivery/context"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	"roster/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface. It coordinates the
// hasher, token service and reset-token protocol against the user store.
type authService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	hasher      service.PasswordHasher
	tokens      service.TokenService
	resetTokens service.ResetTokenService
	frontendURL string
	logger      *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	RoleRepo    repository.RoleRepository
	Hasher      service.PasswordHasher
	Tokens      service.TokenService
	ResetTokens service.ResetTokenService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	frontendURL := ""
	if params.Config != nil && params.Config.Frontend != nil {
		frontendURL = strings.TrimRight(params.Config.Frontend.BaseURL, "/")
	}

	return &authService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		roleRepo:    params.RoleRepo,
		hasher:      params.Hasher,
		tokens:      params.Tokens,
		resetTokens: params.ResetTokens,
		frontendURL: frontendURL,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new account with the default student role.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	// Hash before entering the transaction: bcrypt is CPU-bound and must not
	// extend the storage lock window.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
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

		if err := srv.ensureIdentifierFree(ctx, userRepo, input.Email, input.Username); err != nil {
			return err
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		studentRole, err := roleRepo.FindByName(ctx, entity.RoleStudent)
		if err != nil {
			if errors.Is(err, repository.ErrRoleNotFound) {
				// Role seed missing; the account is still usable.
				srv.log(ctx).Warn("Default role not found, registering without role assignment")

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
			srv.log(ctx).Warn("Registration rejected", slog.String("username", input.Username), slog.String("code", appErr.ErrorCode()))
		} else {
			srv.log(ctx).Error("Failed to execute registration transaction", slog.String("username", input.Username), slog.Any("error", err))
		}

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser.Public()}, nil
}

// ensureIdentifierFree rejects the registration when either the email or the
// username is already taken by an active account.
func (srv *authService) ensureIdentifierFree(ctx context.Context, userRepo repository.UserRepository, email, username string) error {
	if _, err := userRepo.FindByIdentifier(ctx, email, ""); err == nil {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check email uniqueness")
	}

	if _, err := userRepo.FindByIdentifier(ctx, "", username); err == nil {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("username already registered")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check username uniqueness")
	}

	return nil
}

// Login verifies credentials and issues a session token.
// An unknown identifier and a wrong password both resolve to the identical
// ErrInvalidCredentials so responses cannot be used to enumerate accounts.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByIdentifier(ctx, input.Email, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokens.Issue(service.SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		Roles:    user.Roles.Names(),
	})
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenSignFailed, "failed to issue session token")
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken: token,
		TTL:         srv.tokens.TTL(),
		User:        user.Public(),
	}, nil
}

// ForgotPassword issues a fresh reset token for the account and returns the
// reset link. A new request overwrites any prior pending token; concurrent
// requests resolve by last write wins.
func (srv *authService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) (*usecase.ForgotPasswordOutput, error) {
	srv.log(ctx).Debug("Starting forgot-password", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByIdentifier(ctx, input.Email, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Same generic failure as bad credentials; do not reveal whether
			// the account exists.
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "forgot-password failed")
		}

		return nil, errors.Wrap(err, "failed to load user for forgot-password")
	}

	resetToken, err := srv.resetTokens.Generate()
	if err != nil {
		srv.log(ctx).Error("Failed to generate reset token", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenSignFailed, "failed to generate reset token")
	}

	if err := srv.userRepo.SetResetToken(ctx, user.ID, resetToken.Hash, resetToken.ExpiresAt); err != nil {
		srv.log(ctx).Error("Failed to store reset token", slog.Any("error", err), slog.Any("userID", user.ID))

		return nil, errors.Wrap(err, "failed to store reset token")
	}

	srv.log(ctx).Info("Reset token issued", slog.Any("userID", user.ID), slog.Time("expiresAt", resetToken.ExpiresAt))

	return &usecase.ForgotPasswordOutput{
		ResetURL: srv.frontendURL + "/auth/reset-password/" + resetToken.Plaintext,
	}, nil
}

// ResetPassword consumes a reset token and replaces the account password.
// Wrong token and expired token resolve to the identical error; a consumed
// token cannot be used again because the stored hash is cleared atomically
// with the password update.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	tokenHash := srv.resetTokens.HashToken(input.Token)

	// Cheap pre-check before paying for bcrypt.
	user, err := srv.userRepo.FindByResetTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrResetTokenInvalid, "reset-password failed")
		}

		return errors.Wrap(err, "failed to look up reset token")
	}
	if !user.HasActiveResetToken(time.Now()) {
		return errors.Wrap(domainerrors.ErrResetTokenInvalid, "reset-password failed")
	}

	passwordHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during reset", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during reset")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// Re-check inside the transaction so a concurrent consume or a newer
		// token issued meanwhile invalidates this one.
		current, err := userRepo.FindByResetTokenHash(ctx, tokenHash)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrResetTokenInvalid, "reset token no longer valid")
			}

			return errors.Wrap(err, "failed to re-check reset token")
		}
		if !current.HasActiveResetToken(time.Now()) {
			return errors.Wrap(domainerrors.ErrResetTokenInvalid, "reset token expired")
		}

		if err := userRepo.UpdatePasswordHash(ctx, current.ID, passwordHash); err != nil {
			return errors.Wrap(err, "failed to update password")
		}
		if err := userRepo.ClearResetToken(ctx, current.ID); err != nil {
			return errors.Wrap(err, "failed to clear reset token")
		}

		return nil
	})
	if err != nil {
		if appErr, ok := asAppError(err); ok && appErr.HTTPCode() < 500 {
			return err
		}
		srv.log(ctx).Error("Failed to execute reset-password transaction", slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("userID", user.ID))

	return nil
}

// asAppError unwraps an error to its AppError if one is present.
func asAppError(err error) (domainerrors.AppError, bool) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}
