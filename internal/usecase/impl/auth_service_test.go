package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"roster/config"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	"roster/internal/mocks"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authServiceMocks struct {
	txManager   *mocks.TransactionManager
	userRepo    *mocks.UserRepository
	roleRepo    *mocks.RoleRepository
	hasher      *mocks.PasswordHasher
	tokens      *mocks.TokenService
	resetTokens *mocks.ResetTokenService
}

func newTestAuthService(t *testing.T) (usecase.AuthUsecase, *authServiceMocks) {
	t.Helper()

	m := &authServiceMocks{
		txManager:   &mocks.TransactionManager{},
		userRepo:    &mocks.UserRepository{},
		roleRepo:    &mocks.RoleRepository{},
		hasher:      &mocks.PasswordHasher{},
		tokens:      &mocks.TokenService{},
		resetTokens: &mocks.ResetTokenService{},
	}

	factory := &mocks.RepositoryFactory{}
	factory.On("UserRepo").Return(m.userRepo).Maybe()
	factory.On("RoleRepo").Return(m.roleRepo).Maybe()
	m.txManager.Factory = factory

	cfg := &config.Config{
		Frontend: &config.FrontendConfig{BaseURL: "https://app.example.com/"},
	}

	svc := NewAuthService(AuthServiceParams{
		TxManager:   m.txManager,
		UserRepo:    m.userRepo,
		RoleRepo:    m.roleRepo,
		Hasher:      m.hasher,
		Tokens:      m.tokens,
		ResetTokens: m.resetTokens,
		Config:      cfg,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return svc, m
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	studentRole := &entity.Role{ID: uuid.New(), Name: entity.RoleStudent}

	m.hasher.On("Hash", "S3cret!pass").Return("$2a$10$hash", nil)
	m.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	m.userRepo.On("FindByIdentifier", ctx, "ada@example.com", "").Return(nil, repository.ErrUserNotFound)
	m.userRepo.On("FindByIdentifier", ctx, "", "ada").Return(nil, repository.ErrUserNotFound)
	m.userRepo.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "ada" && u.PasswordHash == "$2a$10$hash"
	})).Return(nil)
	m.roleRepo.On("FindByName", ctx, entity.RoleStudent).Return(studentRole, nil)
	m.roleRepo.On("AssignToUser", ctx, mock.Anything, studentRole.ID).Return(nil)

	out, err := svc.Register(ctx, &usecase.RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Username:  "ada",
		Email:     "ada@example.com",
		Password:  "S3cret!pass",
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "ada", out.User.Username)
	assert.Equal(t, []string{"student"}, out.User.Roles)
	m.userRepo.AssertExpectations(t)
	m.roleRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	existing := &entity.User{ID: uuid.New(), Email: "ada@example.com"}

	m.hasher.On("Hash", mock.Anything).Return("$2a$10$hash", nil)
	m.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	m.userRepo.On("FindByIdentifier", ctx, "ada@example.com", "").Return(existing, nil)

	out, err := svc.Register(ctx, &usecase.RegisterInput{
		Username: "ada2",
		Email:    "ada@example.com",
		Password: "S3cret!pass",
	})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	m.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_HashFailure(t *testing.T) {
	svc, m := newTestAuthService(t)

	m.hasher.On("Hash", mock.Anything).Return("", errors.New("boom"))

	out, err := svc.Register(context.Background(), &usecase.RegisterInput{
		Username: "ada",
		Email:    "ada@example.com",
		Password: "S3cret!pass",
	})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
	m.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$10$hash",
		Roles:        entity.Roles{{ID: uuid.New(), Name: entity.RoleTeacher}},
	}

	m.userRepo.On("FindByIdentifier", ctx, "", "ada").Return(user, nil)
	m.hasher.On("Check", "S3cret!pass", "$2a$10$hash").Return(true)
	m.tokens.On("Issue", service.SessionClaims{
		UserID:   userID,
		Username: "ada",
		Roles:    []string{"teacher"},
	}).Return("signed.jwt.token", nil)
	m.tokens.On("TTL").Return(time.Hour)

	out, err := svc.Login(ctx, &usecase.LoginInput{Username: "ada", Password: "S3cret!pass"})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", out.AccessToken)
	assert.Equal(t, time.Hour, out.TTL)
	assert.Equal(t, "ada", out.User.Username)
}

func TestAuthService_Login_UnknownUserAndWrongPasswordAreIndistinguishable(t *testing.T) {
	ctx := context.Background()

	svc, m := newTestAuthService(t)
	m.userRepo.On("FindByIdentifier", ctx, "", "ghost").Return(nil, repository.ErrUserNotFound)

	_, errUnknown := svc.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "whatever"})
	require.Error(t, errUnknown)

	svc2, m2 := newTestAuthService(t)
	m2.userRepo.On("FindByIdentifier", ctx, "", "ada").Return(&entity.User{
		ID:           uuid.New(),
		Username:     "ada",
		PasswordHash: "$2a$10$hash",
	}, nil)
	m2.hasher.On("Check", "wrong", "$2a$10$hash").Return(false)

	_, errWrong := svc2.Login(ctx, &usecase.LoginInput{Username: "ada", Password: "wrong"})
	require.Error(t, errWrong)

	assert.ErrorIs(t, errUnknown, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, domainerrors.ErrInvalidCredentials)
	m2.tokens.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestAuthService_ForgotPassword_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	userID := uuid.New()
	expiresAt := time.Now().Add(15 * time.Minute)

	m.userRepo.On("FindByIdentifier", ctx, "ada@example.com", "").Return(&entity.User{ID: userID}, nil)
	m.resetTokens.On("Generate").Return(&service.ResetToken{
		Plaintext: "deadbeef",
		Hash:      "hash-of-deadbeef",
		ExpiresAt: expiresAt,
	}, nil)
	m.userRepo.On("SetResetToken", ctx, userID, "hash-of-deadbeef", expiresAt).Return(nil)

	out, err := svc.ForgotPassword(ctx, &usecase.ForgotPasswordInput{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com/auth/reset-password/deadbeef", out.ResetURL)
	m.userRepo.AssertExpectations(t)
}

func TestAuthService_ForgotPassword_UnknownAccount(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.userRepo.On("FindByIdentifier", ctx, "ghost@example.com", "").Return(nil, repository.ErrUserNotFound)

	out, err := svc.ForgotPassword(ctx, &usecase.ForgotPasswordInput{Email: "ghost@example.com"})
	require.Error(t, err)
	assert.Nil(t, out)
	// Same generic error as a failed login; no account enumeration.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	m.resetTokens.AssertNotCalled(t, "Generate")
}

func TestAuthService_ResetPassword_Success(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	userID := uuid.New()
	expiresAt := time.Now().Add(10 * time.Minute)
	user := &entity.User{
		ID:                userID,
		ResetTokenHash:    "stored-hash",
		ResetTokenExpires: &expiresAt,
	}

	m.resetTokens.On("HashToken", "deadbeef").Return("stored-hash")
	m.userRepo.On("FindByResetTokenHash", ctx, "stored-hash").Return(user, nil)
	m.hasher.On("Hash", "NewS3cret!").Return("$2a$10$newhash", nil)
	m.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	m.userRepo.On("UpdatePasswordHash", ctx, userID, "$2a$10$newhash").Return(nil)
	m.userRepo.On("ClearResetToken", ctx, userID).Return(nil)

	err := svc.ResetPassword(ctx, &usecase.ResetPasswordInput{Token: "deadbeef", NewPassword: "NewS3cret!"})
	require.NoError(t, err)
	m.userRepo.AssertExpectations(t)
}

func TestAuthService_ResetPassword_UnknownToken(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	m.resetTokens.On("HashToken", "bogus").Return("bogus-hash")
	m.userRepo.On("FindByResetTokenHash", ctx, "bogus-hash").Return(nil, repository.ErrUserNotFound)

	err := svc.ResetPassword(ctx, &usecase.ResetPasswordInput{Token: "bogus", NewPassword: "NewS3cret!"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
	m.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAuthService_ResetPassword_ExpiredTokenLooksLikeWrongToken(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	expired := time.Now().Add(-time.Minute)
	user := &entity.User{
		ID:                uuid.New(),
		ResetTokenHash:    "stored-hash",
		ResetTokenExpires: &expired,
	}

	m.resetTokens.On("HashToken", "deadbeef").Return("stored-hash")
	m.userRepo.On("FindByResetTokenHash", ctx, "stored-hash").Return(user, nil)

	err := svc.ResetPassword(ctx, &usecase.ResetPasswordInput{Token: "deadbeef", NewPassword: "NewS3cret!"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
	m.userRepo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ResetPassword_ConcurrentConsume(t *testing.T) {
	svc, m := newTestAuthService(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(10 * time.Minute)
	user := &entity.User{
		ID:                uuid.New(),
		ResetTokenHash:    "stored-hash",
		ResetTokenExpires: &expiresAt,
	}

	m.resetTokens.On("HashToken", "deadbeef").Return("stored-hash")
	// First lookup succeeds, the re-check inside the transaction finds the
	// token already consumed.
	m.userRepo.On("FindByResetTokenHash", ctx, "stored-hash").Return(user, nil).Once()
	m.userRepo.On("FindByResetTokenHash", ctx, "stored-hash").Return(nil, repository.ErrUserNotFound).Once()
	m.hasher.On("Hash", "NewS3cret!").Return("$2a$10$newhash", nil)
	m.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)

	err := svc.ResetPassword(ctx, &usecase.ResetPasswordInput{Token: "deadbeef", NewPassword: "NewS3cret!"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrResetTokenInvalid)
	m.userRepo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}
