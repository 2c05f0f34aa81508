// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"roster/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Shape validation (including the password/confirmation match) happens in the
// delivery layer before this input is constructed.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Username        string
	Email           string
	Password        string
	Birthdate       time.Time
	PhoneNumber     string
	CellphoneNumber string
}

// LoginInput defines the data required to log in. Either Email or Username
// identifies the account; both may be given.
type LoginInput struct {
	Email    string
	Username string
	Password string
}

// ForgotPasswordInput identifies the account requesting a password reset.
type ForgotPasswordInput struct {
	Email    string
	Username string
}

// ResetPasswordInput carries a presented reset token and the replacement password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's public projection.
type RegisterOutput struct {
	User *entity.PublicUser
}

// LoginOutput returns the session token after a successful login. The
// delivery layer sets it as an http-only cookie with MaxAge equal to TTL.
type LoginOutput struct {
	AccessToken string
	TTL         time.Duration
	User        *entity.PublicUser
}

// ForgotPasswordOutput returns the reset link containing the plaintext token.
// This is the only time the plaintext leaves the server; delivery over a side
// channel (e.g. email) is out of scope here.
type ForgotPasswordOutput struct {
	ResetURL string
}

// AuthUsecase defines the account-lifecycle operations: register, login,
// forgot-password and reset-password. Logout is stateless and lives entirely
// in the delivery layer (clearing the session cookie); a still-valid token
// cannot be revoked server-side.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) (*ForgotPasswordOutput, error)
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
}
