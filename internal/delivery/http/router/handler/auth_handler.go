// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"roster/config"
	"roster/internal/delivery/http/middleware"
	"roster/internal/delivery/http/response"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const birthdateLayout = "2006-01-02"

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	uc            usecase.AuthUsecase
	secureCookies bool
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	secureCookies := false
	if cfg.Auth != nil {
		secureCookies = cfg.Auth.SecureCookies
	}

	return &AuthHandler{uc: uc, secureCookies: secureCookies}
}

type registerRequest struct {
	FirstName            string `json:"firstName" validate:"required"`
	LastName             string `json:"lastName" validate:"required"`
	Username             string `json:"username" validate:"required,min=3,max=64"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,password"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
	Birthdate            string `json:"birthdate" validate:"omitempty,datetime=2006-01-02"`
	PhoneNumber          string `json:"phoneNumber"`
	CellphoneNumber      string `json:"cellphoneNumber"`
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	birthdate, err := parseBirthdate(req.Birthdate)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		Birthdate:       birthdate,
		PhoneNumber:     req.PhoneNumber,
		CellphoneNumber: req.CellphoneNumber,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "User registered successfully")
}

type loginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and establishes the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}
	if req.Email == "" && req.Username == "" {
		return domainerrors.ErrValidationFailed.WithDetails("either email or username is required")
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.sessionCookie(output.AccessToken, output.TTL))

	return response.Success(c, http.StatusOK, echo.Map{
		"user":        output.User,
		"accessToken": output.AccessToken,
	}, "Login successful")
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; there is no server-side session state to revoke.
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.expiredSessionCookie())

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

type forgotPasswordRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username"`
}

// ForgotPassword starts the password-reset protocol and returns the reset link.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid forgot-password input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}
	if req.Email == "" && req.Username == "" {
		return domainerrors.ErrValidationFailed.WithDetails("either email or username is required")
	}

	output, err := h.uc.ForgotPassword(c.Request().Context(), &usecase.ForgotPasswordInput{
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, echo.Map{"resetUrl": output.ResetURL}, "Reset link created")
}

type resetPasswordRequest struct {
	Password             string `json:"password" validate:"required,password"`
	PasswordConfirmation string `json:"passwordConfirmation" validate:"required,eqfield=Password"`
}

// ResetPassword consumes a reset token from the URL and sets the new password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return domainerrors.ErrResetTokenInvalid
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset-password input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		Token:       token,
		NewPassword: req.Password,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password reset successfully")
}

// sessionCookie builds the http-only session cookie carrying the token.
func (h *AuthHandler) sessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

// expiredSessionCookie overwrites the session cookie so browsers drop it.
func (h *AuthHandler) expiredSessionCookie() *http.Cookie {
	cookie := h.sessionCookie("", 0)
	cookie.MaxAge = -1

	return cookie
}

func parseBirthdate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	birthdate, err := time.Parse(birthdateLayout, raw)
	if err != nil {
		return time.Time{}, domainerrors.ErrValidationFailed.WithDetails("birthdate must be formatted as YYYY-MM-DD")
	}

	return birthdate, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
