package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"roster/config"
	"roster/internal/delivery/http/middleware"
	"roster/internal/delivery/http/validator"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/mocks"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newHandlerContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func testAuthConfig(secure bool) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{SecureCookies: secure},
	}
}

func TestAuthHandler_Register_PasswordConfirmationMismatch(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	h := NewAuthHandler(uc, testAuthConfig(false))

	c, _ := newHandlerContext(t, http.MethodPost, "/auth/register", `{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"username": "ada",
		"email": "ada@example.com",
		"password": "S3cret!pass",
		"passwordConfirmation": "different1"
	}`)

	err := h.Register(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	uc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestAuthHandler_Register_WeakPasswordRejected(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	h := NewAuthHandler(uc, testAuthConfig(false))

	// No digit, fails the password rule.
	c, _ := newHandlerContext(t, http.MethodPost, "/auth/register", `{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"username": "ada",
		"email": "ada@example.com",
		"password": "onlyletters",
		"passwordConfirmation": "onlyletters"
	}`)

	err := h.Register(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	h := NewAuthHandler(uc, testAuthConfig(false))

	uc.On("Register", mock.Anything, mock.MatchedBy(func(in *usecase.RegisterInput) bool {
		return in.Username == "ada" && in.Birthdate.Equal(time.Date(1990, 12, 10, 0, 0, 0, 0, time.UTC))
	})).Return(&usecase.RegisterOutput{
		User: &entity.PublicUser{ID: uuid.New(), Username: "ada"},
	}, nil)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/register", `{
		"firstName": "Ada",
		"lastName": "Lovelace",
		"username": "ada",
		"email": "ada@example.com",
		"password": "S3cret!pass1",
		"passwordConfirmation": "S3cret!pass1",
		"birthdate": "1990-12-10"
	}`)

	err := h.Register(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"ada"`)
	// Credential fields never appear in the response body.
	assert.NotContains(t, rec.Body.String(), "password")
	uc.AssertExpectations(t)
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	h := NewAuthHandler(uc, testAuthConfig(true))

	uc.On("Login", mock.Anything, mock.Anything).Return(&usecase.LoginOutput{
		AccessToken: "signed.jwt.token",
		TTL:         time.Hour,
		User:        &entity.PublicUser{ID: uuid.New(), Username: "ada"},
	}, nil)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/login", `{
		"username": "ada",
		"password": "S3cret!pass1"
	}`)

	err := h.Login(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, middleware.AccessTokenCookie, cookie.Name)
	assert.Equal(t, "signed.jwt.token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)
}

func TestAuthHandler_Login_RequiresIdentifier(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	h := NewAuthHandler(uc, testAuthConfig(false))

	c, _ := newHandlerContext(t, http.MethodPost, "/auth/login", `{"password": "S3cret!pass1"}`)

	err := h.Login(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	uc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestAuthHandler_Logout_ClearsSessionCookie(t *testing.T) {
	h := NewAuthHandler(&mocks.AuthUsecase{}, testAuthConfig(false))

	c, rec := newHandlerContext(t, http.MethodGet, "/auth/logout", "")

	err := h.Logout(c)
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AccessTokenCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuthHandler_ForgotPassword_ReturnsResetURL(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	h := NewAuthHandler(uc, testAuthConfig(false))

	uc.On("ForgotPassword", mock.Anything, mock.MatchedBy(func(in *usecase.ForgotPasswordInput) bool {
		return in.Email == "ada@example.com"
	})).Return(&usecase.ForgotPasswordOutput{
		ResetURL: "https://app.example.com/auth/reset-password/deadbeef",
	}, nil)

	c, rec := newHandlerContext(t, http.MethodPost, "/auth/forgot-password", `{"email": "ada@example.com"}`)

	err := h.ForgotPassword(c)
	require.NoError(t, err)
	assert.Contains(t, rec.Body.String(), "reset-password/deadbeef")
}

func TestAuthHandler_ResetPassword_PasswordConfirmationMismatch(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	h := NewAuthHandler(uc, testAuthConfig(false))

	c, _ := newHandlerContext(t, http.MethodPatch, "/auth/reset-password/deadbeef", `{
		"password": "NewS3cret!1",
		"passwordConfirmation": "Other5ecret!"
	}`)
	c.SetParamNames("token")
	c.SetParamValues("deadbeef")

	err := h.ResetPassword(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	uc.AssertNotCalled(t, "ResetPassword", mock.Anything, mock.Anything)
}

func TestAuthHandler_ResetPassword_Success(t *testing.T) {
	uc := &mocks.AuthUsecase{}
	h := NewAuthHandler(uc, testAuthConfig(false))

	uc.On("ResetPassword", mock.Anything, &usecase.ResetPasswordInput{
		Token:       "deadbeef",
		NewPassword: "NewS3cret!1",
	}).Return(nil)

	c, rec := newHandlerContext(t, http.MethodPatch, "/auth/reset-password/deadbeef", `{
		"password": "NewS3cret!1",
		"passwordConfirmation": "NewS3cret!1"
	}`)
	c.SetParamNames("token")
	c.SetParamValues("deadbeef")

	err := h.ResetPassword(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	uc.AssertExpectations(t)
}
