package mocks

import (
	"time"

	"roster/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a mock implementation of service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

var _ service.PasswordHasher = (*PasswordHasher)(nil)

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// TokenService is a mock implementation of service.TokenService.
type TokenService struct {
	mock.Mock
}

var _ service.TokenService = (*TokenService)(nil)

func (m *TokenService) Issue(claims service.SessionClaims) (string, error) {
	args := m.Called(claims)

	return args.String(0), args.Error(1)
}

func (m *TokenService) Verify(tokenString string) (*service.SessionClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.SessionClaims), args.Error(1)
}

func (m *TokenService) TTL() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// ResetTokenService is a mock implementation of service.ResetTokenService.
type ResetTokenService struct {
	mock.Mock
}

var _ service.ResetTokenService = (*ResetTokenService)(nil)

func (m *ResetTokenService) Generate() (*service.ResetToken, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.ResetToken), args.Error(1)
}

func (m *ResetTokenService) HashToken(plaintext string) string {
	args := m.Called(plaintext)

	return args.String(0)
}
