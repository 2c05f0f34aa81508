package auth

import (
	"testing"
	"time"

	"roster/config"
	"roster/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{AccessTokenTTL: time.Hour},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig())
	require.NoError(t, err)

	claims := service.SessionClaims{
		UserID:   uuid.New(),
		Username: "alice",
		Roles:    []string{"student", "admin"},
	}

	token, err := svc.Issue(claims)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	verified, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, verified.UserID)
	assert.Equal(t, "alice", verified.Username)
	assert.Equal(t, claims.Roles, verified.Roles)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := &jwtService{
		secret: []byte("test_access_secret_key_very_long_for_testing"),
		ttl:    -time.Minute, // already expired at issuance
	}

	token, err := svc.Issue(service.SessionClaims{UserID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig())
	require.NoError(t, err)

	token, err := svc.Issue(service.SessionClaims{UserID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	// Flip a character in the signature segment
	tampered := token[:len(token)-2] + "xx"

	claims, err := svc.Verify(tampered)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenSignatureInvalid)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig())
	require.NoError(t, err)

	token, err := svc.Issue(service.SessionClaims{UserID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	other := &jwtService{secret: []byte("a_completely_different_secret_key"), ttl: time.Hour}

	claims, err := other.Verify(token)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenSignatureInvalid)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(newTestTokenConfig())
	require.NoError(t, err)

	claims, err := svc.Verify("clearly-not-a-jwt-token-format")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, service.ErrTokenMalformed)
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{}}

	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_DefaultTTL(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.TTL())
}
