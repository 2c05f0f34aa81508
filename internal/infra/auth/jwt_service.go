// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"roster/config"
	"roster/internal/domain/service"
)

// sessionClaims is the JWT payload for a session token.
type sessionClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// It is a pure function of the signing secret and its input: no server-side
// session state exists, so a signed token stays valid until its expiry.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Access),
		ttl:    cfg.Auth.AccessTokenTTLOrDefault(),
	}, nil
}

// Issue produces a signed HS256 token carrying the user's identity claims.
func (s *jwtService) Issue(claims service.SessionClaims) (string, error) {
	now := time.Now()
	payload := sessionClaims{
		Username: claims.Username,
		Roles:    claims.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Verify checks the signature and expiry of a token string and extracts its
// claims. Failures map onto the tagged service errors so the gate can count
// them without string matching.
func (s *jwtService) Verify(tokenString string) (*service.SessionClaims, error) {
	var payload sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &payload, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, classifyJWTError(err)
	}
	if !token.Valid {
		return nil, service.ErrTokenSignatureInvalid
	}

	userID, err := uuid.Parse(payload.Subject)
	if err != nil {
		return nil, service.ErrTokenMalformed
	}

	return &service.SessionClaims{
		UserID:   userID,
		Username: payload.Username,
		Roles:    payload.Roles,
	}, nil
}

// TTL returns the configured session token lifetime.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return service.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid):
		return service.ErrTokenSignatureInvalid
	default:
		return service.ErrTokenMalformed
	}
}
