package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Verification failures are tagged so callers can log or count them
// separately. All three are treated identically at the gate: deny.
var (
	// ErrTokenExpired indicates a well-formed, correctly signed token whose
	// lifetime has elapsed.
	ErrTokenExpired = errors.New("session token expired")

	// ErrTokenSignatureInvalid indicates the token was tampered with or
	// signed with a different secret.
	ErrTokenSignatureInvalid = errors.New("session token signature invalid")

	// ErrTokenMalformed indicates the token could not be parsed at all.
	ErrTokenMalformed = errors.New("session token malformed")
)

// SessionClaims is the identity carried by a session token. Claims are
// signed but not encrypted; callers must not embed sensitive data.
type SessionClaims struct {
	UserID   uuid.UUID
	Username string
	Roles    []string
}

// TokenService issues and verifies signed, time-bounded session tokens.
// Implementations are pure functions of the signing secret and their input;
// tokens are stateless and cannot be revoked before expiry.
type TokenService interface {
	// Issue produces a signed token carrying the given claims, valid for the
	// configured TTL (default one hour).
	Issue(claims SessionClaims) (string, error)

	// Verify checks signature validity and expiry, returning the embedded
	// claims on success or one of the tagged errors above.
	Verify(tokenString string) (*SessionClaims, error)

	// TTL returns the configured session token lifetime, which also bounds
	// the session cookie max-age.
	TTL() time.Duration
}
