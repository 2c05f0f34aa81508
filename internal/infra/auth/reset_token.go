// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"

	"roster/config"
	"roster/internal/domain/service"
)

// resetTokenBytes is the entropy of a reset token: 32 bytes = 256 bits,
// rendered as 64 hex characters in the reset link.
const resetTokenBytes = 32

// resetTokenService generates single-use password-reset tokens. The token is
// high entropy, so SHA-256 suffices as the storage digest; the slow password
// hasher stays reserved for low-entropy passwords.
type resetTokenService struct {
	ttl time.Duration
}

// NewResetTokenService is the constructor for resetTokenService.
func NewResetTokenService(cfg *config.Config) service.ResetTokenService {
	return &resetTokenService{ttl: cfg.Auth.ResetTokenTTLOrDefault()}
}

// Generate produces a new random token, its storage hash, and the expiry.
func (s *resetTokenService) Generate() (*service.ResetToken, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, errors.Wrap(err, "failed to generate reset token")
	}

	plaintext := hex.EncodeToString(raw)

	return &service.ResetToken{
		Plaintext: plaintext,
		Hash:      s.HashToken(plaintext),
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

// HashToken computes the deterministic storage hash of a plaintext token.
// The same token always hashes to the same value, so the consume path can
// look the stored record up by hash alone.
func (s *resetTokenService) HashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))

	return hex.EncodeToString(sum[:])
}

// TokenHashesEqual compares two storage hashes in constant time.
func TokenHashesEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
