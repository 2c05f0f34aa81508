package service

import "time"

// ResetToken is a freshly generated password-recovery credential. The
// plaintext leaves the server exactly once, in the reset link handed back to
// the requesting channel; only the hash and expiry are ever persisted.
type ResetToken struct {
	Plaintext string
	Hash      string
	ExpiresAt time.Time
}

// ResetTokenService generates and hashes single-use password-reset tokens.
// Tokens are high-entropy random values, so a fast deterministic digest is
// used for storage instead of the slow password hasher.
type ResetTokenService interface {
	// Generate produces a new random token with its storage hash and an
	// expiry a fixed duration from now (default 15 minutes).
	Generate() (*ResetToken, error)

	// HashToken recomputes the storage hash for a presented plaintext token.
	HashToken(plaintext string) string
}
