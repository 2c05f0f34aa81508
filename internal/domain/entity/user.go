// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the single canonical account record. It carries both the public
// profile fields and the credential fields owned by the authentication flow.
// Credential fields never leave the server; see PublicUser.
type User struct {
	ID              uuid.UUID // The unique identifier for the account.
	FirstName       string
	LastName        string
	Username        string // Login identifier, unique alongside Email.
	Email           string
	Birthdate       time.Time
	PhoneNumber     string
	CellphoneNumber string

	// PasswordHash stores the bcrypt hash of the account password.
	// It is never the plaintext password and is never serialized to clients.
	PasswordHash string

	// ResetTokenHash holds the SHA-256 hash of the currently active
	// password-reset token, empty when no reset is pending. The plaintext
	// token is never stored. At most one reset token is active per user;
	// issuing a new one overwrites these fields.
	ResetTokenHash    string
	ResetTokenExpires *time.Time

	IsActive  bool
	Roles     Roles
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PublicUser is the client-visible projection of a User. It deliberately
// omits every credential field.
type PublicUser struct {
	ID              uuid.UUID `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Birthdate       time.Time `json:"birthdate"`
	PhoneNumber     string    `json:"phoneNumber,omitempty"`
	CellphoneNumber string    `json:"cellphoneNumber,omitempty"`
	Roles           []string  `json:"roles,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Public returns the client-visible projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Username:        u.Username,
		Email:           u.Email,
		Birthdate:       u.Birthdate,
		PhoneNumber:     u.PhoneNumber,
		CellphoneNumber: u.CellphoneNumber,
		Roles:           u.Roles.Names(),
		CreatedAt:       u.CreatedAt,
	}
}

// HasActiveResetToken reports whether an unexpired reset token is pending.
func (u *User) HasActiveResetToken(now time.Time) bool {
	return u.ResetTokenHash != "" && u.ResetTokenExpires != nil && u.ResetTokenExpires.After(now)
}
