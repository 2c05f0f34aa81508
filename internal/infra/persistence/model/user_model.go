// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
// Credential columns (password_hash, reset_password_token_hash) live on the
// same row as the profile; they are mapped to the entity but stripped from
// every client-facing projection.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FirstName       string    `gorm:"type:varchar(100);not null"`
	LastName        string    `gorm:"type:varchar(100);not null"`
	Username        string    `gorm:"type:varchar(100);unique;not null"`
	Email           string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash    string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Birthdate       time.Time `gorm:"type:date"`
	PhoneNumber     string    `gorm:"type:varchar(20)"`
	CellphoneNumber string    `gorm:"type:varchar(20)"`

	ResetPasswordTokenHash    string     `gorm:"type:varchar(64);index"`
	ResetPasswordTokenExpires *time.Time `gorm:""`

	IsActive  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Roles []RoleModel `gorm:"many2many:users_roles;joinForeignKey:UserID;joinReferences:RoleID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
