// Package entity contains the core business objects of the project.
package entity

import (
	"slices"

	"github.com/google/uuid"
)

// RoleName identifies one of the fixed roles known to the system.
type RoleName string

const (
	// RoleStudent is the default role for self-registered accounts.
	RoleStudent RoleName = "student"
	// RoleTeacher marks accounts with teaching privileges.
	RoleTeacher RoleName = "teacher"
	// RoleAdmin grants access to the account-management endpoints.
	RoleAdmin RoleName = "admin"
)

// String returns the string representation of the RoleName.
func (r RoleName) String() string {
	return string(r)
}

// IsValid checks if the RoleName is a known value.
func (r RoleName) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}

// Role is a named role assignable to users through the users_roles relation.
type Role struct {
	ID   uuid.UUID
	Name RoleName
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a role with the given name.
func (rs Roles) Contains(name RoleName) bool {
	return slices.ContainsFunc(rs, func(r Role) bool { return r.Name == name })
}

// Names converts Roles to []string for token claims and responses.
func (rs Roles) Names() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.Name.String()
	}

	return result
}
