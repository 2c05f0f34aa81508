package postgres

import (
	"roster/internal/domain/entity"
	"roster/internal/infra/persistence/model"
)

func toRoleDomain(m *model.RoleModel) entity.Role {
	return entity.Role{
		ID:   m.ID,
		Name: entity.RoleName(m.Name),
	}
}

func toRolesDomain(ms []model.RoleModel) entity.Roles {
	roles := make(entity.Roles, len(ms))
	for i := range ms {
		roles[i] = toRoleDomain(&ms[i])
	}

	return roles
}

func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:                m.ID,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Username:          m.Username,
		Email:             m.Email,
		Birthdate:         m.Birthdate,
		PhoneNumber:       m.PhoneNumber,
		CellphoneNumber:   m.CellphoneNumber,
		PasswordHash:      m.PasswordHash,
		ResetTokenHash:    m.ResetPasswordTokenHash,
		ResetTokenExpires: m.ResetPasswordTokenExpires,
		IsActive:          m.IsActive,
		Roles:             toRolesDomain(m.Roles),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func fromUserDomain(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:                        u.ID,
		FirstName:                 u.FirstName,
		LastName:                  u.LastName,
		Username:                  u.Username,
		Email:                     u.Email,
		Birthdate:                 u.Birthdate,
		PhoneNumber:               u.PhoneNumber,
		CellphoneNumber:           u.CellphoneNumber,
		PasswordHash:              u.PasswordHash,
		ResetPasswordTokenHash:    u.ResetTokenHash,
		ResetPasswordTokenExpires: u.ResetTokenExpires,
		IsActive:                  u.IsActive,
	}
}
