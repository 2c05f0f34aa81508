// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// roleRepository implements the repository.RoleRepository interface using GORM.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

// FindByUserID retrieves all roles assigned to a user through the users_roles relation.
func (repo *roleRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (entity.Roles, error) {
	var roleModels []model.RoleModel
	err := repo.db.WithContext(ctx).Model(&model.RoleModel{}).
		Joins("JOIN users_roles ON users_roles.role_id = roles.id").
		Where("users_roles.user_id = ?", userID).
		Find(&roleModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find roles by user id")
	}

	return toRolesDomain(roleModels), nil
}

// FindByIDs retrieves the roles matching the given IDs.
func (repo *roleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (entity.Roles, error) {
	if len(ids) == 0 {
		return entity.Roles{}, nil
	}

	var roleModels []model.RoleModel
	err := repo.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&roleModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find roles by ids")
	}

	return toRolesDomain(roleModels), nil
}

// FindByName retrieves a role by its fixed name.
func (repo *roleRepository) FindByName(ctx context.Context, name entity.RoleName) (*entity.Role, error) {
	var roleM model.RoleModel
	err := repo.db.WithContext(ctx).
		Where("name = ?", name.String()).
		First(&roleM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, errors.Wrap(err, "failed to find role by name")
	}

	role := toRoleDomain(&roleM)

	return &role, nil
}

// AssignToUser adds a single role assignment for a user.
func (repo *roleRepository) AssignToUser(ctx context.Context, userID, roleID uuid.UUID) error {
	assignment := model.UserRoleModel{UserID: userID, RoleID: roleID}

	if err := repo.db.WithContext(ctx).Create(&assignment).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrRoleNotFound
		}
		if isUniqueConstraintViolation(err) {
			// Already assigned; treat as success.
			return nil
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to assign role")
	}

	return nil
}

// ReplaceForUser removes every current assignment for the user and inserts the given set.
// Callers run this inside a transaction so the delete and insert appear atomic.
func (repo *roleRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, roleIDs []uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.UserRoleModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear role assignments")
	}

	if len(roleIDs) == 0 {
		return nil
	}

	assignments := make([]model.UserRoleModel, len(roleIDs))
	for i, roleID := range roleIDs {
		assignments[i] = model.UserRoleModel{UserID: userID, RoleID: roleID}
	}

	if err := repo.db.WithContext(ctx).Create(&assignments).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrRoleNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to insert role assignments")
	}

	return nil
}
