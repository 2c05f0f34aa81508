// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// activeUsers scopes every read to rows that have not been soft-deleted.
func (repo *userRepository) activeUsers(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Model(&model.UserModel{}).Where("users.is_active = ?", true)
}

// FindByID retrieves a single active user by their unique ID, preloading roles.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.activeUsers(ctx).
		Preload("Roles").
		Where("users.id = ?", id).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByIdentifier retrieves a single active user by email and/or username.
func (repo *userRepository) FindByIdentifier(ctx context.Context, email, username string) (*entity.User, error) {
	if email == "" && username == "" {
		return nil, repository.ErrUserNotFound
	}

	// Credential lookups read the primary so a login right after registration
	// never sees a stale replica.
	query := repo.activeUsers(ctx).Clauses(dbresolver.Write).Preload("Roles")
	if email != "" {
		query = query.Where("users.email = ?", email)
	}
	if username != "" {
		query = query.Where("users.username = ?", username)
	}

	var userM model.UserModel
	if err := query.First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by identifier")
	}

	return toUserDomain(&userM), nil
}

// List retrieves active users matching the filter, preloading roles.
func (repo *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	query := repo.activeUsers(ctx).Preload("Roles")

	if filter.FirstName != "" {
		query = query.Where("users.first_name ILIKE ?", "%"+filter.FirstName+"%")
	}
	if filter.LastName != "" {
		query = query.Where("users.last_name ILIKE ?", "%"+filter.LastName+"%")
	}
	if filter.Email != "" {
		query = query.Where("users.email ILIKE ?", "%"+filter.Email+"%")
	}
	if filter.Role != "" {
		query = query.
			Joins("JOIN users_roles ON users_roles.user_id = users.id").
			Joins("JOIN roles ON roles.id = users_roles.role_id").
			Where("roles.name ILIKE ?", "%"+filter.Role+"%").
			Distinct("users.*")
	}

	var userModels []model.UserModel
	if err := query.Find(&userModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = toUserDomain(&userModels[i])
	}

	return users, nil
}

// Create persists a new user entity to the database.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)
	userM.IsActive = true

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.IsActive = userM.IsActive
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies the profile fields of an existing active user.
// Credential columns are deliberately excluded; they change only through the
// dedicated password/reset methods.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	updates := map[string]any{
		"first_name":       user.FirstName,
		"last_name":        user.LastName,
		"username":         user.Username,
		"email":            user.Email,
		"birthdate":        user.Birthdate,
		"phone_number":     user.PhoneNumber,
		"cellphone_number": user.CellphoneNumber,
	}

	result := repo.activeUsers(ctx).Where("users.id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SoftDelete marks a user as inactive without removing the row.
func (repo *userRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := repo.activeUsers(ctx).
		Where("users.id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// UpdatePasswordHash replaces the stored password hash for a user.
func (repo *userRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := repo.activeUsers(ctx).
		Where("users.id = ?", id).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update password hash")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// SetResetToken stores the hash and expiry of a newly issued reset token,
// overwriting any previous reset fields for that user. Last write wins for
// concurrent requests; the storage layer's own write ordering decides.
func (repo *userRepository) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error {
	result := repo.activeUsers(ctx).
		Where("users.id = ?", id).
		Updates(map[string]any{
			"reset_password_token_hash":    tokenHash,
			"reset_password_token_expires": expiresAt,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to store reset token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// FindByResetTokenHash retrieves the active user whose stored reset-token hash matches.
func (repo *userRepository) FindByResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	if tokenHash == "" {
		return nil, repository.ErrUserNotFound
	}

	// Reset tokens are freshly written; read the primary.
	var userM model.UserModel
	err := repo.activeUsers(ctx).
		Clauses(dbresolver.Write).
		Where("users.reset_password_token_hash = ?", tokenHash).
		First(&userM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by reset token hash")
	}

	return toUserDomain(&userM), nil
}

// ClearResetToken removes the reset-token fields for a user.
func (repo *userRepository) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("users.id = ?", id).
		Updates(map[string]any{
			"reset_password_token_hash":    "",
			"reset_password_token_expires": nil,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to clear reset token")
	}

	return nil
}
