package usecase

import (
	"context"
	"time"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

// ListUsersInput narrows the user listing. Empty fields are ignored.
type ListUsersInput struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
}

// CreateUserInput defines the data for an admin-created account.
type CreateUserInput struct {
	FirstName       string
	LastName        string
	Username        string
	Email           string
	Password        string
	Birthdate       time.Time
	PhoneNumber     string
	CellphoneNumber string
}

// UpdateUserInput carries a partial profile update. Nil fields are left unchanged.
type UpdateUserInput struct {
	ID              uuid.UUID
	FirstName       *string
	LastName        *string
	Username        *string
	Email           *string
	Birthdate       *time.Time
	PhoneNumber     *string
	CellphoneNumber *string
}

// UserUsecase defines the admin-gated account management operations.
type UserUsecase interface {
	List(ctx context.Context, input *ListUsersInput) ([]*entity.PublicUser, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PublicUser, error)
	Create(ctx context.Context, input *CreateUserInput) (*entity.PublicUser, error)
	Update(ctx context.Context, input *UpdateUserInput) (*entity.PublicUser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
