package mocks

import (
	"context"

	"roster/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

// RepositoryFactory is a mock implementation of repository.RepositoryFactory.
type RepositoryFactory struct {
	mock.Mock
}

var _ repository.RepositoryFactory = (*RepositoryFactory)(nil)

func (m *RepositoryFactory) UserRepo() repository.UserRepository {
	args := m.Called()

	return args.Get(0).(repository.UserRepository)
}

func (m *RepositoryFactory) RoleRepo() repository.RoleRepository {
	args := m.Called()

	return args.Get(0).(repository.RoleRepository)
}

// TransactionManager is a mock implementation of repository.TransactionManager.
// Execute runs the unit of work against the factory configured via the mock
// call's Run hook, or short-circuits with the stubbed error.
type TransactionManager struct {
	mock.Mock

	// Factory is handed to the unit of work when Execute is stubbed to
	// delegate. Tests set it to a RepositoryFactory mock.
	Factory repository.RepositoryFactory
}

var _ repository.TransactionManager = (*TransactionManager)(nil)

func (m *TransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	if m.Factory != nil {
		return fn(m.Factory)
	}

	return nil
}
