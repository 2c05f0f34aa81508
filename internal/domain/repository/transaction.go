// Package repository defines the interfaces for the persistence layer.
package repository

import "context"

// RepositoryFactory hands out repository instances bound to one transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	RoleRepo() RoleRepository
}

// TransactionManager runs a unit of work inside a single storage transaction.
// Multi-step writes that must appear atomic (e.g. setting a new password hash
// and clearing the reset-token fields) go through Execute.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
