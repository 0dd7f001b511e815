package identity

import (
	"context"

	"github.com/web2print/backend/internal/domain/identity"
	"github.com/web2print/backend/internal/domain/store"
)

// TransactionScope provides transactional access to identity repositories.
// Store registration creates an account and its store together; both rows
// are committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories that
// participate in a registration transaction. All repositories returned
// share the same underlying database transaction.
type TransactionalRepositories interface {
	// UserRepo returns the account repository scoped to the current transaction
	UserRepo() identity.UserRepository
	// StoreRepo returns the store repository scoped to the current transaction
	StoreRepo() store.Repository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. This is useful for testing.
type NoOpTransactionScope struct {
	userRepo  identity.UserRepository
	storeRepo store.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(userRepo identity.UserRepository, storeRepo store.Repository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		userRepo:  userRepo,
		storeRepo: storeRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// UserRepo returns the account repository.
func (s *NoOpTransactionScope) UserRepo() identity.UserRepository {
	return s.userRepo
}

// StoreRepo returns the store repository.
func (s *NoOpTransactionScope) StoreRepo() store.Repository {
	return s.storeRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
