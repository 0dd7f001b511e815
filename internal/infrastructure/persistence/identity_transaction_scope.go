package persistence

import (
	"context"

	appidentity "github.com/web2print/backend/internal/application/identity"
	"github.com/web2print/backend/internal/domain/identity"
	"github.com/web2print/backend/internal/domain/store"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appidentity.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// UserRepo returns the account repository scoped to the current transaction.
func (r *gormTransactionalRepositories) UserRepo() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

// StoreRepo returns the store repository scoped to the current transaction.
func (r *gormTransactionalRepositories) StoreRepo() store.Repository {
	return NewGormStoreRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appidentity.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appidentity.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
