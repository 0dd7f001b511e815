package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/shared"
)

// Repository defines the interface for store persistence
type Repository interface {
	// FindByID finds a store by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindByAdmin finds the store owned by the given account
	FindByAdmin(ctx context.Context, adminID uuid.UUID) (*Store, error)

	// FindAll finds all stores
	FindAll(ctx context.Context, filter shared.Filter) ([]Store, error)

	// Save saves a store (insert or update)
	Save(ctx context.Context, s *Store) error

	// Count returns the total count of stores matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
