package printorder

import (
	"context"

	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/shared"
)

// Repository defines the interface for print order persistence
type Repository interface {
	// FindByID finds an order by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PrintOrder, error)

	// FindByIDForUser finds an order by ID owned by the given user
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*PrintOrder, error)

	// FindAll finds all orders, most recent first
	FindAll(ctx context.Context, filter shared.Filter) ([]PrintOrder, error)

	// FindByUser finds all orders owned by the given user, most recent first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]PrintOrder, error)

	// FindByStore finds all orders targeting the given store, most recent first
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]PrintOrder, error)

	// Save saves an order (insert or update)
	Save(ctx context.Context, order *PrintOrder) error

	// Delete deletes an order by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total count of orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
