package store

import (
	"context"
	"fmt"

	"github.com/web2print/backend/internal/domain/shared"
	"github.com/web2print/backend/internal/domain/store"
	"go.uber.org/zap"
)

// StoreService exposes the public store directory
type StoreService struct {
	storeRepo store.Repository
	logger    *zap.Logger
}

// NewStoreService creates a new StoreService
func NewStoreService(storeRepo store.Repository, logger *zap.Logger) *StoreService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreService{
		storeRepo: storeRepo,
		logger:    logger,
	}
}

// ListStores retrieves a paginated list of registered stores
func (s *StoreService) ListStores(ctx context.Context, req ListStoresRequest) (*ListStoresResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	filter.Search = req.Search

	stores, err := s.storeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}

	total, err := s.storeRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count stores: %w", err)
	}

	items := make([]StoreResponse, len(stores))
	for i := range stores {
		items[i] = toStoreResponse(&stores[i])
	}

	return &ListStoresResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// GetStore retrieves a single store by ID
func (s *StoreService) GetStore(ctx context.Context, req GetStoreRequest) (*StoreResponse, error) {
	st, err := s.storeRepo.FindByID(ctx, req.StoreID)
	if err != nil {
		return nil, shared.NewDomainError("STORE_NOT_FOUND", "Store not found")
	}

	resp := toStoreResponse(st)
	return &resp, nil
}

func toStoreResponse(st *store.Store) StoreResponse {
	return StoreResponse{
		ID:        st.ID.String(),
		Name:      st.Name,
		Location:  st.Location,
		Contact:   st.Contact,
		CreatedAt: st.CreatedAt,
	}
}
