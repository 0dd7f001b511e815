package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/web2print/backend/internal/domain/shared"
	"github.com/web2print/backend/internal/domain/store"
)

// MockStoreRepository is a mock implementation of store.Repository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByAdmin(ctx context.Context, adminID uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAll(ctx context.Context, filter shared.Filter) ([]store.Store, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Store), args.Error(1)
}

func (m *MockStoreRepository) Save(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ store.Repository = (*MockStoreRepository)(nil)

func newTestStore(t *testing.T, name string) store.Store {
	t.Helper()
	st, err := store.NewStore(name, "12 College Road", "+91-9876543210")
	require.NoError(t, err)
	return *st
}

func TestStoreService_ListStores(t *testing.T) {
	ctx := context.Background()

	t.Run("returns all registered stores", func(t *testing.T) {
		repo := new(MockStoreRepository)
		service := NewStoreService(repo, nil)
		stores := []store.Store{
			newTestStore(t, "Campus Copy Center"),
			newTestStore(t, "Print Express"),
		}

		repo.On("FindAll", ctx, mock.Anything).Return(stores, nil)
		repo.On("Count", ctx, mock.Anything).Return(int64(2), nil)

		resp, err := service.ListStores(ctx, ListStoresRequest{})
		require.NoError(t, err)

		assert.Len(t, resp.Items, 2)
		assert.Equal(t, int64(2), resp.Total)
		assert.Equal(t, "Campus Copy Center", resp.Items[0].Name)
	})

	t.Run("applies pagination options", func(t *testing.T) {
		repo := new(MockStoreRepository)
		service := NewStoreService(repo, nil)

		repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 2 && f.PageSize == 5
		})).Return([]store.Store{}, nil)
		repo.On("Count", ctx, mock.Anything).Return(int64(12), nil)

		resp, err := service.ListStores(ctx, ListStoresRequest{Page: 2, PageSize: 5})
		require.NoError(t, err)

		assert.Equal(t, 2, resp.Page)
		assert.Equal(t, 5, resp.Size)
		repo.AssertExpectations(t)
	})
}

func TestStoreService_GetStore(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a store by ID", func(t *testing.T) {
		repo := new(MockStoreRepository)
		service := NewStoreService(repo, nil)
		st := newTestStore(t, "Campus Copy Center")

		repo.On("FindByID", ctx, st.ID).Return(&st, nil)

		resp, err := service.GetStore(ctx, GetStoreRequest{StoreID: st.ID})
		require.NoError(t, err)

		assert.Equal(t, st.ID.String(), resp.ID)
		assert.Equal(t, "Campus Copy Center", resp.Name)
	})

	t.Run("unknown store surfaces as not found", func(t *testing.T) {
		repo := new(MockStoreRepository)
		service := NewStoreService(repo, nil)
		storeID := uuid.New()

		repo.On("FindByID", ctx, storeID).Return(nil, shared.ErrNotFound)

		_, err := service.GetStore(ctx, GetStoreRequest{StoreID: storeID})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "STORE_NOT_FOUND", domainErr.Code)
	})
}
