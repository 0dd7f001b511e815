package printorder

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web2print/backend/internal/domain/shared"
	"github.com/web2print/backend/internal/domain/shared/valueobject"
)

func newTestOrder(t *testing.T) *PrintOrder {
	t.Helper()
	storeID := uuid.New()
	order, err := NewPrintOrder(
		uuid.New(),
		&storeID,
		"thesis.pdf",
		"orders/abc/thesis.pdf",
		PageSizeA4,
		PrintModeBlackWhite,
		2,
		10,
	)
	require.NoError(t, err)
	return order
}

func TestNewPrintOrder(t *testing.T) {
	t.Run("creates pending order with generated ID", func(t *testing.T) {
		order := newTestOrder(t)

		assert.NotEqual(t, uuid.Nil, order.ID)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.False(t, order.UploadedAt.IsZero())
		assert.False(t, order.IsEncrypted)
		assert.Equal(t, 1, order.GetVersion())
	})

	t.Run("publishes submitted event", func(t *testing.T) {
		order := newTestOrder(t)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderSubmitted, events[0].EventType())
		assert.Equal(t, order.ID, events[0].AggregateID())
	})

	t.Run("allows nil store", func(t *testing.T) {
		order, err := NewPrintOrder(uuid.New(), nil, "a.pdf", "orders/x/a.pdf",
			PageSizeA3, PrintModeColor, 1, 1)
		require.NoError(t, err)
		assert.Nil(t, order.StoreID)
	})

	t.Run("rejects empty user", func(t *testing.T) {
		_, err := NewPrintOrder(uuid.Nil, nil, "a.pdf", "orders/x/a.pdf",
			PageSizeA4, PrintModeBlackWhite, 1, 1)
		assert.Error(t, err)
	})

	t.Run("rejects empty file name", func(t *testing.T) {
		_, err := NewPrintOrder(uuid.New(), nil, "", "orders/x/a.pdf",
			PageSizeA4, PrintModeBlackWhite, 1, 1)
		assert.Error(t, err)
	})

	t.Run("rejects empty file locator", func(t *testing.T) {
		_, err := NewPrintOrder(uuid.New(), nil, "a.pdf", "",
			PageSizeA4, PrintModeBlackWhite, 1, 1)
		assert.Error(t, err)
	})

	t.Run("rejects unknown page size", func(t *testing.T) {
		_, err := NewPrintOrder(uuid.New(), nil, "a.pdf", "orders/x/a.pdf",
			PageSize("A5"), PrintModeBlackWhite, 1, 1)
		assert.Error(t, err)
	})

	t.Run("rejects unknown print mode", func(t *testing.T) {
		_, err := NewPrintOrder(uuid.New(), nil, "a.pdf", "orders/x/a.pdf",
			PageSizeA4, PrintMode("sepia"), 1, 1)
		assert.Error(t, err)
	})

	t.Run("rejects zero copies", func(t *testing.T) {
		_, err := NewPrintOrder(uuid.New(), nil, "a.pdf", "orders/x/a.pdf",
			PageSizeA4, PrintModeBlackWhite, 0, 1)
		assert.Equal(t, shared.ErrInvalidQuantity, err)
	})

	t.Run("rejects zero pages", func(t *testing.T) {
		_, err := NewPrintOrder(uuid.New(), nil, "a.pdf", "orders/x/a.pdf",
			PageSizeA4, PrintModeBlackWhite, 1, 0)
		assert.Error(t, err)
	})
}

func TestPrintOrderMarkEncrypted(t *testing.T) {
	t.Run("records IV", func(t *testing.T) {
		order := newTestOrder(t)
		iv := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

		err := order.MarkEncrypted(iv)
		require.NoError(t, err)
		assert.True(t, order.IsEncrypted)
		assert.Equal(t, iv, order.IV)
	})

	t.Run("rejects empty IV", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.MarkEncrypted(nil)
		assert.Error(t, err)
		assert.False(t, order.IsEncrypted)
	})
}

func TestPrintOrderUpdateStatus(t *testing.T) {
	t.Run("moves forward and bumps version", func(t *testing.T) {
		order := newTestOrder(t)
		order.ClearDomainEvents()

		err := order.UpdateStatus(OrderStatusPrinting)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusPrinting, order.Status)
		assert.Equal(t, 2, order.GetVersion())

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderStatusChanged, events[0].EventType())
	})

	t.Run("allows skipping printing", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.UpdateStatus(OrderStatusCompleted)
		require.NoError(t, err)
		assert.True(t, order.IsCompleted())
	})

	t.Run("rejects backward transition", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.UpdateStatus(OrderStatusCompleted))

		err := order.UpdateStatus(OrderStatusPrinting)
		assert.Equal(t, shared.ErrInvalidStatusTransition, err)
		assert.Equal(t, OrderStatusCompleted, order.Status)
	})

	t.Run("rejects same status", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.UpdateStatus(OrderStatusPending)
		assert.Equal(t, shared.ErrInvalidStatusTransition, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.UpdateStatus(OrderStatus("paid"))
		assert.Error(t, err)
		assert.NotEqual(t, shared.ErrInvalidStatusTransition, err)
	})
}

func TestPrintOrderCost(t *testing.T) {
	order := newTestOrder(t)
	// A4 black_white at 2 per page, 10 pages, 2 copies
	cost, err := order.Cost()
	require.NoError(t, err)
	assert.True(t, cost.Equals(valueobject.NewMoneyINRFromInt(40)))
}

func TestPrintOrderOwnership(t *testing.T) {
	order := newTestOrder(t)

	assert.True(t, order.IsOwnedBy(order.UserID))
	assert.False(t, order.IsOwnedBy(uuid.New()))

	assert.True(t, order.BelongsToStore(*order.StoreID))
	assert.False(t, order.BelongsToStore(uuid.New()))

	noStore, err := NewPrintOrder(uuid.New(), nil, "a.pdf", "orders/x/a.pdf",
		PageSizeA4, PrintModeBlackWhite, 1, 1)
	require.NoError(t, err)
	assert.False(t, noStore.BelongsToStore(uuid.New()))
}
