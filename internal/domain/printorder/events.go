package printorder

import (
	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/shared"
)

// AggregateTypePrintOrder is the aggregate type for print order events
const AggregateTypePrintOrder = "PrintOrder"

// Event type constants for PrintOrder
const (
	EventTypeOrderSubmitted     = "PrintOrderSubmitted"
	EventTypeOrderStatusChanged = "PrintOrderStatusChanged"
)

// OrderSubmittedEvent is published when a new print order is created
type OrderSubmittedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID  `json:"order_id"`
	UserID    uuid.UUID  `json:"user_id"`
	StoreID   *uuid.UUID `json:"store_id,omitempty"`
	FileName  string     `json:"file_name"`
	PageSize  PageSize   `json:"page_size"`
	PrintMode PrintMode  `json:"print_mode"`
	NumCopies int        `json:"num_copies"`
	NumPages  int        `json:"num_pages"`
}

// NewOrderSubmittedEvent creates a new OrderSubmittedEvent
func NewOrderSubmittedEvent(order *PrintOrder) *OrderSubmittedEvent {
	return &OrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeOrderSubmitted,
			AggregateTypePrintOrder,
			order.ID,
		),
		OrderID:   order.ID,
		UserID:    order.UserID,
		StoreID:   order.StoreID,
		FileName:  order.FileName,
		PageSize:  order.PageSize,
		PrintMode: order.PrintMode,
		NumCopies: order.NumCopies,
		NumPages:  order.NumPages,
	}
}

// OrderStatusChangedEvent is published when an order moves to a new status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID   `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *PrintOrder, oldStatus, newStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeOrderStatusChanged,
			AggregateTypePrintOrder,
			order.ID,
		),
		OrderID:   order.ID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}
}
