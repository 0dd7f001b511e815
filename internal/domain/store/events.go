package store

import (
	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/shared"
)

// AggregateTypeStore is the aggregate type for store events
const AggregateTypeStore = "Store"

// EventTypeStoreRegistered is published when a new store is registered
const EventTypeStoreRegistered = "StoreRegistered"

// StoreRegisteredEvent is published when a new store is registered
type StoreRegisteredEvent struct {
	shared.BaseDomainEvent
	StoreID  uuid.UUID `json:"store_id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
}

// NewStoreRegisteredEvent creates a new StoreRegisteredEvent
func NewStoreRegisteredEvent(s *Store) *StoreRegisteredEvent {
	return &StoreRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(
			EventTypeStoreRegistered,
			AggregateTypeStore,
			s.ID,
		),
		StoreID:  s.ID,
		Name:     s.Name,
		Location: s.Location,
	}
}
