package store

import (
	"strings"

	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/shared"
)

// Store represents a print shop that fulfills orders.
// Stores are immutable after registration; there is no update or delete flow.
type Store struct {
	shared.BaseAggregateRoot
	Name     string     // Display name
	Location string     // Physical address
	Contact  string     // Phone or other contact detail
	AdminID  *uuid.UUID // Owning account when self-registered
}

// NewStore creates a new store
func NewStore(name, location, contact string) (*Store, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	contact = strings.TrimSpace(contact)

	if name == "" {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	if location == "" {
		return nil, shared.NewDomainError("INVALID_STORE_LOCATION", "Store location cannot be empty")
	}
	if contact == "" {
		return nil, shared.NewDomainError("INVALID_STORE_CONTACT", "Store contact cannot be empty")
	}

	s := &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Location:          location,
		Contact:           contact,
	}

	s.AddDomainEvent(NewStoreRegisteredEvent(s))

	return s, nil
}

// AssignAdmin links the store to its owning account
func (s *Store) AssignAdmin(adminID uuid.UUID) error {
	if adminID == uuid.Nil {
		return shared.NewDomainError("INVALID_ADMIN", "Admin ID cannot be empty")
	}
	s.AdminID = &adminID
	s.Touch()
	return nil
}

// IsManagedBy returns true if the given account owns this store
func (s *Store) IsManagedBy(userID uuid.UUID) bool {
	return s.AdminID != nil && *s.AdminID == userID
}
