package store

import (
	"time"

	"github.com/google/uuid"
)

// ListStoresRequest carries pagination and search options
type ListStoresRequest struct {
	Page     int
	PageSize int
	Search   string
}

// GetStoreRequest identifies a single store
type GetStoreRequest struct {
	StoreID uuid.UUID
}

// StoreResponse is the public representation of a store.
// The owning account is deliberately not exposed.
type StoreResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Contact   string    `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}

// ListStoresResponse is a paginated list of stores
type ListStoresResponse struct {
	Items []StoreResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}
