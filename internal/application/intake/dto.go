package intake

import (
	"time"

	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/identity"
)

// Actor identifies the authenticated account performing an operation
type Actor struct {
	UserID uuid.UUID
	Role   identity.Role
}

// SubmitOrderRequest carries one document upload and its print options
type SubmitOrderRequest struct {
	StoreID     uuid.UUID
	FileName    string
	ContentType string
	Data        []byte
	PageSize    string
	PrintMode   string
	Copies      int
}

// OrderResponse is the API representation of a print order.
// Cost is recomputed from the rate table on every read.
type OrderResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	StoreID     string    `json:"store_id,omitempty"`
	FileName    string    `json:"file_name"`
	PageSize    string    `json:"page_size"`
	PrintMode   string    `json:"print_mode"`
	Copies      int       `json:"copies"`
	Pages       int       `json:"pages"`
	Status      string    `json:"status"`
	Cost        string    `json:"cost"`
	Currency    string    `json:"currency"`
	IsEncrypted bool      `json:"is_encrypted"`
	UploadedAt  time.Time `json:"uploaded_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubmitOrderResponse is returned once after a successful upload.
// EncryptionKey is the only time the key leaves the service; it is
// never persisted and cannot be recovered afterwards.
type SubmitOrderResponse struct {
	Order         OrderResponse `json:"order"`
	EncryptionKey string        `json:"encryption_key,omitempty"`
	EncryptionIV  string        `json:"encryption_iv,omitempty"`
}

// ListOrdersRequest carries pagination options for order listings
type ListOrdersRequest struct {
	Page     int
	PageSize int
}

// ListOrdersResponse is a paginated list of orders
type ListOrdersResponse struct {
	Items []OrderResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
}

// UpdateStatusRequest moves an order forward in its lifecycle.
// An empty status advances the order to printing.
type UpdateStatusRequest struct {
	Status string
}

// DownloadRequest carries the client-held key for encrypted documents.
// Key is hex-encoded; it is ignored for unencrypted orders.
type DownloadRequest struct {
	Key string
}

// DownloadResponse returns either a presigned URL for plain blobs or
// the decrypted bytes inline for encrypted ones
type DownloadResponse struct {
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	URL         string    `json:"url,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
	Data        []byte    `json:"-"`
}
