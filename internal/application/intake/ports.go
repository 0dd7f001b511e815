package intake

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BlobStore defines the interface for document blob storage.
// Implemented by the infrastructure layer (S3-compatible or in-memory).
type BlobStore interface {
	// Upload stores data under the given key
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// Download fetches the object stored under the given key
	Download(ctx context.Context, storageKey string) ([]byte, error)

	// GenerateDownloadURL generates a presigned URL for downloading a file
	// Returns the download URL and expiration time
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// Delete removes an object from storage
	Delete(ctx context.Context, storageKey string) error
}

// PageCounter determines how many pages a submitted document will print.
// Non-PDF documents count as a single page.
type PageCounter interface {
	Count(data []byte, fileName, contentType string) (int, error)
}

// Encryptor encrypts document blobs at rest. Encrypt generates a fresh
// key and IV for each call; the key is returned to the caller exactly
// once and must not be persisted.
type Encryptor interface {
	Encrypt(plain []byte) (ciphertext, key, iv []byte, err error)
	Decrypt(ciphertext, key, iv []byte) ([]byte, error)
}

// OrderMetrics records business metrics for accepted orders.
// Implemented by the telemetry layer; recording must never fail the
// operation being measured.
type OrderMetrics interface {
	RecordPrintOrder(ctx context.Context, pageSize, printMode string, encrypted bool, amount decimal.Decimal)
	RecordUploadSize(ctx context.Context, sizeBytes int64, encrypted bool)
}
