package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidCredentials  = NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

	ErrDocumentUnreadable      = NewDomainError("DOCUMENT_UNREADABLE", "Document could not be parsed")
	ErrStorageUploadFailed     = NewDomainError("STORAGE_UPLOAD_FAILED", "Document could not be stored")
	ErrDecryptionFailed        = NewDomainError("DECRYPTION_FAILED", "Document could not be decrypted")
	ErrInvalidPricingKey       = NewDomainError("INVALID_PRICING_KEY", "No rate configured for this page size and print mode")
	ErrInvalidQuantity         = NewDomainError("INVALID_QUANTITY", "Copy count must be at least one")
	ErrInvalidStatusTransition = NewDomainError("INVALID_STATUS_TRANSITION", "Order status cannot move backwards")
)
