package printorder

import (
	"time"

	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/shared"
	"github.com/web2print/backend/internal/domain/shared/valueobject"
)

// PrintOrder represents one uploaded document queued for printing at a store.
// Cost is never stored; it is recomputed from the rate table on demand.
type PrintOrder struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID   // Owning account
	StoreID     *uuid.UUID  // Target store (optional on legacy rows)
	FileName    string      // Original file name as uploaded
	FileLocator string      // Opaque storage key of the stored blob
	PageSize    PageSize    // Requested paper size
	PrintMode   PrintMode   // Requested color mode
	NumCopies   int         // Number of copies, at least 1
	NumPages    int         // Counted pages, at least 1
	Status      OrderStatus // Lifecycle status, forward-only
	UploadedAt  time.Time   // When the document was submitted
	IsEncrypted bool        // Whether the stored blob is encrypted
	IV          []byte      // AES initialization vector; key is never stored
}

// NewPrintOrder creates a new print order in pending status
func NewPrintOrder(
	userID uuid.UUID,
	storeID *uuid.UUID,
	fileName string,
	fileLocator string,
	pageSize PageSize,
	printMode PrintMode,
	numCopies int,
	numPages int,
) (*PrintOrder, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if fileLocator == "" {
		return nil, shared.NewDomainError("INVALID_FILE_LOCATOR", "File locator cannot be empty")
	}
	if !pageSize.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAGE_SIZE", "Unknown page size: "+pageSize.String())
	}
	if !printMode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRINT_MODE", "Unknown print mode: "+printMode.String())
	}
	if numCopies < 1 {
		return nil, shared.ErrInvalidQuantity
	}
	if numPages < 1 {
		return nil, shared.NewDomainError("INVALID_PAGE_COUNT", "Page count must be at least 1")
	}

	order := &PrintOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		StoreID:           storeID,
		FileName:          fileName,
		FileLocator:       fileLocator,
		PageSize:          pageSize,
		PrintMode:         printMode,
		NumCopies:         numCopies,
		NumPages:          numPages,
		Status:            OrderStatusPending,
		UploadedAt:        time.Now(),
	}

	order.AddDomainEvent(NewOrderSubmittedEvent(order))

	return order, nil
}

// MarkEncrypted records that the stored blob is encrypted with the given IV.
// The key itself is handed to the caller once and never persisted.
func (o *PrintOrder) MarkEncrypted(iv []byte) error {
	if len(iv) == 0 {
		return shared.NewDomainError("INVALID_IV", "Initialization vector cannot be empty")
	}
	o.IsEncrypted = true
	o.IV = iv
	o.Touch()
	return nil
}

// UpdateStatus moves the order forward in its lifecycle
func (o *PrintOrder) UpdateStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+target.String())
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidStatusTransition
	}

	oldStatus := o.Status
	o.Status = target
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, target))

	return nil
}

// Cost recomputes the order total from the rate table
func (o *PrintOrder) Cost() (valueobject.Money, error) {
	return ComputeCost(o.PageSize, o.PrintMode, o.NumPages, o.NumCopies)
}

// IsOwnedBy returns true if the order belongs to the given user
func (o *PrintOrder) IsOwnedBy(userID uuid.UUID) bool {
	return o.UserID == userID
}

// BelongsToStore returns true if the order targets the given store
func (o *PrintOrder) BelongsToStore(storeID uuid.UUID) bool {
	return o.StoreID != nil && *o.StoreID == storeID
}

// IsPending returns true if the order has not started printing
func (o *PrintOrder) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsCompleted returns true if the order has been printed
func (o *PrintOrder) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}
