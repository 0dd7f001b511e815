package intake

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/identity"
	"github.com/web2print/backend/internal/domain/printorder"
	"github.com/web2print/backend/internal/domain/shared"
	"github.com/web2print/backend/internal/domain/store"
	"go.uber.org/zap"
)

// OrderServiceConfig holds configuration for the order intake service
type OrderServiceConfig struct {
	// EncryptionEnabled turns on at-rest encryption of uploaded blobs
	EncryptionEnabled bool
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
}

// DefaultOrderServiceConfig returns the default configuration
func DefaultOrderServiceConfig() OrderServiceConfig {
	return OrderServiceConfig{
		EncryptionEnabled: false,
		DownloadURLExpiry: 15 * time.Minute,
	}
}

// OrderService handles print order intake, retrieval, and document access
type OrderService struct {
	orderRepo printorder.Repository
	storeRepo store.Repository
	blobStore BlobStore
	pages     PageCounter
	encryptor Encryptor
	metrics   OrderMetrics
	config    OrderServiceConfig
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo printorder.Repository,
	storeRepo store.Repository,
	blobStore BlobStore,
	pages PageCounter,
	encryptor Encryptor,
	logger *zap.Logger,
) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo: orderRepo,
		storeRepo: storeRepo,
		blobStore: blobStore,
		pages:     pages,
		encryptor: encryptor,
		config:    DefaultOrderServiceConfig(),
		logger:    logger,
	}
}

// SetConfig sets the service configuration
func (s *OrderService) SetConfig(config OrderServiceConfig) {
	s.config = config
}

// SetMetrics attaches business metrics recording. Optional; the service
// works without it.
func (s *OrderService) SetMetrics(metrics OrderMetrics) {
	s.metrics = metrics
}

// SubmitOrder accepts an uploaded document and creates a pending order.
// The blob is stored before the order row is written; if persistence
// fails the blob is removed again on a best-effort basis.
func (s *OrderService) SubmitOrder(ctx context.Context, userID uuid.UUID, req SubmitOrderRequest) (*SubmitOrderResponse, error) {
	// The target store is resolved before any field validation so a
	// submission against a dead store always reports STORE_NOT_FOUND
	st, err := s.storeRepo.FindByID(ctx, req.StoreID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("STORE_NOT_FOUND", "Store not found")
		}
		return nil, fmt.Errorf("failed to find store: %w", err)
	}

	pageSize := printorder.PageSize(req.PageSize)
	if !pageSize.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAGE_SIZE", "Unknown page size: "+req.PageSize)
	}

	printMode := printorder.PrintMode(req.PrintMode)
	if !printMode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRINT_MODE", "Unknown print mode: "+req.PrintMode)
	}

	if req.Copies < 1 {
		return nil, shared.ErrInvalidQuantity
	}

	if len(req.Data) == 0 {
		return nil, shared.NewDomainError("INVALID_FILE", "Uploaded document is empty")
	}

	pageCount, err := s.pages.Count(req.Data, req.FileName, req.ContentType)
	if err != nil {
		return nil, err
	}

	data := req.Data
	var key, iv []byte
	if s.config.EncryptionEnabled {
		var ciphertext []byte
		ciphertext, key, iv, err = s.encryptor.Encrypt(req.Data)
		if err != nil {
			return nil, shared.NewDomainError("ENCRYPTION_FAILED", "Document could not be encrypted")
		}
		data = ciphertext
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	storageKey := generateStorageKey(req.FileName)

	if err := s.blobStore.Upload(ctx, storageKey, data, contentType); err != nil {
		s.logger.Error("document upload failed",
			zap.Error(err),
			zap.String("storageKey", storageKey))
		return nil, shared.ErrStorageUploadFailed
	}

	order, err := printorder.NewPrintOrder(
		userID,
		&st.ID,
		req.FileName,
		storageKey,
		pageSize,
		printMode,
		req.Copies,
		pageCount,
	)
	if err != nil {
		_ = s.blobStore.Delete(ctx, storageKey)
		return nil, err
	}

	if s.config.EncryptionEnabled {
		if err := order.MarkEncrypted(iv); err != nil {
			_ = s.blobStore.Delete(ctx, storageKey)
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		_ = s.blobStore.Delete(ctx, storageKey)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Info("print order submitted",
		zap.String("orderId", order.ID.String()),
		zap.String("userId", userID.String()),
		zap.String("storeId", st.ID.String()),
		zap.Int("pages", order.NumPages),
		zap.Bool("encrypted", order.IsEncrypted))

	if s.metrics != nil {
		s.metrics.RecordUploadSize(ctx, int64(len(req.Data)), order.IsEncrypted)
		if cost, costErr := order.Cost(); costErr == nil {
			s.metrics.RecordPrintOrder(ctx, string(order.PageSize), string(order.PrintMode), order.IsEncrypted, cost.Amount())
		}
	}

	resp := &SubmitOrderResponse{
		Order: toOrderResponse(order),
	}
	if order.IsEncrypted {
		resp.EncryptionKey = hex.EncodeToString(key)
		resp.EncryptionIV = hex.EncodeToString(iv)
	}

	return resp, nil
}

// GetOrder retrieves a single order the actor is allowed to see
func (s *OrderService) GetOrder(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.findForActor(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

// ListOrders retrieves orders scoped to the actor's role, newest first.
// Staff see every order, store admins the orders of their own store,
// and regular users only their own.
func (s *OrderService) ListOrders(ctx context.Context, actor Actor, req ListOrdersRequest) (*ListOrdersResponse, error) {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}

	var orders []printorder.PrintOrder
	var err error

	switch actor.Role {
	case identity.RoleStaff:
		orders, err = s.orderRepo.FindAll(ctx, filter)
	case identity.RoleStoreAdmin:
		var st *store.Store
		st, err = s.storeRepo.FindByAdmin(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("STORE_NOT_FOUND", "No store registered for this account")
			}
			return nil, fmt.Errorf("failed to find store: %w", err)
		}
		filter.Filters["store_id"] = st.ID
		orders, err = s.orderRepo.FindByStore(ctx, st.ID, filter)
	default:
		filter.Filters["user_id"] = actor.UserID
		orders, err = s.orderRepo.FindByUser(ctx, actor.UserID, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	items := make([]OrderResponse, len(orders))
	for i := range orders {
		items[i] = toOrderResponse(&orders[i])
	}

	return &ListOrdersResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.PageSize,
	}, nil
}

// UpdatePaymentStatus advances an order after payment. Only the owner
// may move their order; an empty target status advances to printing.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, userID, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	target := printorder.OrderStatusPrinting
	if req.Status != "" {
		target = printorder.OrderStatus(req.Status)
	}

	if err := order.UpdateStatus(target); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	s.logger.Info("order status updated",
		zap.String("orderId", order.ID.String()),
		zap.String("status", order.Status.String()))

	resp := toOrderResponse(order)
	return &resp, nil
}

// DownloadDocument returns access to the stored document. Plain blobs
// get a presigned URL; encrypted blobs are fetched and decrypted with
// the client-held key, then returned inline.
func (s *OrderService) DownloadDocument(ctx context.Context, actor Actor, orderID uuid.UUID, req DownloadRequest) (*DownloadResponse, error) {
	order, err := s.findForActor(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	resp := &DownloadResponse{
		FileName:    order.FileName,
		ContentType: contentTypeFor(order.FileName),
	}

	if !order.IsEncrypted {
		url, expiresAt, err := s.blobStore.GenerateDownloadURL(ctx, order.FileLocator, s.config.DownloadURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("failed to generate download URL: %w", err)
		}
		resp.URL = url
		resp.ExpiresAt = expiresAt
		return resp, nil
	}

	if req.Key == "" {
		return nil, shared.NewDomainError("MISSING_KEY", "Encryption key is required to download this document")
	}
	key, err := hex.DecodeString(req.Key)
	if err != nil {
		return nil, shared.ErrDecryptionFailed
	}

	ciphertext, err := s.blobStore.Download(ctx, order.FileLocator)
	if err != nil {
		return nil, fmt.Errorf("failed to download document: %w", err)
	}

	plain, err := s.encryptor.Decrypt(ciphertext, key, order.IV)
	if err != nil {
		return nil, err
	}

	resp.Data = plain
	return resp, nil
}

// findForActor loads an order and enforces role-based visibility.
// Orders outside the actor's scope surface as not found.
func (s *OrderService) findForActor(ctx context.Context, actor Actor, orderID uuid.UUID) (*printorder.PrintOrder, error) {
	notFound := shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")

	switch actor.Role {
	case identity.RoleStaff:
		order, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, notFound
			}
			return nil, fmt.Errorf("failed to find order: %w", err)
		}
		return order, nil

	case identity.RoleStoreAdmin:
		order, err := s.orderRepo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, notFound
			}
			return nil, fmt.Errorf("failed to find order: %w", err)
		}
		if order.IsOwnedBy(actor.UserID) {
			return order, nil
		}
		st, err := s.storeRepo.FindByAdmin(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, notFound
			}
			return nil, fmt.Errorf("failed to find store: %w", err)
		}
		if !order.BelongsToStore(st.ID) {
			return nil, notFound
		}
		return order, nil

	default:
		order, err := s.orderRepo.FindByIDForUser(ctx, actor.UserID, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, notFound
			}
			return nil, fmt.Errorf("failed to find order: %w", err)
		}
		return order, nil
	}
}

// =============================================================================
// Helper Functions
// =============================================================================

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// generateStorageKey generates a unique storage key for a file
// Format: orders/{uniqueID}/{sanitizedFileName}
func generateStorageKey(fileName string) string {
	return fmt.Sprintf("orders/%s/%s", uuid.New().String(), sanitizeFileName(fileName))
}

func sanitizeFileName(name string) string {
	base := filepath.Base(name)
	base = unsafeKeyChars.ReplaceAllString(base, "_")
	if base == "" || base == "." || base == ".." {
		return "document"
	}
	return base
}

func contentTypeFor(fileName string) string {
	if ct := mime.TypeByExtension(filepath.Ext(fileName)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func toOrderResponse(o *printorder.PrintOrder) OrderResponse {
	resp := OrderResponse{
		ID:          o.ID.String(),
		UserID:      o.UserID.String(),
		FileName:    o.FileName,
		PageSize:    string(o.PageSize),
		PrintMode:   string(o.PrintMode),
		Copies:      o.NumCopies,
		Pages:       o.NumPages,
		Status:      string(o.Status),
		IsEncrypted: o.IsEncrypted,
		UploadedAt:  o.UploadedAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if o.StoreID != nil {
		resp.StoreID = o.StoreID.String()
	}
	if cost, err := o.Cost(); err == nil {
		resp.Cost = cost.StringFixed(2)
		resp.Currency = string(cost.Currency())
	}
	return resp
}
