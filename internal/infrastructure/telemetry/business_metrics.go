// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// BusinessMetrics provides business metrics for the print intake service.
// It tracks order submissions, uploaded document volume, and the pending queue depth.
type BusinessMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	orderSubmittedTotal *Counter
	orderAmountTotal    *Counter
	uploadBytesTotal    *Counter

	// Gauge metrics (point-in-time values)
	pendingOrderCount *Gauge

	// Periodic collector
	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	// Data provider for periodic collection
	orderProvider OrderMetricsProvider
}

// OrderMetricsProvider provides order queue data for periodic metrics collection.
// This interface allows the telemetry layer to query order state without
// depending on the order domain directly.
type OrderMetricsProvider interface {
	// GetPendingCountByStore returns the number of pending orders per store
	GetPendingCountByStore(ctx context.Context) (map[uuid.UUID]int64, error)
}

// BusinessMetricsConfig holds configuration for business metrics.
type BusinessMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 5 minutes
	OrderProvider   OrderMetricsProvider
}

// NewBusinessMetrics creates a new BusinessMetrics instance.
func NewBusinessMetrics(cfg BusinessMetricsConfig) (*BusinessMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bm := &BusinessMetrics{
		meter:         cfg.Meter,
		logger:        logger,
		stopChan:      make(chan struct{}),
		orderProvider: cfg.OrderProvider,
	}

	var err error

	bm.orderSubmittedTotal, err = NewCounter(
		cfg.Meter,
		"web2print_order_submitted_total",
		"Total number of print orders submitted",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	bm.orderAmountTotal, err = NewCounter(
		cfg.Meter,
		"web2print_order_amount_total",
		"Total order amount in paise",
		"{paise}",
	)
	if err != nil {
		return nil, err
	}

	bm.uploadBytesTotal, err = NewCounter(
		cfg.Meter,
		"web2print_upload_bytes_total",
		"Total bytes of uploaded documents",
		"By",
	)
	if err != nil {
		return nil, err
	}

	bm.pendingOrderCount, err = NewGauge(
		cfg.Meter,
		"web2print_pending_order_count",
		"Number of orders waiting to be printed",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	return bm, nil
}

// =============================================================================
// Order Metrics
// =============================================================================

// RecordOrderSubmitted records an order submission event.
// This should be called from the application layer when an order is accepted.
func (bm *BusinessMetrics) RecordOrderSubmitted(ctx context.Context, pageSize, printMode string, encrypted bool) {
	bm.orderSubmittedTotal.Inc(ctx,
		AttrPageSize.String(pageSize),
		AttrPrintMode.String(printMode),
		AttrEncrypted.Bool(encrypted),
	)
}

// RecordOrderAmount records the order amount.
// Amount should be in the smallest currency unit (paise).
func (bm *BusinessMetrics) RecordOrderAmount(ctx context.Context, pageSize, printMode string, amountPaise int64) {
	bm.orderAmountTotal.Add(ctx, amountPaise,
		AttrPageSize.String(pageSize),
		AttrPrintMode.String(printMode),
	)
}

// RecordPrintOrder is a convenience method that records both order count and amount.
func (bm *BusinessMetrics) RecordPrintOrder(ctx context.Context, pageSize, printMode string, encrypted bool, amount decimal.Decimal) {
	bm.RecordOrderSubmitted(ctx, pageSize, printMode, encrypted)

	// Convert to paise (multiply by 100)
	amountPaise := amount.Mul(decimal.NewFromInt(100)).IntPart()
	bm.RecordOrderAmount(ctx, pageSize, printMode, amountPaise)
}

// RecordUploadSize records the size of an uploaded document.
func (bm *BusinessMetrics) RecordUploadSize(ctx context.Context, sizeBytes int64, encrypted bool) {
	bm.uploadBytesTotal.Add(ctx, sizeBytes,
		AttrEncrypted.Bool(encrypted),
	)
}

// RecordPendingOrders records the current pending queue depth for a store.
// This is a gauge metric that should be updated periodically.
func (bm *BusinessMetrics) RecordPendingOrders(ctx context.Context, storeID uuid.UUID, count int64) {
	bm.pendingOrderCount.Record(ctx, count,
		AttrStoreID.String(storeID.String()),
	)
}

// =============================================================================
// Periodic Collection
// =============================================================================

// StartPeriodicCollection starts periodic collection of gauge metrics.
// It collects queue depth metrics every interval (default: 5 minutes).
// This is non-blocking - use Stop() to stop collection.
func (bm *BusinessMetrics) StartPeriodicCollection(ctx context.Context, interval time.Duration) {
	bm.collectOnce.Do(func() {
		if interval <= 0 {
			interval = 5 * time.Minute
		}

		go bm.runPeriodicCollection(ctx, interval)
	})
}

// runPeriodicCollection runs the periodic collection loop.
func (bm *BusinessMetrics) runPeriodicCollection(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect immediately on start
	bm.collectQueueMetrics(ctx)

	for {
		select {
		case <-bm.stopChan:
			bm.logger.Info("Stopping periodic business metrics collection")
			return
		case <-ctx.Done():
			bm.logger.Info("Context cancelled, stopping periodic business metrics collection")
			return
		case <-ticker.C:
			bm.collectQueueMetrics(ctx)
		}
	}
}

// collectQueueMetrics collects pending queue gauge metrics for all stores.
func (bm *BusinessMetrics) collectQueueMetrics(ctx context.Context) {
	if bm.orderProvider == nil {
		bm.logger.Debug("No order provider configured, skipping queue metrics collection")
		return
	}

	pendingByStore, err := bm.orderProvider.GetPendingCountByStore(ctx)
	if err != nil {
		bm.logger.Warn("Failed to get pending order counts", zap.Error(err))
		return
	}

	for storeID, count := range pendingByStore {
		bm.RecordPendingOrders(ctx, storeID, count)
	}
}

// Stop stops the periodic collection.
func (bm *BusinessMetrics) Stop() {
	bm.stopOnce.Do(func() {
		close(bm.stopChan)
	})
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewBusinessMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
