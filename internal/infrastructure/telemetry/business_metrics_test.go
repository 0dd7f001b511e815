package telemetry_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/web2print/backend/internal/infrastructure/telemetry"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap/zaptest"
)

func newTestBusinessMetrics(t *testing.T, provider telemetry.OrderMetricsProvider) *telemetry.BusinessMetrics {
	t.Helper()

	mp := sdkmetric.NewMeterProvider()
	t.Cleanup(func() {
		_ = mp.Shutdown(context.Background())
	})

	bm, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:         mp.Meter("test"),
		Logger:        zaptest.NewLogger(t),
		OrderProvider: provider,
	})
	require.NoError(t, err)
	return bm
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	_, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{})
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
}

func TestBusinessMetrics_RecordPrintOrder(t *testing.T) {
	bm := newTestBusinessMetrics(t, nil)
	ctx := context.Background()

	// Recording must not panic and must accept all label combinations
	bm.RecordOrderSubmitted(ctx, "A4", "bw", false)
	bm.RecordOrderAmount(ctx, "A3", "color", 12000)
	bm.RecordPrintOrder(ctx, "A4", "color", true, decimal.NewFromInt(150))
	bm.RecordUploadSize(ctx, 1024*1024, true)
	bm.RecordPendingOrders(ctx, uuid.New(), 7)
}

// stubOrderProvider counts how many times it has been queried.
type stubOrderProvider struct {
	calls   atomic.Int64
	pending map[uuid.UUID]int64
}

func (p *stubOrderProvider) GetPendingCountByStore(ctx context.Context) (map[uuid.UUID]int64, error) {
	p.calls.Add(1)
	return p.pending, nil
}

func TestBusinessMetrics_PeriodicCollection(t *testing.T) {
	provider := &stubOrderProvider{
		pending: map[uuid.UUID]int64{uuid.New(): 3, uuid.New(): 1},
	}
	bm := newTestBusinessMetrics(t, provider)

	bm.StartPeriodicCollection(context.Background(), 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		return provider.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	bm.Stop()
}

func TestBusinessMetrics_StopIsIdempotent(t *testing.T) {
	bm := newTestBusinessMetrics(t, nil)

	bm.StartPeriodicCollection(context.Background(), time.Minute)
	bm.Stop()
	bm.Stop()
}
