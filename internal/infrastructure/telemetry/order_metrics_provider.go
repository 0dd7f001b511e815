// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderMetricsProvider implements OrderMetricsProvider using GORM.
// It queries the print_orders table directly for aggregated metrics.
type GormOrderMetricsProvider struct {
	db *gorm.DB
}

// NewGormOrderMetricsProvider creates a new GormOrderMetricsProvider.
func NewGormOrderMetricsProvider(db *gorm.DB) *GormOrderMetricsProvider {
	return &GormOrderMetricsProvider{db: db}
}

// GetPendingCountByStore returns the number of pending orders per store.
// Orders without a target store are excluded.
func (p *GormOrderMetricsProvider) GetPendingCountByStore(ctx context.Context) (map[uuid.UUID]int64, error) {
	type result struct {
		StoreID      uuid.UUID `gorm:"column:store_id"`
		PendingCount int64     `gorm:"column:pending_count"`
	}

	var results []result
	err := p.db.WithContext(ctx).
		Table("print_orders").
		Select("store_id, COUNT(*) as pending_count").
		Where("status = ? AND store_id IS NOT NULL", "pending").
		Group("store_id").
		Find(&results).Error

	if err != nil {
		return nil, err
	}

	m := make(map[uuid.UUID]int64, len(results))
	for _, r := range results {
		m[r.StoreID] = r.PendingCount
	}

	return m, nil
}

// Ensure GormOrderMetricsProvider implements OrderMetricsProvider
var _ OrderMetricsProvider = (*GormOrderMetricsProvider)(nil)
