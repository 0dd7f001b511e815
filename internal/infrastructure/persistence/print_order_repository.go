package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/web2print/backend/internal/domain/printorder"
	"github.com/web2print/backend/internal/domain/shared"
	"github.com/web2print/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPrintOrderRepository implements printorder.Repository using GORM
type GormPrintOrderRepository struct {
	db *gorm.DB
}

// NewGormPrintOrderRepository creates a new GormPrintOrderRepository
func NewGormPrintOrderRepository(db *gorm.DB) *GormPrintOrderRepository {
	return &GormPrintOrderRepository{db: db}
}

// FindByID finds an order by its ID
func (r *GormPrintOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*printorder.PrintOrder, error) {
	var model models.PrintOrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUser finds an order by ID owned by the given user
func (r *GormPrintOrderRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*printorder.PrintOrder, error) {
	var model models.PrintOrderModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all orders matching the filter, most recent first
func (r *GormPrintOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]printorder.PrintOrder, error) {
	var orderModels []models.PrintOrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PrintOrderModel{}), filter)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	return toDomainOrders(orderModels), nil
}

// FindByUser finds all orders owned by the given user, most recent first
func (r *GormPrintOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]printorder.PrintOrder, error) {
	var orderModels []models.PrintOrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.PrintOrderModel{}).
			Where("user_id = ?", userID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	return toDomainOrders(orderModels), nil
}

// FindByStore finds all orders targeting the given store, most recent first
func (r *GormPrintOrderRepository) FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]printorder.PrintOrder, error) {
	var orderModels []models.PrintOrderModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.PrintOrderModel{}).
			Where("store_id = ?", storeID),
		filter,
	)

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	return toDomainOrders(orderModels), nil
}

// Save creates or updates an order
func (r *GormPrintOrderRepository) Save(ctx context.Context, order *printorder.PrintOrder) error {
	model := models.PrintOrderModelFromDomain(order)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an order
func (r *GormPrintOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PrintOrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts orders matching the filter
func (r *GormPrintOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.PrintOrderModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func toDomainOrders(orderModels []models.PrintOrderModel) []printorder.PrintOrder {
	orders := make([]printorder.PrintOrder, len(orderModels))
	for i, model := range orderModels {
		orders[i] = *model.ToDomain()
	}
	return orders
}

// applyFilter applies filter options to the query
func (r *GormPrintOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, PrintOrderSortFields, "created_at")
	orderClause := sortField + " " + ValidateSortOrder(filter.OrderDir)
	if sortField != "id" {
		// id breaks ties when the sort column repeats
		orderClause += ", id DESC"
	}
	return query.Order(orderClause)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPrintOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("file_name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "store_id":
			query = query.Where("store_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "is_encrypted":
			query = query.Where("is_encrypted = ?", value)
		}
	}

	return query
}

// Ensure GormPrintOrderRepository implements Repository
var _ printorder.Repository = (*GormPrintOrderRepository)(nil)
