package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena/backend/internal/domain/orders"
	"github.com/ordena/backend/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM. Items and status
// history entries are append-only, so saves insert new rows and never prune.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with items and status history loaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*orders.Order, error) {
	var order orders.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByWarehouse finds orders originating at a warehouse
func (r *GormOrderRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]orders.Order, error) {
	return r.findWhere(ctx, filter, "warehouse_id = ?", warehouseID)
}

// FindByBranch finds orders destined for a branch
func (r *GormOrderRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]orders.Order, error) {
	return r.findWhere(ctx, filter, "branch_id = ?", branchID)
}

// FindByStatus finds orders in a given status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status orders.OrderStatus, filter shared.Filter) ([]orders.Order, error) {
	return r.findWhere(ctx, filter, "status = ?", status)
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]orders.Order, error) {
	return r.findWhere(ctx, filter, "")
}

func (r *GormOrderRepository) findWhere(ctx context.Context, filter shared.Filter, cond string, args ...interface{}) ([]orders.Order, error) {
	var result []orders.Order
	query := r.db.WithContext(ctx).Model(&orders.Order{}).Preload("Items")
	if cond != "" {
		query = query.Where(cond, args...)
	}
	query = r.applyFilter(query, filter)

	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Save creates or updates an order along with items and history entries
func (r *GormOrderRepository) Save(ctx context.Context, order *orders.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "StatusHistory").Save(order).Error; err != nil {
			return err
		}
		return saveOrderChildren(tx, order)
	})
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *orders.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&orders.Order{}).
			Where("id = ? AND version = ?", order.ID, order.Version-1).
			Updates(map[string]interface{}{
				"description":        order.Description,
				"status":             order.Status,
				"delivery_person_id": order.DeliveryPersonID,
				"version":            order.Version,
				"updated_at":         order.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return saveOrderChildren(tx, order)
	})
}

func saveOrderChildren(tx *gorm.DB, order *orders.Order) error {
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		if err := tx.Save(&order.Items[i]).Error; err != nil {
			return err
		}
	}
	for i := range order.StatusHistory {
		order.StatusHistory[i].OrderID = order.ID
		if err := tx.Save(&order.StatusHistory[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&orders.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "created_by_id":
			query = query.Where("created_by_id = ?", value)
		case "supplier_orders":
			if value == true {
				query = query.Where("supplier_id IS NOT NULL")
			}
		case "transfer_orders":
			if value == true {
				query = query.Where("branch_id IS NOT NULL")
			}
		}
	}

	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ orders.OrderRepository = (*GormOrderRepository)(nil)
