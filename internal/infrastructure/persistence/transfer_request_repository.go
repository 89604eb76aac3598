package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena/backend/internal/domain/orders"
	"github.com/ordena/backend/internal/domain/shared"
)

// GormTransferRequestRepository implements TransferRequestRepository using GORM
type GormTransferRequestRepository struct {
	db *gorm.DB
}

// NewGormTransferRequestRepository creates a new GormTransferRequestRepository
func NewGormTransferRequestRepository(db *gorm.DB) *GormTransferRequestRepository {
	return &GormTransferRequestRepository{db: db}
}

// FindByID finds a transfer request with items and status history loaded
func (r *GormTransferRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*orders.TransferRequest, error) {
	var request orders.TransferRequest
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindByBranch finds requests filed by a branch
func (r *GormTransferRequestRepository) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]orders.TransferRequest, error) {
	return r.findWhere(ctx, filter, "branch_id = ?", branchID)
}

// FindByWarehouse finds requests addressed to a warehouse
func (r *GormTransferRequestRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]orders.TransferRequest, error) {
	return r.findWhere(ctx, filter, "warehouse_id = ?", warehouseID)
}

// FindByStatus finds requests in a given status
func (r *GormTransferRequestRepository) FindByStatus(ctx context.Context, status orders.TransferRequestStatus, filter shared.Filter) ([]orders.TransferRequest, error) {
	return r.findWhere(ctx, filter, "status = ?", status)
}

// FindAll finds requests matching the filter
func (r *GormTransferRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]orders.TransferRequest, error) {
	return r.findWhere(ctx, filter, "")
}

func (r *GormTransferRequestRepository) findWhere(ctx context.Context, filter shared.Filter, cond string, args ...interface{}) ([]orders.TransferRequest, error) {
	var result []orders.TransferRequest
	query := r.db.WithContext(ctx).Model(&orders.TransferRequest{}).Preload("Items")
	if cond != "" {
		query = query.Where(cond, args...)
	}
	query = r.applyFilter(query, filter)

	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Save creates or updates a request along with items and history entries
func (r *GormTransferRequestRepository) Save(ctx context.Context, request *orders.TransferRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "StatusHistory").Save(request).Error; err != nil {
			return err
		}
		return saveRequestChildren(tx, request)
	})
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormTransferRequestRepository) SaveWithLock(ctx context.Context, request *orders.TransferRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&orders.TransferRequest{}).
			Where("id = ? AND version = ?", request.ID, request.Version-1).
			Updates(map[string]interface{}{
				"description": request.Description,
				"status":      request.Status,
				"order_id":    request.OrderID,
				"version":     request.Version,
				"updated_at":  request.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return saveRequestChildren(tx, request)
	})
}

func saveRequestChildren(tx *gorm.DB, request *orders.TransferRequest) error {
	for i := range request.Items {
		request.Items[i].RequestID = request.ID
		if err := tx.Save(&request.Items[i]).Error; err != nil {
			return err
		}
	}
	for i := range request.StatusHistory {
		request.StatusHistory[i].RequestID = request.ID
		if err := tx.Save(&request.StatusHistory[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Count counts requests matching the filter
func (r *GormTransferRequestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&orders.TransferRequest{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormTransferRequestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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

func (r *GormTransferRequestRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "created_by_id":
			query = query.Where("created_by_id = ?", value)
		}
	}

	return query
}

// Ensure GormTransferRequestRepository implements TransferRequestRepository
var _ orders.TransferRequestRepository = (*GormTransferRequestRepository)(nil)
