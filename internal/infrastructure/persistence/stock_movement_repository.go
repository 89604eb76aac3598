package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/domain/shared"
)

// GormStockMovementRepository implements the append-only StockMovementRepository
// using GORM. There is deliberately no update or delete path.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends a movement
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByID finds a movement by its ID
func (r *GormStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByStockRecord finds movements for one record, oldest first
func (r *GormStockMovementRepository) FindByStockRecord(ctx context.Context, stockRecordID uuid.UUID, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
			Where("stock_record_id = ?", stockRecordID),
		filter,
	)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByProduct finds movements for a product across locations, oldest first
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
			Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindAll finds movements matching the filter
func (r *GormStockMovementRepository) FindAll(ctx context.Context, filter inventory.MovementFilter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockMovement{}), filter)

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// CountByStockRecord counts movements for one record
func (r *GormStockMovementRepository) CountByStockRecord(ctx context.Context, stockRecordID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Where("stock_record_id = ?", stockRecordID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumDeltaByStockRecord sums all deltas for one record
func (r *GormStockMovementRepository) SumDeltaByStockRecord(ctx context.Context, stockRecordID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockMovement{}).
		Select("COALESCE(SUM(delta), 0) as total").
		Where("stock_record_id = ?", stockRecordID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// applyFilter applies movement filter options to the query
func (r *GormStockMovementRepository) applyFilter(query *gorm.DB, filter inventory.MovementFilter) *gorm.DB {
	if filter.SourceType != nil {
		query = query.Where("source_type = ?", *filter.SourceType)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at <= ?", *filter.To)
	}
	for key, value := range filter.Filters {
		switch key {
		case "location_kind":
			query = query.Where("location_kind = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, StockMovementSortFields, "occurred_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("occurred_at ASC")
	}

	return query
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
