package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/domain/shared"
)

// GormStockRecordRepository implements StockRecordRepository using GORM
type GormStockRecordRepository struct {
	db *gorm.DB
}

// NewGormStockRecordRepository creates a new GormStockRecordRepository
func NewGormStockRecordRepository(db *gorm.DB) *GormStockRecordRepository {
	return &GormStockRecordRepository{db: db}
}

// FindByID finds a stock record by its ID
func (r *GormStockRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockRecord, error) {
	var record inventory.StockRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProductAndLocation finds the record for a product-location combination
func (r *GormStockRecordRepository) FindByProductAndLocation(ctx context.Context, productID uuid.UUID, location inventory.LocationRef) (*inventory.StockRecord, error) {
	var record inventory.StockRecord
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND location_kind = ? AND location_id = ?", productID, location.Kind, location.ID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProductAndLocationForUpdate locks the row for the rest of the transaction
func (r *GormStockRecordRepository) FindByProductAndLocationForUpdate(ctx context.Context, productID uuid.UUID, location inventory.LocationRef) (*inventory.StockRecord, error) {
	var record inventory.StockRecord
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND location_kind = ? AND location_id = ?", productID, location.Kind, location.ID).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByProduct finds all records for a product across locations
func (r *GormStockRecordRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockRecord, error) {
	var records []inventory.StockRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockRecord{}).
			Where("product_id = ?", productID),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByLocation finds all records at a location
func (r *GormStockRecordRepository) FindByLocation(ctx context.Context, location inventory.LocationRef, filter shared.Filter) ([]inventory.StockRecord, error) {
	var records []inventory.StockRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockRecord{}).
			Where("location_kind = ? AND location_id = ?", location.Kind, location.ID),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAll finds records matching the filter
func (r *GormStockRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockRecord, error) {
	var records []inventory.StockRecord
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.StockRecord{}), filter)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindBelowMinimum finds records at or below their critical threshold
func (r *GormStockRecordRepository) FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]inventory.StockRecord, error) {
	var records []inventory.StockRecord
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockRecord{}).
			Where("min_quantity > 0 AND quantity <= min_quantity"),
		filter,
	)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// GetOrCreate returns the record for product-location, creating a zero-quantity
// one if none exists. ON CONFLICT DO NOTHING covers concurrent creators.
func (r *GormStockRecordRepository) GetOrCreate(ctx context.Context, productID uuid.UUID, location inventory.LocationRef) (*inventory.StockRecord, error) {
	record, err := r.FindByProductAndLocation(ctx, productID, location)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	record, err = inventory.NewStockRecord(productID, location)
	if err != nil {
		return nil, err
	}
	record.ClearDomainEvents()

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "location_kind"}, {Name: "location_id"}},
			DoNothing: true,
		}).
		Create(record)
	if result.Error != nil {
		return nil, result.Error
	}

	// Lost the race, fetch the winner's row
	if result.RowsAffected == 0 {
		return r.FindByProductAndLocation(ctx, productID, location)
	}
	return record, nil
}

// Save creates or updates a stock record
func (r *GormStockRecordRepository) Save(ctx context.Context, record *inventory.StockRecord) error {
	err := r.db.WithContext(ctx).Save(record).Error
	if isUniqueViolation(err) {
		return shared.ErrDuplicateStockRecord
	}
	return err
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormStockRecordRepository) SaveWithLock(ctx context.Context, record *inventory.StockRecord) error {
	result := r.db.WithContext(ctx).
		Model(record).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(map[string]interface{}{
			"quantity":     record.Quantity,
			"min_quantity": record.MinQuantity,
			"max_quantity": record.MaxQuantity,
			"supplier_id":  record.SupplierID,
			"version":      record.Version,
			"updated_at":   record.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts records matching the filter
func (r *GormStockRecordRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.StockRecord{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumQuantityByProduct sums on-hand quantity for a product across locations
func (r *GormStockRecordRepository) SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockRecord{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("product_id = ?", productID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// ExistsByProductAndLocation checks if a record exists for product-location
func (r *GormStockRecordRepository) ExistsByProductAndLocation(ctx context.Context, productID uuid.UUID, location inventory.LocationRef) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockRecord{}).
		Where("product_id = ? AND location_kind = ? AND location_id = ?", productID, location.Kind, location.ID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormStockRecordRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, StockRecordSortFields, "created_at")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormStockRecordRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "location_kind":
			query = query.Where("location_kind = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "below_minimum":
			if value == true {
				query = query.Where("min_quantity > 0 AND quantity <= min_quantity")
			}
		case "above_maximum":
			if value == true {
				query = query.Where("max_quantity > 0 AND quantity >= max_quantity")
			}
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		}
	}

	return query
}

// isUniqueViolation reports a Postgres unique constraint violation
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key value") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Ensure GormStockRecordRepository implements StockRecordRepository
var _ inventory.StockRecordRepository = (*GormStockRecordRepository)(nil)
