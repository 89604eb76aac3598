package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena/backend/internal/domain/location"
	"github.com/ordena/backend/internal/domain/shared"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.Warehouse, error) {
	var warehouse location.Warehouse
	if err := r.db.WithContext(ctx).First(&warehouse, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

func (r *GormWarehouseRepository) FindByTaxID(ctx context.Context, taxID string) (*location.Warehouse, error) {
	var warehouse location.Warehouse
	if err := r.db.WithContext(ctx).First(&warehouse, "tax_id = ?", taxID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &warehouse, nil
}

func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.Warehouse, error) {
	var warehouses []location.Warehouse
	query := applySiteFilter(r.db.WithContext(ctx).Model(&location.Warehouse{}), filter)
	if err := query.Find(&warehouses).Error; err != nil {
		return nil, err
	}
	return warehouses, nil
}

func (r *GormWarehouseRepository) Save(ctx context.Context, warehouse *location.Warehouse) error {
	err := r.db.WithContext(ctx).Save(warehouse).Error
	if isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

func (r *GormWarehouseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySiteSearch(r.db.WithContext(ctx).Model(&location.Warehouse{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*location.Branch, error) {
	var branch location.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

func (r *GormBranchRepository) FindByTaxID(ctx context.Context, taxID string) (*location.Branch, error) {
	var branch location.Branch
	if err := r.db.WithContext(ctx).First(&branch, "tax_id = ?", taxID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &branch, nil
}

func (r *GormBranchRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]location.Branch, error) {
	var branches []location.Branch
	query := applySiteFilter(r.db.WithContext(ctx).Model(&location.Branch{}), filter).
		Where("warehouse_id = ?", warehouseID)
	if err := query.Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]location.Branch, error) {
	var branches []location.Branch
	query := applySiteFilter(r.db.WithContext(ctx).Model(&location.Branch{}), filter)
	if warehouseID, ok := filter.Filters["warehouse_id"]; ok {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	if err := query.Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *GormBranchRepository) Save(ctx context.Context, branch *location.Branch) error {
	err := r.db.WithContext(ctx).Save(branch).Error
	if isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

func (r *GormBranchRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applySiteSearch(r.db.WithContext(ctx).Model(&location.Branch{}), filter)
	if warehouseID, ok := filter.Filters["warehouse_id"]; ok {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applySiteSearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ? OR tax_id ILIKE ?", search, search, search)
	}
	return query
}

func applySiteFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applySiteSearch(query, filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	sortField := ValidateSortField(filter.OrderBy, SiteSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

var _ location.WarehouseRepository = (*GormWarehouseRepository)(nil)
var _ location.BranchRepository = (*GormBranchRepository)(nil)
