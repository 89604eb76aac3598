package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena/backend/internal/domain/catalog"
	"github.com/ordena/backend/internal/domain/shared"
)

// GormBrandRepository implements BrandRepository using GORM
type GormBrandRepository struct {
	db *gorm.DB
}

// NewGormBrandRepository creates a new GormBrandRepository
func NewGormBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

func (r *GormBrandRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Brand, error) {
	var brand catalog.Brand
	if err := r.db.WithContext(ctx).First(&brand, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

func (r *GormBrandRepository) FindByName(ctx context.Context, name string) (*catalog.Brand, error) {
	var brand catalog.Brand
	if err := r.db.WithContext(ctx).First(&brand, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &brand, nil
}

func (r *GormBrandRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Brand, error) {
	var brands []catalog.Brand
	query := applyLookupFilter(r.db.WithContext(ctx).Model(&catalog.Brand{}), filter)
	if err := query.Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *GormBrandRepository) Save(ctx context.Context, brand *catalog.Brand) error {
	err := r.db.WithContext(ctx).Save(brand).Error
	if isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

func (r *GormBrandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Brand{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormBrandRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Brand{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	var categories []catalog.Category
	query := applyLookupFilter(r.db.WithContext(ctx).Model(&catalog.Category{}), filter)
	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	err := r.db.WithContext(ctx).Save(category).Error
	if isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Category{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyLookupFilter applies pagination and name search for small lookup tables
func applyLookupFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query.Order("name ASC")
}

var _ catalog.BrandRepository = (*GormBrandRepository)(nil)
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
