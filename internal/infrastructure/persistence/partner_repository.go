package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena/backend/internal/domain/partner"
	"github.com/ordena/backend/internal/domain/shared"
)

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *GormSupplierRepository) FindByTaxID(ctx context.Context, taxID string) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "tax_id = ?", taxID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	var suppliers []partner.Supplier
	query := applyPartnerFilter(r.db.WithContext(ctx).Model(&partner.Supplier{}), filter)
	if err := query.Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	err := r.db.WithContext(ctx).Save(supplier).Error
	if isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

func (r *GormSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyPartnerSearch(r.db.WithContext(ctx).Model(&partner.Supplier{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GormDeliveryPersonRepository implements DeliveryPersonRepository using GORM
type GormDeliveryPersonRepository struct {
	db *gorm.DB
}

// NewGormDeliveryPersonRepository creates a new GormDeliveryPersonRepository
func NewGormDeliveryPersonRepository(db *gorm.DB) *GormDeliveryPersonRepository {
	return &GormDeliveryPersonRepository{db: db}
}

func (r *GormDeliveryPersonRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.DeliveryPerson, error) {
	var person partner.DeliveryPerson
	if err := r.db.WithContext(ctx).First(&person, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *GormDeliveryPersonRepository) FindByVehiclePlate(ctx context.Context, plate string) (*partner.DeliveryPerson, error) {
	var person partner.DeliveryPerson
	if err := r.db.WithContext(ctx).First(&person, "vehicle_plate = ?", plate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &person, nil
}

func (r *GormDeliveryPersonRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.DeliveryPerson, error) {
	var people []partner.DeliveryPerson
	query := applyPartnerFilter(r.db.WithContext(ctx).Model(&partner.DeliveryPerson{}), filter)
	if err := query.Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

func (r *GormDeliveryPersonRepository) Save(ctx context.Context, person *partner.DeliveryPerson) error {
	err := r.db.WithContext(ctx).Save(person).Error
	if isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

func (r *GormDeliveryPersonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.DeliveryPerson{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormDeliveryPersonRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := applyPartnerSearch(r.db.WithContext(ctx).Model(&partner.DeliveryPerson{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func applyPartnerSearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", search)
	}
	return query
}

func applyPartnerFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyPartnerSearch(query, filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	sortField := ValidateSortField(filter.OrderBy, SiteSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

var _ partner.SupplierRepository = (*GormSupplierRepository)(nil)
var _ partner.DeliveryPersonRepository = (*GormDeliveryPersonRepository)(nil)
