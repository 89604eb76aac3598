package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ordena/backend/internal/domain/identity"
	"github.com/ordena/backend/internal/domain/shared"
)

// GormUserRepository implements UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	var user identity.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]identity.User, error) {
	var users []identity.User
	err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND active = ?", warehouseID, true).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) FindByBranch(ctx context.Context, branchID uuid.UUID) ([]identity.User, error) {
	var users []identity.User
	err := r.db.WithContext(ctx).
		Where("branch_id = ? AND active = ?", branchID, true).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) FindByRole(ctx context.Context, role identity.Role) ([]identity.User, error) {
	var users []identity.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	var users []identity.User
	query := r.applyFilter(r.db.WithContext(ctx).Model(&identity.User{}), filter)
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if isUniqueViolation(err) {
		return shared.ErrAlreadyExists
	}
	return err
}

func (r *GormUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&identity.User{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormUserRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", search, search)
	}
	if role, ok := filter.Filters["role"]; ok {
		query = query.Where("role = ?", role)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if warehouseID, ok := filter.Filters["warehouse_id"]; ok {
		query = query.Where("warehouse_id = ?", warehouseID)
	}
	if branchID, ok := filter.Filters["branch_id"]; ok {
		query = query.Where("branch_id = ?", branchID)
	}
	return query
}

func (r *GormUserRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	sortField := ValidateSortField(filter.OrderBy, UserSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	return query.Order(sortField + " " + sortOrder)
}

var _ identity.UserRepository = (*GormUserRepository)(nil)
