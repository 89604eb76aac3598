package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// Product represents a product in the catalog.
// It is the aggregate root for product-related operations.
// Products are soft-deleted: Deactivate removes them from the active set and
// Reactivate brings them back. Internal codes are unique within the active
// set only, so a deactivated product never blocks re-registration.
type Product struct {
	shared.BaseAggregateRoot
	InternalCode string     `gorm:"type:varchar(50);not null;index"`
	Name         string     `gorm:"type:varchar(200);not null"`
	Description  string     `gorm:"type:text"`
	Active       bool       `gorm:"not null;default:true;index"`
	BrandID      *uuid.UUID `gorm:"type:uuid;index"`
	CategoryID   *uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID  *uuid.UUID `gorm:"type:uuid;index"` // Home warehouse, mutually exclusive with BranchID
	BranchID     *uuid.UUID `gorm:"type:uuid;index"` // Home branch, mutually exclusive with WarehouseID
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(internalCode, name string) (*Product, error) {
	if err := validateInternalCode(internalCode); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InternalCode:      strings.ToUpper(strings.TrimSpace(internalCode)),
		Name:              strings.TrimSpace(name),
		Active:            true,
	}
	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetBrand sets or clears the product brand
func (p *Product) SetBrand(brandID *uuid.UUID) {
	p.BrandID = brandID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetCategory sets or clears the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// AssignWarehouse sets the home warehouse and clears any home branch
func (p *Product) AssignWarehouse(warehouseID uuid.UUID) error {
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	p.WarehouseID = &warehouseID
	p.BranchID = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AssignBranch sets the home branch and clears any home warehouse
func (p *Product) AssignBranch(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}

	p.BranchID = &branchID
	p.WarehouseID = nil
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate removes the product from the active set.
// Stock records and movement history are kept untouched.
func (p *Product) Deactivate() error {
	if !p.Active {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}

	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductDeactivatedEvent(p))

	return nil
}

// Reactivate brings a soft-deleted product back into the active set.
// The caller must verify no other active product holds the same internal
// code; the reactivated product resumes its existing stock records.
func (p *Product) Reactivate() error {
	if p.Active {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductReactivatedEvent(p))

	return nil
}

func validateInternalCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Internal code is required")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Internal code cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
