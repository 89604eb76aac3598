package location

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// Branch represents a retail branch supplied by a warehouse
type Branch struct {
	shared.BaseAggregateRoot
	Name        string    `gorm:"type:varchar(100);not null"`
	Address     string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	TaxID       string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index"` // Supplying warehouse
}

// TableName returns the table name for GORM
func (Branch) TableName() string {
	return "branches"
}

// NewBranch creates a new branch supplied by the given warehouse
func NewBranch(name, address, description, taxID string, warehouseID uuid.UUID) (*Branch, error) {
	if err := validateSiteName(name); err != nil {
		return nil, err
	}
	if err := validateTaxID(taxID); err != nil {
		return nil, err
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Supplying warehouse is required")
	}

	return &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Address:           strings.TrimSpace(address),
		Description:       description,
		TaxID:             normalizeTaxID(taxID),
		WarehouseID:       warehouseID,
	}, nil
}

// Update updates the branch details
func (b *Branch) Update(name, address, description string) error {
	if err := validateSiteName(name); err != nil {
		return err
	}

	b.Name = strings.TrimSpace(name)
	b.Address = strings.TrimSpace(address)
	b.Description = description
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// ReassignWarehouse changes the supplying warehouse
func (b *Branch) ReassignWarehouse(warehouseID uuid.UUID) error {
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Supplying warehouse is required")
	}

	b.WarehouseID = warehouseID
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}
