package location

import (
	"strings"
	"time"

	"github.com/ordena/backend/internal/domain/shared"
)

// Warehouse represents a central warehouse that supplies branches
type Warehouse struct {
	shared.BaseAggregateRoot
	Name    string `gorm:"type:varchar(100);not null"`
	Address string `gorm:"type:varchar(255);not null"`
	TaxID   string `gorm:"type:varchar(20);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(name, address, taxID string) (*Warehouse, error) {
	if err := validateSiteName(name); err != nil {
		return nil, err
	}
	if err := validateTaxID(taxID); err != nil {
		return nil, err
	}

	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Address:           strings.TrimSpace(address),
		TaxID:             normalizeTaxID(taxID),
	}, nil
}

// Update updates the warehouse details
func (w *Warehouse) Update(name, address string) error {
	if err := validateSiteName(name); err != nil {
		return err
	}

	w.Name = strings.TrimSpace(name)
	w.Address = strings.TrimSpace(address)
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

func validateSiteName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	return nil
}

func validateTaxID(taxID string) error {
	taxID = normalizeTaxID(taxID)
	if taxID == "" {
		return shared.NewDomainError("INVALID_TAX_ID", "Tax ID is required")
	}
	if len(taxID) > 20 {
		return shared.NewDomainError("INVALID_TAX_ID", "Tax ID cannot exceed 20 characters")
	}
	return nil
}

func normalizeTaxID(taxID string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(taxID), ".", ""))
}
