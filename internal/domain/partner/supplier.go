package partner

import (
	"strings"
	"time"

	"github.com/ordena/backend/internal/domain/shared"
)

// Supplier represents an external provider of products
type Supplier struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null"`
	TaxID       string `gorm:"type:varchar(20);not null;uniqueIndex"`
	ContactName string `gorm:"type:varchar(100)"`
	Email       string `gorm:"type:varchar(100)"`
	Phone       string `gorm:"type:varchar(30)"`
	Address     string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, taxID string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name is required")
	}
	taxID = normalizeTaxID(taxID)
	if taxID == "" {
		return nil, shared.NewDomainError("INVALID_TAX_ID", "Supplier tax ID is required")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		TaxID:             taxID,
	}, nil
}

// Update updates the supplier details
func (s *Supplier) Update(name, contactName, email, phone, address string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name is required")
	}

	s.Name = name
	s.ContactName = contactName
	s.Email = email
	s.Phone = phone
	s.Address = address
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

func normalizeTaxID(taxID string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(taxID), ".", ""))
}
