package catalog

import (
	"strings"
	"time"

	"github.com/ordena/backend/internal/domain/shared"
)

// Brand represents a product brand
type Brand struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Brand) TableName() string {
	return "brands"
}

// NewBrand creates a new brand
func NewBrand(name, description string) (*Brand, error) {
	if err := validateBrandName(name); err != nil {
		return nil, err
	}

	return &Brand{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
	}, nil
}

// Update updates the brand
func (b *Brand) Update(name, description string) error {
	if err := validateBrandName(name); err != nil {
		return err
	}

	b.Name = strings.TrimSpace(name)
	b.Description = description
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

func validateBrandName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Brand name is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Brand name cannot exceed 100 characters")
	}
	return nil
}
