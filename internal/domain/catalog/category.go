package catalog

import (
	"strings"
	"time"

	"github.com/ordena/backend/internal/domain/shared"
)

// Category represents a flat product category
type Category struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Description:       description,
	}, nil
}

// Update updates the category
func (c *Category) Update(name, description string) error {
	if err := validateCategoryName(name); err != nil {
		return err
	}

	c.Name = strings.TrimSpace(name)
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

func validateCategoryName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name is required")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}
