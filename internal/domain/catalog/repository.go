package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindActiveByInternalCode finds an active product by its internal code
	FindActiveByInternalCode(ctx context.Context, internalCode string) (*Product, error)

	// FindInactiveByInternalCode finds the most recently deactivated product
	// with the given internal code
	FindInactiveByInternalCode(ctx context.Context, internalCode string) (*Product, error)

	// FindAll finds products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindActive finds active products matching the filter
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)

	// ExistsActiveByInternalCode checks if an active product holds the code
	ExistsActiveByInternalCode(ctx context.Context, internalCode string) (bool, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// BrandRepository defines the interface for brand persistence
type BrandRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Brand, error)
	FindByName(ctx context.Context, name string) (*Brand, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Brand, error)
	Save(ctx context.Context, brand *Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
