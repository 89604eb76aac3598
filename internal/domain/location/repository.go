package location

import (
	"context"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// WarehouseRepository defines the interface for warehouse persistence
type WarehouseRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Warehouse, error)
	FindByTaxID(ctx context.Context, taxID string) (*Warehouse, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Warehouse, error)
	Save(ctx context.Context, warehouse *Warehouse) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// BranchRepository defines the interface for branch persistence
type BranchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	FindByTaxID(ctx context.Context, taxID string) (*Branch, error)
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]Branch, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Branch, error)
	Save(ctx context.Context, branch *Branch) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
