package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByTaxID(ctx context.Context, taxID string) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// DeliveryPersonRepository defines the interface for delivery person persistence
type DeliveryPersonRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*DeliveryPerson, error)
	FindByVehiclePlate(ctx context.Context, plate string) (*DeliveryPerson, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]DeliveryPerson, error)
	Save(ctx context.Context, person *DeliveryPerson) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
