package orders

import (
	"context"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with items and status history loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByWarehouse finds orders originating at a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByBranch finds orders destined for a branch
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindByStatus finds orders in a given status
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) ([]Order, error)

	// FindAll finds orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Save creates or updates an order along with items and history entries
	Save(ctx context.Context, order *Order) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, order *Order) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// TransferRequestRepository defines the interface for transfer request persistence
type TransferRequestRepository interface {
	// FindByID finds a request with items and status history loaded
	FindByID(ctx context.Context, id uuid.UUID) (*TransferRequest, error)

	// FindByBranch finds requests filed by a branch
	FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]TransferRequest, error)

	// FindByWarehouse finds requests addressed to a warehouse
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]TransferRequest, error)

	// FindByStatus finds requests in a given status
	FindByStatus(ctx context.Context, status TransferRequestStatus, filter shared.Filter) ([]TransferRequest, error)

	// FindAll finds requests matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]TransferRequest, error)

	// Save creates or updates a request along with items and history entries
	Save(ctx context.Context, request *TransferRequest) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, request *TransferRequest) error

	// Count counts requests matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
