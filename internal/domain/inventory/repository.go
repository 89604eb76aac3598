package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ordena/backend/internal/domain/shared"
)

// StockRecordRepository defines the interface for stock record persistence
type StockRecordRepository interface {
	// FindByID finds a stock record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockRecord, error)

	// FindByProductAndLocation finds the record for a product-location combination
	FindByProductAndLocation(ctx context.Context, productID uuid.UUID, location LocationRef) (*StockRecord, error)

	// FindByProductAndLocationForUpdate is FindByProductAndLocation with a
	// row-level write lock. Only valid inside a transaction.
	FindByProductAndLocationForUpdate(ctx context.Context, productID uuid.UUID, location LocationRef) (*StockRecord, error)

	// FindByProduct finds all records for a product across locations
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockRecord, error)

	// FindByLocation finds all records at a location
	FindByLocation(ctx context.Context, location LocationRef, filter shared.Filter) ([]StockRecord, error)

	// FindAll finds records matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockRecord, error)

	// FindBelowMinimum finds records at or below their critical threshold
	FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]StockRecord, error)

	// GetOrCreate returns the record for product-location, creating a
	// zero-quantity one if none exists. Safe under concurrent callers.
	GetOrCreate(ctx context.Context, productID uuid.UUID, location LocationRef) (*StockRecord, error)

	// Save creates or updates a stock record
	Save(ctx context.Context, record *StockRecord) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, record *StockRecord) error

	// Count counts records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumQuantityByProduct sums on-hand quantity for a product across locations
	SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)

	// ExistsByProductAndLocation checks if a record exists for product-location
	ExistsByProductAndLocation(ctx context.Context, productID uuid.UUID, location LocationRef) (bool, error)
}

// MovementFilter narrows movement history queries
type MovementFilter struct {
	shared.Filter
	SourceType *MovementSource
	UserID     *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// StockMovementRepository defines the interface for the append-only movement history.
// Movements are only ever created inside the same transaction as the stock
// change they describe; there is no update or delete.
type StockMovementRepository interface {
	// Create appends a movement
	Create(ctx context.Context, movement *StockMovement) error

	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)

	// FindByStockRecord finds movements for one record, oldest first
	FindByStockRecord(ctx context.Context, stockRecordID uuid.UUID, filter MovementFilter) ([]StockMovement, error)

	// FindByProduct finds movements for a product across locations, oldest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter MovementFilter) ([]StockMovement, error)

	// FindAll finds movements matching the filter
	FindAll(ctx context.Context, filter MovementFilter) ([]StockMovement, error)

	// CountByStockRecord counts movements for one record
	CountByStockRecord(ctx context.Context, stockRecordID uuid.UUID) (int64, error)

	// SumDeltaByStockRecord sums all deltas for one record. With the record's
	// initial zero quantity this must equal the current on-hand quantity.
	SumDeltaByStockRecord(ctx context.Context, stockRecordID uuid.UUID) (decimal.Decimal, error)
}
