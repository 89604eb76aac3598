package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ordena/backend/internal/domain/shared"
)

// StockRecord tracks the quantity of one product at one location.
// It is the aggregate root for stock operations. The composite identifier
// is ProductID + Location; at most one record exists per combination and
// records are never deleted once created.
type StockRecord struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_record_product_location,priority:1"`
	Location    LocationRef     `gorm:"embedded;embeddedPrefix:location_"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Current on-hand quantity, never negative
	MinQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Critical threshold, zero disables alerts
	MaxQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Overstock threshold, zero disables alerts
	SupplierID  *uuid.UUID      `gorm:"type:uuid;index"`                       // Preferred restock supplier (optional)
}

// TableName returns the table name for GORM
func (StockRecord) TableName() string {
	return "stock_records"
}

// NewStockRecord creates a zero-quantity stock record for a product-location combination
func NewStockRecord(productID uuid.UUID, location LocationRef) (*StockRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}

	record := &StockRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Location:          location,
		Quantity:          decimal.Zero,
		MinQuantity:       decimal.Zero,
		MaxQuantity:       decimal.Zero,
	}
	record.AddDomainEvent(NewStockRecordCreatedEvent(record))

	return record, nil
}

// ApplyDelta applies a signed quantity change to the record.
// The caller is responsible for deciding the delta; zero deltas are rejected
// so that no-op reconciliations never reach the mutation path. A delta that
// would drive the quantity negative is rejected without modifying the record.
func (r *StockRecord) ApplyDelta(delta decimal.Decimal) error {
	if delta.IsZero() {
		return shared.NewDomainError("INVALID_DELTA", "Delta cannot be zero")
	}

	before := r.Quantity
	after := before.Add(delta)
	if after.IsNegative() {
		return shared.ErrInsufficientStock
	}

	r.Quantity = after
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewStockLevelChangedEvent(r, delta, before, after))

	// Threshold events are edge-triggered: they fire only when the change
	// crosses the boundary, not while the quantity stays past it.
	if r.MinQuantity.GreaterThan(decimal.Zero) &&
		before.GreaterThan(r.MinQuantity) && after.LessThanOrEqual(r.MinQuantity) {
		r.AddDomainEvent(NewStockCriticalEvent(r, before, after))
	}
	if r.MaxQuantity.GreaterThan(decimal.Zero) &&
		before.LessThan(r.MaxQuantity) && after.GreaterThanOrEqual(r.MaxQuantity) {
		r.AddDomainEvent(NewStockMaxReachedEvent(r, before, after))
	}

	return nil
}

// CanFulfill returns true if the on-hand quantity covers the requested quantity
func (r *StockRecord) CanFulfill(quantity decimal.Decimal) bool {
	return r.Quantity.GreaterThanOrEqual(quantity)
}

// SetThresholds sets the critical and overstock thresholds.
// A zero value disables the corresponding alert.
func (r *StockRecord) SetThresholds(minQuantity, maxQuantity decimal.Decimal) error {
	if minQuantity.IsNegative() || maxQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Thresholds cannot be negative")
	}
	if maxQuantity.GreaterThan(decimal.Zero) && maxQuantity.LessThanOrEqual(minQuantity) {
		return shared.NewDomainError("INVALID_QUANTITY", "Overstock threshold must be greater than the critical threshold")
	}

	r.MinQuantity = minQuantity
	r.MaxQuantity = maxQuantity
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// AssignSupplier sets the preferred restock supplier
func (r *StockRecord) AssignSupplier(supplierID uuid.UUID) error {
	if supplierID == uuid.Nil {
		return shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}

	r.SupplierID = &supplierID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// IsBelowMinimum returns true if the quantity is at or below the critical threshold
func (r *StockRecord) IsBelowMinimum() bool {
	return r.MinQuantity.GreaterThan(decimal.Zero) && r.Quantity.LessThanOrEqual(r.MinQuantity)
}

// IsAboveMaximum returns true if the quantity is at or above the overstock threshold
func (r *StockRecord) IsAboveMaximum() bool {
	return r.MaxQuantity.GreaterThan(decimal.Zero) && r.Quantity.GreaterThanOrEqual(r.MaxQuantity)
}
