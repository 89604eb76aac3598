package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ordena/backend/internal/domain/shared"
)

// MovementSource represents the source operation type for a stock movement
type MovementSource string

const (
	// SourcePurchaseOrder is an order dispatched or received
	SourcePurchaseOrder MovementSource = "PURCHASE_ORDER"
	// SourceTransfer is a warehouse-to-branch transfer
	SourceTransfer MovementSource = "TRANSFER"
	// SourceSupplierIngestion is stock ingested from a supplier document
	SourceSupplierIngestion MovementSource = "SUPPLIER_INGESTION"
	// SourceManualAdjustment is a manual stock correction
	SourceManualAdjustment MovementSource = "MANUAL_ADJUSTMENT"
	// SourceInitialStock is initial stock setup
	SourceInitialStock MovementSource = "INITIAL_STOCK"
)

// String returns the string representation of MovementSource
func (s MovementSource) String() string {
	return string(s)
}

// IsValid returns true if the movement source is valid
func (s MovementSource) IsValid() bool {
	switch s {
	case SourcePurchaseOrder,
		SourceTransfer,
		SourceSupplierIngestion,
		SourceManualAdjustment,
		SourceInitialStock:
		return true
	}
	return false
}

// StockMovement is an immutable record of one stock change.
// Once created, movements cannot be modified - corrections are made with
// compensating movements. The before/after quantities are captured at write
// time so history reads never have to derive balances from the live record.
type StockMovement struct {
	shared.BaseEntity
	StockRecordID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movement_record"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movement_product"`
	Location       LocationRef     `gorm:"embedded;embeddedPrefix:location_"`
	Delta          decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Signed change, never zero
	QuantityBefore decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason         string          `gorm:"type:varchar(255);not null"`
	SourceType     MovementSource  `gorm:"type:varchar(30);not null;index:idx_stock_movement_source"`
	SourceID       string          `gorm:"type:varchar(50);index:idx_stock_movement_source"` // ID of source document (optional)
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	OccurredAt     time.Time       `gorm:"type:timestamptz;not null;index:idx_stock_movement_time"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a movement for a change already applied to a record.
// The before/after pair must be consistent with the delta.
func NewStockMovement(record *StockRecord, delta, before, after decimal.Decimal, userID uuid.UUID, reason string, sourceType MovementSource, sourceID string) (*StockMovement, error) {
	if delta.IsZero() {
		return nil, shared.NewDomainError("INVALID_DELTA", "Movement delta cannot be zero")
	}
	if !before.Add(delta).Equal(after) {
		return nil, shared.NewDomainError("INVALID_DELTA", "Movement delta does not match the before/after quantities")
	}
	if after.IsNegative() {
		return nil, shared.ErrInsufficientStock
	}
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Acting user is required")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Movement reason is required")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Unknown movement source type")
	}

	return &StockMovement{
		BaseEntity:     shared.NewBaseEntity(),
		StockRecordID:  record.ID,
		ProductID:      record.ProductID,
		Location:       record.Location,
		Delta:          delta,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         reason,
		SourceType:     sourceType,
		SourceID:       sourceID,
		UserID:         userID,
		OccurredAt:     time.Now(),
	}, nil
}

// IsInbound returns true if the movement increased stock
func (m *StockMovement) IsInbound() bool {
	return m.Delta.GreaterThan(decimal.Zero)
}

// IsOutbound returns true if the movement decreased stock
func (m *StockMovement) IsOutbound() bool {
	return m.Delta.LessThan(decimal.Zero)
}
