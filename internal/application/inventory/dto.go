package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ordena/backend/internal/domain/inventory"
)

// StockRecordResponse represents a stock record in API responses
type StockRecordResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Location       LocationDTO     `json:"location"`
	Quantity       decimal.Decimal `json:"quantity"`
	MinQuantity    decimal.Decimal `json:"min_quantity"`
	MaxQuantity    decimal.Decimal `json:"max_quantity"`
	SupplierID     *uuid.UUID      `json:"supplier_id,omitempty"`
	IsBelowMinimum bool            `json:"is_below_minimum"`
	IsAboveMaximum bool            `json:"is_above_maximum"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// LocationDTO is the wire form of a location reference
type LocationDTO struct {
	Kind string    `json:"kind" binding:"required,oneof=warehouse branch"`
	ID   uuid.UUID `json:"id" binding:"required"`
}

// ToLocationRef converts the DTO to a domain location reference
func (l LocationDTO) ToLocationRef() inventory.LocationRef {
	return inventory.LocationRef{Kind: inventory.LocationKind(l.Kind), ID: l.ID}
}

// MovementResponse represents a ledger movement in API responses
type MovementResponse struct {
	ID             uuid.UUID       `json:"id"`
	StockRecordID  uuid.UUID       `json:"stock_record_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Location       LocationDTO     `json:"location"`
	Delta          decimal.Decimal `json:"delta"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Reason         string          `json:"reason"`
	SourceType     string          `json:"source_type"`
	SourceID       string          `json:"source_id,omitempty"`
	UserID         uuid.UUID       `json:"user_id"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// ReconcileCommand carries one stock reconciliation.
/// Exactly one of Delta and TargetQuantity must be set: Delta applies a
// relative change, TargetQuantity declares the desired end state.
type ReconcileCommand struct {
	ProductID      uuid.UUID
	Location       inventory.LocationRef
	Delta          *decimal.Decimal
	TargetQuantity *decimal.Decimal
	UserID         uuid.UUID
	Reason         string
	SourceType     inventory.MovementSource
	SourceID       string
}

// ReconcileResult is the outcome of one reconciliation.
// Movement is nil when the reconciliation was a no-op.
type ReconcileResult struct {
	Record   StockRecordResponse `json:"record"`
	Movement *MovementResponse   `json:"movement,omitempty"`
}

// SetThresholdsRequest updates alert thresholds on a record
type SetThresholdsRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Location    LocationDTO     `json:"location" binding:"required"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	MaxQuantity decimal.Decimal `json:"max_quantity"`
}

// StockListFilter represents filter options for stock record listings
type StockListFilter struct {
	ProductID    *uuid.UUID `form:"product_id"`
	LocationKind string     `form:"location_kind" binding:"omitempty,oneof=warehouse branch"`
	LocationID   *uuid.UUID `form:"location_id"`
	BelowMinimum *bool      `form:"below_minimum"`
	Page         int        `form:"page" binding:"omitempty,min=1"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string     `form:"order_by"`
	OrderDir     string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MovementListFilter represents filter options for movement history
type MovementListFilter struct {
	SourceType string     `form:"source_type"`
	UserID     *uuid.UUID `form:"user_id"`
	From       *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To         *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToStockRecordResponse converts a domain record to its response form
func ToStockRecordResponse(record *inventory.StockRecord) StockRecordResponse {
	return StockRecordResponse{
		ID:             record.ID,
		ProductID:      record.ProductID,
		Location:       LocationDTO{Kind: record.Location.Kind.String(), ID: record.Location.ID},
		Quantity:       record.Quantity,
		MinQuantity:    record.MinQuantity,
		MaxQuantity:    record.MaxQuantity,
		SupplierID:     record.SupplierID,
		IsBelowMinimum: record.IsBelowMinimum(),
		IsAboveMaximum: record.IsAboveMaximum(),
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
		Version:        record.Version,
	}
}

// ToMovementResponse converts a domain movement to its response form
func ToMovementResponse(movement *inventory.StockMovement) MovementResponse {
	return MovementResponse{
		ID:             movement.ID,
		StockRecordID:  movement.StockRecordID,
		ProductID:      movement.ProductID,
		Location:       LocationDTO{Kind: movement.Location.Kind.String(), ID: movement.Location.ID},
		Delta:          movement.Delta,
		QuantityBefore: movement.QuantityBefore,
		QuantityAfter:  movement.QuantityAfter,
		Reason:         movement.Reason,
		SourceType:     movement.SourceType.String(),
		SourceID:       movement.SourceID,
		UserID:         movement.UserID,
		OccurredAt:     movement.OccurredAt,
	}
}

// ToMovementResponses converts a slice of movements
func ToMovementResponses(movements []inventory.StockMovement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i := range movements {
		out[i] = ToMovementResponse(&movements[i])
	}
	return out
}
