package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ordena/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStockRecord = "StockRecord"

// Event type constants
const (
	EventTypeStockRecordCreated = "StockRecordCreated"
	EventTypeStockLevelChanged  = "StockLevelChanged"
	EventTypeStockCritical      = "StockCritical"
	EventTypeStockMaxReached    = "StockMaxReached"
)

// StockRecordCreatedEvent is raised when a product-location record comes into existence
type StockRecordCreatedEvent struct {
	shared.BaseDomainEvent
	StockRecordID uuid.UUID   `json:"stock_record_id"`
	ProductID     uuid.UUID   `json:"product_id"`
	Location      LocationRef `json:"location"`
}

// NewStockRecordCreatedEvent creates a new StockRecordCreatedEvent
func NewStockRecordCreatedEvent(record *StockRecord) *StockRecordCreatedEvent {
	return &StockRecordCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockRecordCreated, AggregateTypeStockRecord, record.ID),
		StockRecordID:   record.ID,
		ProductID:       record.ProductID,
		Location:        record.Location,
	}
}

// EventType returns the event type name
func (e *StockRecordCreatedEvent) EventType() string {
	return EventTypeStockRecordCreated
}

// StockLevelChangedEvent is raised on every effective quantity change
type StockLevelChangedEvent struct {
	shared.BaseDomainEvent
	StockRecordID  uuid.UUID       `json:"stock_record_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Location       LocationRef     `json:"location"`
	Delta          decimal.Decimal `json:"delta"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
}

// NewStockLevelChangedEvent creates a new StockLevelChangedEvent
func NewStockLevelChangedEvent(record *StockRecord, delta, before, after decimal.Decimal) *StockLevelChangedEvent {
	return &StockLevelChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockLevelChanged, AggregateTypeStockRecord, record.ID),
		StockRecordID:   record.ID,
		ProductID:       record.ProductID,
		Location:        record.Location,
		Delta:           delta,
		QuantityBefore:  before,
		QuantityAfter:   after,
	}
}

// EventType returns the event type name
func (e *StockLevelChangedEvent) EventType() string {
	return EventTypeStockLevelChanged
}

// StockCriticalEvent is raised when a change drives the quantity down across
// the critical threshold. It does not fire again while the quantity stays at
// or below the threshold.
type StockCriticalEvent struct {
	shared.BaseDomainEvent
	StockRecordID  uuid.UUID       `json:"stock_record_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Location       LocationRef     `json:"location"`
	MinQuantity    decimal.Decimal `json:"min_quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
}

// NewStockCriticalEvent creates a new StockCriticalEvent
func NewStockCriticalEvent(record *StockRecord, before, after decimal.Decimal) *StockCriticalEvent {
	return &StockCriticalEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockCritical, AggregateTypeStockRecord, record.ID),
		StockRecordID:   record.ID,
		ProductID:       record.ProductID,
		Location:        record.Location,
		MinQuantity:     record.MinQuantity,
		QuantityBefore:  before,
		QuantityAfter:   after,
	}
}

// EventType returns the event type name
func (e *StockCriticalEvent) EventType() string {
	return EventTypeStockCritical
}

// StockMaxReachedEvent is raised when a change drives the quantity up across
// the overstock threshold. Edge-triggered like StockCriticalEvent.
type StockMaxReachedEvent struct {
	shared.BaseDomainEvent
	StockRecordID  uuid.UUID       `json:"stock_record_id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Location       LocationRef     `json:"location"`
	MaxQuantity    decimal.Decimal `json:"max_quantity"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
}

// NewStockMaxReachedEvent creates a new StockMaxReachedEvent
func NewStockMaxReachedEvent(record *StockRecord, before, after decimal.Decimal) *StockMaxReachedEvent {
	return &StockMaxReachedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMaxReached, AggregateTypeStockRecord, record.ID),
		StockRecordID:   record.ID,
		ProductID:       record.ProductID,
		Location:        record.Location,
		MaxQuantity:     record.MaxQuantity,
		QuantityBefore:  before,
		QuantityAfter:   after,
	}
}

// EventType returns the event type name
func (e *StockMaxReachedEvent) EventType() string {
	return EventTypeStockMaxReached
}
