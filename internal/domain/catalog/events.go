package catalog

import (
	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated     = "ProductCreated"
	EventTypeProductUpdated     = "ProductUpdated"
	EventTypeProductDeactivated = "ProductDeactivated"
	EventTypeProductReactivated = "ProductReactivated"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	InternalCode string    `json:"internal_code"`
	Name         string    `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		InternalCode:    product.InternalCode,
		Name:            product.Name,
	}
}

// EventType returns the event type name
func (e *ProductCreatedEvent) EventType() string {
	return EventTypeProductCreated
}

// ProductUpdatedEvent is published when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	InternalCode string    `json:"internal_code"`
	Name         string    `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(product *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		InternalCode:    product.InternalCode,
		Name:            product.Name,
	}
}

// EventType returns the event type name
func (e *ProductUpdatedEvent) EventType() string {
	return EventTypeProductUpdated
}

// ProductDeactivatedEvent is published when a product leaves the active set
type ProductDeactivatedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	InternalCode string    `json:"internal_code"`
}

// NewProductDeactivatedEvent creates a new ProductDeactivatedEvent
func NewProductDeactivatedEvent(product *Product) *ProductDeactivatedEvent {
	return &ProductDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeactivated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		InternalCode:    product.InternalCode,
	}
}

// EventType returns the event type name
func (e *ProductDeactivatedEvent) EventType() string {
	return EventTypeProductDeactivated
}

// ProductReactivatedEvent is published when a product rejoins the active set
type ProductReactivatedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	InternalCode string    `json:"internal_code"`
}

// NewProductReactivatedEvent creates a new ProductReactivatedEvent
func NewProductReactivatedEvent(product *Product) *ProductReactivatedEvent {
	return &ProductReactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductReactivated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		InternalCode:    product.InternalCode,
	}
}

// EventType returns the event type name
func (e *ProductReactivatedEvent) EventType() string {
	return EventTypeProductReactivated
}
