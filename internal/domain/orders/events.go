package orders

import (
	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeOrder           = "Order"
	AggregateTypeTransferRequest = "TransferRequest"
)

// Event type constants
const (
	EventTypeOrderCreated            = "OrderCreated"
	EventTypeOrderStatusChanged      = "OrderStatusChanged"
	EventTypeTransferRequestCreated  = "TransferRequestCreated"
	EventTypeTransferRequestResolved = "TransferRequestResolved"
)

// OrderCreatedEvent is published when an order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID  `json:"order_id"`
	WarehouseID uuid.UUID  `json:"warehouse_id"`
	BranchID    *uuid.UUID `json:"branch_id,omitempty"`
	SupplierID  *uuid.UUID `json:"supplier_id,omitempty"`
	CreatedByID uuid.UUID  `json:"created_by_id"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		WarehouseID:     order.WarehouseID,
		BranchID:        order.BranchID,
		SupplierID:      order.SupplierID,
		CreatedByID:     order.CreatedByID,
	}
}

// EventType returns the event type name
func (e *OrderCreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// OrderStatusChangedEvent is published on every order status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID   `json:"order_id"`
	WarehouseID uuid.UUID   `json:"warehouse_id"`
	BranchID    *uuid.UUID  `json:"branch_id,omitempty"`
	FromStatus  OrderStatus `json:"from_status"`
	ToStatus    OrderStatus `json:"to_status"`
	ActorID     uuid.UUID   `json:"actor_id"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, from, to OrderStatus, actorID uuid.UUID) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		WarehouseID:     order.WarehouseID,
		BranchID:        order.BranchID,
		FromStatus:      from,
		ToStatus:        to,
		ActorID:         actorID,
	}
}

// EventType returns the event type name
func (e *OrderStatusChangedEvent) EventType() string {
	return EventTypeOrderStatusChanged
}

// TransferRequestCreatedEvent is published when a branch files a restock request
type TransferRequestCreatedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID `json:"request_id"`
	BranchID    uuid.UUID `json:"branch_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	CreatedByID uuid.UUID `json:"created_by_id"`
}

// NewTransferRequestCreatedEvent creates a new TransferRequestCreatedEvent
func NewTransferRequestCreatedEvent(request *TransferRequest) *TransferRequestCreatedEvent {
	return &TransferRequestCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransferRequestCreated, AggregateTypeTransferRequest, request.ID),
		RequestID:       request.ID,
		BranchID:        request.BranchID,
		WarehouseID:     request.WarehouseID,
		CreatedByID:     request.CreatedByID,
	}
}

// EventType returns the event type name
func (e *TransferRequestCreatedEvent) EventType() string {
	return EventTypeTransferRequestCreated
}

// TransferRequestResolvedEvent is published when a request is approved or rejected
type TransferRequestResolvedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID             `json:"request_id"`
	BranchID    uuid.UUID             `json:"branch_id"`
	WarehouseID uuid.UUID             `json:"warehouse_id"`
	Status      TransferRequestStatus `json:"status"`
	ActorID     uuid.UUID             `json:"actor_id"`
	OrderID     *uuid.UUID            `json:"order_id,omitempty"`
}

// NewTransferRequestResolvedEvent creates a new TransferRequestResolvedEvent
func NewTransferRequestResolvedEvent(request *TransferRequest, status TransferRequestStatus, actorID uuid.UUID) *TransferRequestResolvedEvent {
	return &TransferRequestResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransferRequestResolved, AggregateTypeTransferRequest, request.ID),
		RequestID:       request.ID,
		BranchID:        request.BranchID,
		WarehouseID:     request.WarehouseID,
		Status:          status,
		ActorID:         actorID,
		OrderID:         request.OrderID,
	}
}

// EventType returns the event type name
func (e *TransferRequestResolvedEvent) EventType() string {
	return EventTypeTransferRequestResolved
}
