package orders

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ordena/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusInTransit OrderStatus = "IN_TRANSIT"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusRejected  OrderStatus = "REJECTED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInTransit, OrderStatusCompleted, OrderStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusInTransit || target == OrderStatusRejected
	case OrderStatusInTransit:
		return target == OrderStatusCompleted
	case OrderStatusCompleted, OrderStatusRejected:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for statuses with no outgoing transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusRejected
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description string          `gorm:"type:varchar(255)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderStatusEntry is one immutable row in an order's status history
type OrderStatusEntry struct {
	ID         uuid.UUID   `gorm:"type:uuid;primary_key"`
	OrderID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	FromStatus OrderStatus `gorm:"type:varchar(20)"` // Empty for the creation entry
	ToStatus   OrderStatus `gorm:"type:varchar(20);not null"`
	ActorID    uuid.UUID   `gorm:"type:uuid;not null"`
	Comment    string      `gorm:"type:varchar(255)"`
	CreatedAt  time.Time   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderStatusEntry) TableName() string {
	return "order_status_entries"
}

// Order represents a stock-moving order: either a warehouse-to-branch
// transfer or a supplier delivery into a warehouse. Status changes are
// recorded in an append-only history; the current Status column is a
// convenience projection of the latest entry.
type Order struct {
	shared.BaseAggregateRoot
	Description       string      `gorm:"type:varchar(255);not null"`
	Status            OrderStatus `gorm:"type:varchar(20);not null;index"`
	WarehouseID       uuid.UUID   `gorm:"type:uuid;not null;index"` // Source for transfers, receiving site for supplier orders
	BranchID          *uuid.UUID  `gorm:"type:uuid;index"`          // Destination branch, nil for supplier orders
	SupplierID        *uuid.UUID  `gorm:"type:uuid;index"`          // Set for supplier orders only
	DeliveryPersonID  *uuid.UUID  `gorm:"type:uuid;index"`
	CreatedByID       uuid.UUID   `gorm:"type:uuid;not null;index"`
	TransferRequestID *uuid.UUID  `gorm:"type:uuid;index"` // Originating branch request (optional)

	Items         []OrderItem        `gorm:"foreignKey:OrderID;references:ID"`
	StatusHistory []OrderStatusEntry `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewTransferOrder creates a pending order moving stock from a warehouse to a branch
func NewTransferOrder(description string, warehouseID, branchID, createdBy uuid.UUID) (*Order, error) {
	if err := validateOrderParties(warehouseID, createdBy); err != nil {
		return nil, err
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Destination branch is required")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Description:       strings.TrimSpace(description),
		Status:            OrderStatusPending,
		WarehouseID:       warehouseID,
		BranchID:          &branchID,
		CreatedByID:       createdBy,
		Items:             make([]OrderItem, 0),
		StatusHistory:     make([]OrderStatusEntry, 0),
	}
	order.appendStatusEntry("", OrderStatusPending, createdBy, "Order created")
	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// NewSupplierOrder creates a pending order for stock arriving from a supplier.
// Supplier orders skip the transit phase: the caller completes them via
// CompleteIngestion once the items are recorded.
func NewSupplierOrder(description string, warehouseID, supplierID, createdBy uuid.UUID) (*Order, error) {
	if err := validateOrderParties(warehouseID, createdBy); err != nil {
		return nil, err
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier is required")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Description:       strings.TrimSpace(description),
		Status:            OrderStatusPending,
		WarehouseID:       warehouseID,
		SupplierID:        &supplierID,
		CreatedByID:       createdBy,
		Items:             make([]OrderItem, 0),
		StatusHistory:     make([]OrderStatusEntry, 0),
	}
	order.appendStatusEntry("", OrderStatusPending, createdBy, "Supplier order created")
	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a line item. Items can only change while the order is pending.
func (o *Order) AddItem(productID uuid.UUID, quantity decimal.Decimal, description string) error {
	if o.Status != OrderStatusPending {
		return shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}

	o.Items = append(o.Items, OrderItem{
		ID:          uuid.New(),
		OrderID:     o.ID,
		ProductID:   productID,
		Quantity:    quantity,
		Description: description,
		CreatedAt:   time.Now(),
	})
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// AssignDeliveryPerson assigns delivery personnel to the order
func (o *Order) AssignDeliveryPerson(personID uuid.UUID) error {
	if o.Status.IsTerminal() {
		return shared.ErrInvalidState
	}
	if personID == uuid.Nil {
		return shared.NewDomainError("INVALID_DELIVERY_PERSON", "Delivery person ID cannot be empty")
	}

	o.DeliveryPersonID = &personID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Dispatch moves a pending transfer order into transit.
// Stock leaves the source warehouse at this point.
func (o *Order) Dispatch(actorID uuid.UUID, comment string) error {
	if o.SupplierID != nil {
		return shared.NewDomainError("INVALID_STATE", "Supplier orders are not dispatched")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot dispatch an order without items")
	}
	return o.transition(OrderStatusInTransit, actorID, comment)
}

// Complete marks an in-transit order as received at the destination branch
func (o *Order) Complete(actorID uuid.UUID, comment string) error {
	return o.transition(OrderStatusCompleted, actorID, comment)
}

// CompleteIngestion completes a pending supplier order directly, skipping transit
func (o *Order) CompleteIngestion(actorID uuid.UUID, comment string) error {
	if o.SupplierID == nil {
		return shared.NewDomainError("INVALID_STATE", "Only supplier orders can skip the transit phase")
	}
	if o.Status != OrderStatusPending {
		return shared.ErrInvalidState
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot complete an order without items")
	}

	o.Status = OrderStatusCompleted
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.appendStatusEntry(OrderStatusPending, OrderStatusCompleted, actorID, comment)
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, OrderStatusPending, OrderStatusCompleted, actorID))

	return nil
}

// Reject rejects a pending order. Terminal.
func (o *Order) Reject(actorID uuid.UUID, comment string) error {
	return o.transition(OrderStatusRejected, actorID, comment)
}

func (o *Order) transition(target OrderStatus, actorID uuid.UUID, comment string) error {
	if actorID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Acting user is required")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState
	}

	from := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	o.appendStatusEntry(from, target, actorID, comment)
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target, actorID))

	return nil
}

func (o *Order) appendStatusEntry(from, to OrderStatus, actorID uuid.UUID, comment string) {
	o.StatusHistory = append(o.StatusHistory, OrderStatusEntry{
		ID:         uuid.New(),
		OrderID:    o.ID,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actorID,
		Comment:    comment,
		CreatedAt:  time.Now(),
	})
}

// IsSupplierOrder returns true if the order ingests stock from a supplier
func (o *Order) IsSupplierOrder() bool {
	return o.SupplierID != nil
}

func validateOrderParties(warehouseID, createdBy uuid.UUID) error {
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse is required")
	}
	if createdBy == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Creating user is required")
	}
	return nil
}
