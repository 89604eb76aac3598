package orders

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ordena/backend/internal/domain/shared"
)

// TransferRequestStatus represents the status of a branch restock request
type TransferRequestStatus string

const (
	TransferRequestStatusPending  TransferRequestStatus = "PENDING"
	TransferRequestStatusApproved TransferRequestStatus = "APPROVED"
	TransferRequestStatusRejected TransferRequestStatus = "REJECTED"
)

// IsValid checks if the status is a valid TransferRequestStatus
func (s TransferRequestStatus) IsValid() bool {
	switch s {
	case TransferRequestStatusPending, TransferRequestStatusApproved, TransferRequestStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of TransferRequestStatus
func (s TransferRequestStatus) String() string {
	return string(s)
}

// TransferRequestItem represents a line item in a transfer request
type TransferRequestItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	RequestID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description string          `gorm:"type:varchar(255)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransferRequestItem) TableName() string {
	return "transfer_request_items"
}

// TransferRequestStatusEntry is one immutable row in a request's status history
type TransferRequestStatusEntry struct {
	ID         uuid.UUID             `gorm:"type:uuid;primary_key"`
	RequestID  uuid.UUID             `gorm:"type:uuid;not null;index"`
	FromStatus TransferRequestStatus `gorm:"type:varchar(20)"` // Empty for the creation entry
	ToStatus   TransferRequestStatus `gorm:"type:varchar(20);not null"`
	ActorID    uuid.UUID             `gorm:"type:uuid;not null"`
	Comment    string                `gorm:"type:varchar(255)"`
	CreatedAt  time.Time             `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransferRequestStatusEntry) TableName() string {
	return "transfer_request_status_entries"
}

// TransferRequest is a branch's request for stock from its supplying
// warehouse. Approval turns it into an Order; the request itself never
// moves stock.
type TransferRequest struct {
	shared.BaseAggregateRoot
	Description string                `gorm:"type:varchar(255);not null"`
	Status      TransferRequestStatus `gorm:"type:varchar(20);not null;index"`
	BranchID    uuid.UUID             `gorm:"type:uuid;not null;index"` // Requesting branch
	WarehouseID uuid.UUID             `gorm:"type:uuid;not null;index"` // Supplying warehouse
	CreatedByID uuid.UUID             `gorm:"type:uuid;not null;index"`
	OrderID     *uuid.UUID            `gorm:"type:uuid;index"` // Resulting order after approval

	Items         []TransferRequestItem        `gorm:"foreignKey:RequestID;references:ID"`
	StatusHistory []TransferRequestStatusEntry `gorm:"foreignKey:RequestID;references:ID"`
}

// TableName returns the table name for GORM
func (TransferRequest) TableName() string {
	return "transfer_requests"
}

// NewTransferRequest creates a pending restock request
func NewTransferRequest(description string, branchID, warehouseID, createdBy uuid.UUID) (*TransferRequest, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Requesting branch is required")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Supplying warehouse is required")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creating user is required")
	}

	request := &TransferRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Description:       strings.TrimSpace(description),
		Status:            TransferRequestStatusPending,
		BranchID:          branchID,
		WarehouseID:       warehouseID,
		CreatedByID:       createdBy,
		Items:             make([]TransferRequestItem, 0),
		StatusHistory:     make([]TransferRequestStatusEntry, 0),
	}
	request.appendStatusEntry("", TransferRequestStatusPending, createdBy, "Request created")
	request.AddDomainEvent(NewTransferRequestCreatedEvent(request))

	return request, nil
}

// AddItem adds a line item. Items can only change while the request is pending.
func (r *TransferRequest) AddItem(productID uuid.UUID, quantity decimal.Decimal, description string) error {
	if r.Status != TransferRequestStatusPending {
		return shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}

	r.Items = append(r.Items, TransferRequestItem{
		ID:          uuid.New(),
		RequestID:   r.ID,
		ProductID:   productID,
		Quantity:    quantity,
		Description: description,
		CreatedAt:   time.Now(),
	})
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Approve approves the request and links the order created from it
func (r *TransferRequest) Approve(actorID, orderID uuid.UUID, comment string) error {
	if actorID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Acting user is required")
	}
	if orderID == uuid.Nil {
		return shared.NewDomainError("INVALID_ORDER", "Resulting order is required")
	}
	if r.Status != TransferRequestStatusPending {
		return shared.ErrInvalidState
	}
	if len(r.Items) == 0 {
		return shared.NewDomainError("EMPTY_REQUEST", "Cannot approve a request without items")
	}

	r.Status = TransferRequestStatusApproved
	r.OrderID = &orderID
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.appendStatusEntry(TransferRequestStatusPending, TransferRequestStatusApproved, actorID, comment)
	r.AddDomainEvent(NewTransferRequestResolvedEvent(r, TransferRequestStatusApproved, actorID))

	return nil
}

// Reject rejects the request. Terminal.
func (r *TransferRequest) Reject(actorID uuid.UUID, comment string) error {
	if actorID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Acting user is required")
	}
	if r.Status != TransferRequestStatusPending {
		return shared.ErrInvalidState
	}

	r.Status = TransferRequestStatusRejected
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	r.appendStatusEntry(TransferRequestStatusPending, TransferRequestStatusRejected, actorID, comment)
	r.AddDomainEvent(NewTransferRequestResolvedEvent(r, TransferRequestStatusRejected, actorID))

	return nil
}

func (r *TransferRequest) appendStatusEntry(from, to TransferRequestStatus, actorID uuid.UUID, comment string) {
	r.StatusHistory = append(r.StatusHistory, TransferRequestStatusEntry{
		ID:         uuid.New(),
		RequestID:  r.ID,
		FromStatus: from,
		ToStatus:   to,
		ActorID:    actorID,
		Comment:    comment,
		CreatedAt:  time.Now(),
	})
}
