package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ordena/backend/internal/domain/orders"
)

// OrderItemInput is one requested line in an order or transfer request
type OrderItemInput struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Description string          `json:"description"`
}

// CreateTransferOrderRequest creates a warehouse-to-branch order
type CreateTransferOrderRequest struct {
	Description string           `json:"description"`
	WarehouseID uuid.UUID        `json:"warehouse_id" binding:"required"`
	BranchID    uuid.UUID        `json:"branch_id" binding:"required"`
	CreatedByID uuid.UUID        `json:"-"`
	Items       []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// TransitionRequest carries an order or request status change
type TransitionRequest struct {
	ActorID uuid.UUID `json:"-"`
	Comment string    `json:"comment"`
}

// AssignDeliveryPersonRequest assigns delivery personnel to an order
type AssignDeliveryPersonRequest struct {
	DeliveryPersonID uuid.UUID `json:"delivery_person_id" binding:"required"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Description string          `json:"description,omitempty"`
}

// StatusEntryResponse represents one status history row
type StatusEntryResponse struct {
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	ActorID    uuid.UUID `json:"actor_id"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                uuid.UUID             `json:"id"`
	Description       string                `json:"description"`
	Status            string                `json:"status"`
	WarehouseID       uuid.UUID             `json:"warehouse_id"`
	BranchID          *uuid.UUID            `json:"branch_id,omitempty"`
	SupplierID        *uuid.UUID            `json:"supplier_id,omitempty"`
	DeliveryPersonID  *uuid.UUID            `json:"delivery_person_id,omitempty"`
	CreatedByID       uuid.UUID             `json:"created_by_id"`
	TransferRequestID *uuid.UUID            `json:"transfer_request_id,omitempty"`
	Items             []OrderItemResponse   `json:"items"`
	StatusHistory     []StatusEntryResponse `json:"status_history"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	Version           int                   `json:"version"`
}

// OrderListFilter represents filter options for order listings
type OrderListFilter struct {
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	BranchID    *uuid.UUID `form:"branch_id"`
	Status      string     `form:"status" binding:"omitempty,oneof=PENDING IN_TRANSIT COMPLETED REJECTED"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CreateTransferRequestRequest files a branch restock request
type CreateTransferRequestRequest struct {
	Description string           `json:"description"`
	BranchID    uuid.UUID        `json:"branch_id" binding:"required"`
	WarehouseID uuid.UUID        `json:"warehouse_id" binding:"required"`
	CreatedByID uuid.UUID        `json:"-"`
	Items       []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// TransferRequestResponse represents a transfer request in API responses
type TransferRequestResponse struct {
	ID            uuid.UUID             `json:"id"`
	Description   string                `json:"description"`
	Status        string                `json:"status"`
	BranchID      uuid.UUID             `json:"branch_id"`
	WarehouseID   uuid.UUID             `json:"warehouse_id"`
	CreatedByID   uuid.UUID             `json:"created_by_id"`
	OrderID       *uuid.UUID            `json:"order_id,omitempty"`
	Items         []OrderItemResponse   `json:"items"`
	StatusHistory []StatusEntryResponse `json:"status_history"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
	Version       int                   `json:"version"`
}

// TransferRequestListFilter represents filter options for request listings
type TransferRequestListFilter struct {
	BranchID    *uuid.UUID `form:"branch_id"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	Status      string     `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(order *orders.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Description: item.Description,
		}
	}

	history := make([]StatusEntryResponse, len(order.StatusHistory))
	for i, entry := range order.StatusHistory {
		history[i] = StatusEntryResponse{
			FromStatus: entry.FromStatus.String(),
			ToStatus:   entry.ToStatus.String(),
			ActorID:    entry.ActorID,
			Comment:    entry.Comment,
			CreatedAt:  entry.CreatedAt,
		}
	}

	return OrderResponse{
		ID:                order.ID,
		Description:       order.Description,
		Status:            order.Status.String(),
		WarehouseID:       order.WarehouseID,
		BranchID:          order.BranchID,
		SupplierID:        order.SupplierID,
		DeliveryPersonID:  order.DeliveryPersonID,
		CreatedByID:       order.CreatedByID,
		TransferRequestID: order.TransferRequestID,
		Items:             items,
		StatusHistory:     history,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
		Version:           order.Version,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(list []orders.Order) []OrderResponse {
	out := make([]OrderResponse, len(list))
	for i := range list {
		out[i] = ToOrderResponse(&list[i])
	}
	return out
}

// ToTransferRequestResponse converts a domain request to its response form
func ToTransferRequestResponse(request *orders.TransferRequest) TransferRequestResponse {
	items := make([]OrderItemResponse, len(request.Items))
	for i, item := range request.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Description: item.Description,
		}
	}

	history := make([]StatusEntryResponse, len(request.StatusHistory))
	for i, entry := range request.StatusHistory {
		history[i] = StatusEntryResponse{
			FromStatus: entry.FromStatus.String(),
			ToStatus:   entry.ToStatus.String(),
			ActorID:    entry.ActorID,
			Comment:    entry.Comment,
			CreatedAt:  entry.CreatedAt,
		}
	}

	return TransferRequestResponse{
		ID:            request.ID,
		Description:   request.Description,
		Status:        request.Status.String(),
		BranchID:      request.BranchID,
		WarehouseID:   request.WarehouseID,
		CreatedByID:   request.CreatedByID,
		OrderID:       request.OrderID,
		Items:         items,
		StatusHistory: history,
		CreatedAt:     request.CreatedAt,
		UpdatedAt:     request.UpdatedAt,
		Version:       request.Version,
	}
}

// ToTransferRequestResponses converts a slice of requests
func ToTransferRequestResponses(list []orders.TransferRequest) []TransferRequestResponse {
	out := make([]TransferRequestResponse, len(list))
	for i := range list {
		out[i] = ToTransferRequestResponse(&list[i])
	}
	return out
}
