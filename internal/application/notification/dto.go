package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/notification"
)

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Kind      string     `json:"kind"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	Read      bool       `json:"read"`
	Archived  bool       `json:"archived"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationListFilter represents filters for listing notifications
type NotificationListFilter struct {
	IncludeArchived bool `form:"include_archived"`
	Page            int  `form:"page" binding:"omitempty,min=1"`
	PageSize        int  `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToNotificationResponse converts a notification entity to a response DTO
func ToNotificationResponse(n *notification.Notification) *NotificationResponse {
	return &NotificationResponse{
		ID:        n.ID,
		Kind:      n.Kind.String(),
		Title:     n.Title,
		Body:      n.Body,
		ProductID: n.ProductID,
		OrderID:   n.OrderID,
		Read:      n.Read,
		Archived:  n.Archived,
		CreatedAt: n.CreatedAt,
	}
}

// ToNotificationResponses converts a slice of notifications to response DTOs
func ToNotificationResponses(ns []notification.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(ns))
	for i := range ns {
		responses[i] = *ToNotificationResponse(&ns[i])
	}
	return responses
}
