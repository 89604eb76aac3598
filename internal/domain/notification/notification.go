package notification

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// Kind represents the category of a notification
type Kind string

const (
	// KindStockCritical signals stock dropping to or below the critical threshold
	KindStockCritical Kind = "stock_critical"
	// KindStockMaximum signals stock reaching the overstock threshold
	KindStockMaximum Kind = "stock_maximum"
	// KindOrderStatus signals an order status change
	KindOrderStatus Kind = "order_status"
)

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// IsValid returns true if the kind is valid
func (k Kind) IsValid() bool {
	switch k {
	case KindStockCritical, KindStockMaximum, KindOrderStatus:
		return true
	}
	return false
}

// Notification is a per-user message about something that happened in the
// system. Users mark them read or archive them; they are never edited.
type Notification struct {
	shared.BaseEntity
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_notification_user"`
	Kind      Kind       `gorm:"type:varchar(30);not null"`
	Title     string     `gorm:"type:varchar(150);not null"`
	Body      string     `gorm:"type:text;not null"`
	ProductID *uuid.UUID `gorm:"type:uuid;index"`
	OrderID   *uuid.UUID `gorm:"type:uuid;index"`
	Read      bool       `gorm:"not null;default:false;index:idx_notification_user"`
	Archived  bool       `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// New creates a notification for one user
func New(userID uuid.UUID, kind Kind, title, body string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Target user is required")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown notification kind")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title is required")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Kind:       kind,
		Title:      title,
		Body:       body,
	}, nil
}

// AttachProduct links the notification to a product
func (n *Notification) AttachProduct(productID uuid.UUID) {
	if productID != uuid.Nil {
		n.ProductID = &productID
	}
}

// AttachOrder links the notification to an order
func (n *Notification) AttachOrder(orderID uuid.UUID) {
	if orderID != uuid.Nil {
		n.OrderID = &orderID
	}
}

// MarkRead marks the notification as read
func (n *Notification) MarkRead() {
	n.Read = true
	n.UpdatedAt = time.Now()
}

// Archive archives the notification; archived implies read
func (n *Notification) Archive() {
	n.Read = true
	n.Archived = true
	n.UpdatedAt = time.Now()
}
