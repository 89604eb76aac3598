package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/ordena/backend/internal/domain/shared"
)

// Repository defines the interface for notification persistence
type Repository interface {
	// Create stores a notification
	Create(ctx context.Context, n *Notification) error

	// CreateBatch stores several notifications at once
	CreateBatch(ctx context.Context, ns []*Notification) error

	// FindByID finds a notification by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByUser finds a user's notifications, newest first.
	// Archived notifications are only included when includeArchived is set.
	FindByUser(ctx context.Context, userID uuid.UUID, includeArchived bool, filter shared.Filter) ([]Notification, error)

	// CountUnreadByUser counts a user's unread, unarchived notifications
	CountUnreadByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save persists read/archived flag changes
	Save(ctx context.Context, n *Notification) error

	// MarkAllRead marks all of a user's notifications as read
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}
