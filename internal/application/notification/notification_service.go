package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/notification"
	"github.com/ordena/backend/internal/domain/shared"
)

// NotificationService handles a user's notification inbox. Notifications are
// created by event handlers; this service only lists them and flips their
// read/archived flags.
type NotificationService struct {
	repo   notification.Repository
	logger *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo notification.Repository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		logger: logger,
	}
}

// List returns a user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, filter NotificationListFilter) ([]NotificationResponse, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.OrderBy = "created_at"
	domainFilter.OrderDir = "desc"

	notifications, err := s.repo.FindByUser(ctx, userID, filter.IncludeArchived, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToNotificationResponses(notifications), nil
}

// UnreadCount returns the number of unread, unarchived notifications
func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnreadByUser(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.owned(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}

	n.MarkRead()
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	return ToNotificationResponse(n), nil
}

// MarkAllRead marks all of the user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("notifications marked read", zap.String("user_id", userID.String()))
	return nil
}

// Archive archives one of the user's notifications
func (s *NotificationService) Archive(ctx context.Context, userID, notificationID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.owned(ctx, userID, notificationID)
	if err != nil {
		return nil, err
	}

	n.Archive()
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	return ToNotificationResponse(n), nil
}

// owned loads a notification and checks it belongs to the user. Somebody
// else's notification looks like a missing one.
func (s *NotificationService) owned(ctx context.Context, userID, notificationID uuid.UUID) (*notification.Notification, error) {
	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return n, nil
}
