package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/identity"
	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/domain/notification"
	"github.com/ordena/backend/internal/domain/shared"
)

// ThresholdNotifier turns threshold-crossing events into notifications for
// the users working at the affected location. It runs on the event bus after
// the reconciliation transaction has committed: a failure here is logged and
// dropped, never surfaced back into the stock change.
type ThresholdNotifier struct {
	userRepo         identity.UserRepository
	notificationRepo notification.Repository
	logger           *zap.Logger
}

// NewThresholdNotifier creates a new ThresholdNotifier
func NewThresholdNotifier(userRepo identity.UserRepository, notificationRepo notification.Repository, logger *zap.Logger) *ThresholdNotifier {
	return &ThresholdNotifier{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ThresholdNotifier) EventTypes() []string {
	return []string{inventory.EventTypeStockCritical, inventory.EventTypeStockMaxReached}
}

// Handle processes a threshold-crossing event
func (h *ThresholdNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *inventory.StockCriticalEvent:
		h.notify(ctx, e.Location, e.ProductID,
			notification.KindStockCritical,
			"Stock crítico",
			fmt.Sprintf("Stock dropped from %s to %s, at or below the minimum of %s",
				e.QuantityBefore.String(), e.QuantityAfter.String(), e.MinQuantity.String()))
	case *inventory.StockMaxReachedEvent:
		h.notify(ctx, e.Location, e.ProductID,
			notification.KindStockMaximum,
			"Sobre stock",
			fmt.Sprintf("Stock rose from %s to %s, at or above the maximum of %s",
				e.QuantityBefore.String(), e.QuantityAfter.String(), e.MaxQuantity.String()))
	default:
		h.logger.Error("unexpected event type",
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}

func (h *ThresholdNotifier) notify(ctx context.Context, location inventory.LocationRef, productID uuid.UUID, kind notification.Kind, title, body string) {
	users, err := h.usersForLocation(ctx, location)
	if err != nil {
		h.logger.Error("failed to resolve users for stock alert",
			zap.String("location", location.String()),
			zap.Error(err),
		)
		return
	}
	if len(users) == 0 {
		h.logger.Warn("no recipients for stock alert",
			zap.String("location", location.String()),
			zap.String("product_id", productID.String()),
		)
		return
	}

	notifications := make([]*notification.Notification, 0, len(users))
	for _, user := range users {
		n, err := notification.New(user.ID, kind, title, body)
		if err != nil {
			h.logger.Error("failed to build stock alert", zap.Error(err))
			continue
		}
		n.AttachProduct(productID)
		notifications = append(notifications, n)
	}

	if err := h.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		h.logger.Error("failed to store stock alerts",
			zap.String("location", location.String()),
			zap.String("product_id", productID.String()),
			zap.Int("recipients", len(notifications)),
			zap.Error(err),
		)
		return
	}

	h.logger.Info("stock alert sent",
		zap.String("kind", kind.String()),
		zap.String("location", location.String()),
		zap.String("product_id", productID.String()),
		zap.Int("recipients", len(notifications)),
	)
}

// usersForLocation returns the staff of the location; admins are the
// fallback when a location has no assigned users.
func (h *ThresholdNotifier) usersForLocation(ctx context.Context, location inventory.LocationRef) ([]identity.User, error) {
	var (
		users []identity.User
		err   error
	)
	if location.IsWarehouse() {
		users, err = h.userRepo.FindByWarehouse(ctx, location.ID)
	} else {
		users, err = h.userRepo.FindByBranch(ctx, location.ID)
	}
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return h.userRepo.FindByRole(ctx, identity.RoleAdmin)
	}
	return users, nil
}
