package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/identity"
	"github.com/ordena/backend/internal/domain/notification"
	"github.com/ordena/backend/internal/domain/orders"
	"github.com/ordena/backend/internal/domain/shared"
)

// OrderStatusNotifier tells the people behind an order that its status moved.
// It runs on the event bus after the transition has been persisted: a failure
// here is logged and dropped, never surfaced back into the order flow.
type OrderStatusNotifier struct {
	orderRepo        orders.OrderRepository
	userRepo         identity.UserRepository
	notificationRepo notification.Repository
	logger           *zap.Logger
}

// NewOrderStatusNotifier creates a new OrderStatusNotifier
func NewOrderStatusNotifier(
	orderRepo orders.OrderRepository,
	userRepo identity.UserRepository,
	notificationRepo notification.Repository,
	logger *zap.Logger,
) *OrderStatusNotifier {
	return &OrderStatusNotifier{
		orderRepo:        orderRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderStatusNotifier) EventTypes() []string {
	return []string{orders.EventTypeOrderStatusChanged}
}

// Handle processes an order status change event
func (h *OrderStatusNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*orders.OrderStatusChangedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("event_type", event.EventType()),
		)
		return nil
	}

	recipients, err := h.recipients(ctx, e)
	if err != nil {
		h.logger.Error("failed to resolve recipients for order update",
			zap.String("order_id", e.OrderID.String()),
			zap.Error(err),
		)
		return nil
	}
	if len(recipients) == 0 {
		return nil
	}

	title := "Pedido actualizado"
	body := fmt.Sprintf("Order %s moved from %s to %s",
		e.OrderID, e.FromStatus.String(), e.ToStatus.String())

	notifications := make([]*notification.Notification, 0, len(recipients))
	for _, userID := range recipients {
		n, err := notification.New(userID, notification.KindOrderStatus, title, body)
		if err != nil {
			h.logger.Error("failed to build order update", zap.Error(err))
			continue
		}
		n.AttachOrder(e.OrderID)
		notifications = append(notifications, n)
	}

	if err := h.notificationRepo.CreateBatch(ctx, notifications); err != nil {
		h.logger.Error("failed to store order updates",
			zap.String("order_id", e.OrderID.String()),
			zap.Int("recipients", len(notifications)),
			zap.Error(err),
		)
		return nil
	}

	h.logger.Info("order update sent",
		zap.String("order_id", e.OrderID.String()),
		zap.String("to_status", e.ToStatus.String()),
		zap.Int("recipients", len(notifications)),
	)
	return nil
}

// recipients returns the order creator and the destination branch staff,
// minus the actor who made the change.
func (h *OrderStatusNotifier) recipients(ctx context.Context, e *orders.OrderStatusChangedEvent) ([]uuid.UUID, error) {
	order, err := h.orderRepo.FindByID(ctx, e.OrderID)
	if err != nil {
		return nil, err
	}

	seen := map[uuid.UUID]bool{e.ActorID: true}
	var recipients []uuid.UUID

	if !seen[order.CreatedByID] {
		seen[order.CreatedByID] = true
		recipients = append(recipients, order.CreatedByID)
	}

	if order.BranchID != nil {
		staff, err := h.userRepo.FindByBranch(ctx, *order.BranchID)
		if err != nil {
			return nil, err
		}
		for _, user := range staff {
			if seen[user.ID] {
				continue
			}
			seen[user.ID] = true
			recipients = append(recipients, user.ID)
		}
	}

	return recipients, nil
}
