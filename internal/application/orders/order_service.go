package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	inventoryapp "github.com/ordena/backend/internal/application/inventory"
	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/domain/location"
	"github.com/ordena/backend/internal/domain/orders"
	"github.com/ordena/backend/internal/domain/shared"
)

// OrderService handles transfer order business operations. Stock never moves
// here directly; every quantity change goes through the reconciler, which
// keeps the ledger in step inside its own transaction.
type OrderService struct {
	orderRepo      orders.OrderRepository
	warehouseRepo  location.WarehouseRepository
	branchRepo     location.BranchRepository
	reconciler     *inventoryapp.StockReconciler
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo orders.OrderRepository,
	warehouseRepo location.WarehouseRepository,
	branchRepo location.BranchRepository,
	reconciler *inventoryapp.StockReconciler,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		warehouseRepo: warehouseRepo,
		branchRepo:    branchRepo,
		reconciler:    reconciler,
		logger:        logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a pending transfer order from a warehouse to one of its branches
func (s *OrderService) Create(ctx context.Context, req CreateTransferOrderRequest) (*OrderResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	branch, err := s.branchRepo.FindByID(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	if branch.WarehouseID != req.WarehouseID {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch is not supplied by this warehouse")
	}

	order, err := orders.NewTransferOrder(req.Description, req.WarehouseID, req.BranchID, req.CreatedByID)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if err := order.AddItem(item.ProductID, item.Quantity, item.Description); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order with items and status history
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := toOrderFilter(filter)

	var (
		list []orders.Order
		err  error
	)
	switch {
	case filter.Status != "":
		list, err = s.orderRepo.FindByStatus(ctx, orders.OrderStatus(filter.Status), domainFilter)
	case filter.WarehouseID != nil:
		list, err = s.orderRepo.FindByWarehouse(ctx, *filter.WarehouseID, domainFilter)
	case filter.BranchID != nil:
		list, err = s.orderRepo.FindByBranch(ctx, *filter.BranchID, domainFilter)
	default:
		list, err = s.orderRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(list), total, nil
}

// AddItem adds a line to a pending order
func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, item OrderItemInput) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.AddItem(item.ProductID, item.Quantity, item.Description); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// AssignDeliveryPerson assigns delivery personnel to an order
func (s *OrderService) AssignDeliveryPerson(ctx context.Context, orderID uuid.UUID, req AssignDeliveryPersonRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.AssignDeliveryPerson(req.DeliveryPersonID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Dispatch moves a pending transfer order into transit. Every line leaves the
// source warehouse in one stock transaction; if any line lacks stock, nothing
// moves and the order stays pending.
func (s *OrderService) Dispatch(ctx context.Context, orderID uuid.UUID, req TransitionRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Dispatch(req.ActorID, req.Comment); err != nil {
		return nil, err
	}

	cmds := s.stockCommands(order, inventory.NewWarehouseRef(order.WarehouseID), req.ActorID, outbound,
		fmt.Sprintf("Dispatch of order %s", order.ID))
	if _, err := s.reconciler.ReconcileAll(ctx, cmds); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		s.revertStock(ctx, cmds, fmt.Sprintf("Dispatch of order %s reverted", order.ID))
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Complete marks an in-transit order as received. Every line lands at the
// destination branch in one stock transaction.
func (s *OrderService) Complete(ctx context.Context, orderID uuid.UUID, req TransitionRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BranchID == nil {
		return nil, shared.ErrInvalidState
	}

	if err := order.Complete(req.ActorID, req.Comment); err != nil {
		return nil, err
	}

	cmds := s.stockCommands(order, inventory.NewBranchRef(*order.BranchID), req.ActorID, inbound,
		fmt.Sprintf("Receipt of order %s", order.ID))
	if _, err := s.reconciler.ReconcileAll(ctx, cmds); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		s.revertStock(ctx, cmds, fmt.Sprintf("Receipt of order %s reverted", order.ID))
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// Reject rejects a pending order. No stock moves.
func (s *OrderService) Reject(ctx context.Context, orderID uuid.UUID, req TransitionRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Reject(req.ActorID, req.Comment); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

type stockDirection int

const (
	outbound stockDirection = iota
	inbound
)

func (s *OrderService) stockCommands(order *orders.Order, loc inventory.LocationRef, actorID uuid.UUID, dir stockDirection, reason string) []inventoryapp.ReconcileCommand {
	cmds := make([]inventoryapp.ReconcileCommand, len(order.Items))
	for i, item := range order.Items {
		delta := item.Quantity
		if dir == outbound {
			delta = delta.Neg()
		}
		cmds[i] = inventoryapp.ReconcileCommand{
			ProductID:  item.ProductID,
			Location:   loc,
			Delta:      &delta,
			UserID:     actorID,
			Reason:     reason,
			SourceType: inventory.SourceTransfer,
			SourceID:   order.ID.String(),
		}
	}
	return cmds
}

// revertStock issues compensating movements for commands that already landed.
// Corrections to the ledger are always new movements, never deletions.
func (s *OrderService) revertStock(ctx context.Context, cmds []inventoryapp.ReconcileCommand, reason string) {
	inverse := make([]inventoryapp.ReconcileCommand, len(cmds))
	for i, cmd := range cmds {
		delta := cmd.Delta.Neg()
		inverse[i] = cmd
		inverse[i].Delta = &delta
		inverse[i].Reason = reason
	}
	if _, err := s.reconciler.ReconcileAll(ctx, inverse); err != nil {
		s.logger.Error("failed to revert stock after order save failure",
			zap.String("reason", reason),
			zap.Error(err),
		)
	}
}

func (s *OrderService) publishEvents(ctx context.Context, order *orders.Order) {
	events := order.GetDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish order events",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
	}
	order.ClearDomainEvents()
}

func toOrderFilter(filter OrderListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	return f
}
