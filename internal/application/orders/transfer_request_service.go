package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/location"
	"github.com/ordena/backend/internal/domain/orders"
	"github.com/ordena/backend/internal/domain/shared"
)

// TransferRequestService handles branch restock requests. A request carries
// no stock itself: approval creates a pending transfer order holding the
// requested lines, and that order moves the stock through its own lifecycle.
type TransferRequestService struct {
	requestRepo    orders.TransferRequestRepository
	orderRepo      orders.OrderRepository
	branchRepo     location.BranchRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewTransferRequestService creates a new TransferRequestService
func NewTransferRequestService(
	requestRepo orders.TransferRequestRepository,
	orderRepo orders.OrderRepository,
	branchRepo location.BranchRepository,
	logger *zap.Logger,
) *TransferRequestService {
	return &TransferRequestService{
		requestRepo: requestRepo,
		orderRepo:   orderRepo,
		branchRepo:  branchRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TransferRequestService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create files a pending restock request from a branch to its warehouse
func (s *TransferRequestService) Create(ctx context.Context, req CreateTransferRequestRequest) (*TransferRequestResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, req.BranchID)
	if err != nil {
		return nil, err
	}
	if branch.WarehouseID != req.WarehouseID {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Branch is not supplied by this warehouse")
	}

	request, err := orders.NewTransferRequest(req.Description, req.BranchID, req.WarehouseID, req.CreatedByID)
	if err != nil {
		return nil, err
	}
	for _, item := range req.Items {
		if err := request.AddItem(item.ProductID, item.Quantity, item.Description); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, request)

	response := ToTransferRequestResponse(request)
	return &response, nil
}

// GetByID retrieves a request with items and status history
func (s *TransferRequestService) GetByID(ctx context.Context, requestID uuid.UUID) (*TransferRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	response := ToTransferRequestResponse(request)
	return &response, nil
}

// List retrieves requests with filtering and pagination
func (s *TransferRequestService) List(ctx context.Context, filter TransferRequestListFilter) ([]TransferRequestResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var (
		list []orders.TransferRequest
		err  error
	)
	switch {
	case filter.Status != "":
		list, err = s.requestRepo.FindByStatus(ctx, orders.TransferRequestStatus(filter.Status), domainFilter)
	case filter.BranchID != nil:
		list, err = s.requestRepo.FindByBranch(ctx, *filter.BranchID, domainFilter)
	case filter.WarehouseID != nil:
		list, err = s.requestRepo.FindByWarehouse(ctx, *filter.WarehouseID, domainFilter)
	default:
		list, err = s.requestRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.requestRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToTransferRequestResponses(list), total, nil
}

// Approve approves a pending request and creates the transfer order carrying
// its lines. The order starts pending; dispatching it is a separate step.
func (s *TransferRequestService) Approve(ctx context.Context, requestID uuid.UUID, req TransitionRequest) (*TransferRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	description := request.Description
	if description == "" {
		description = fmt.Sprintf("Transfer request %s", request.ID)
	}
	order, err := orders.NewTransferOrder(description, request.WarehouseID, request.BranchID, req.ActorID)
	if err != nil {
		return nil, err
	}
	order.TransferRequestID = &request.ID
	for _, item := range request.Items {
		if err := order.AddItem(item.ProductID, item.Quantity, item.Description); err != nil {
			return nil, err
		}
	}

	if err := request.Approve(req.ActorID, order.ID, req.Comment); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	if err := s.requestRepo.SaveWithLock(ctx, request); err != nil {
		return nil, err
	}
	s.publishOrderEvents(ctx, order)
	s.publishEvents(ctx, request)

	response := ToTransferRequestResponse(request)
	return &response, nil
}

// Reject rejects a pending request. Terminal, no order is created.
func (s *TransferRequestService) Reject(ctx context.Context, requestID uuid.UUID, req TransitionRequest) (*TransferRequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := request.Reject(req.ActorID, req.Comment); err != nil {
		return nil, err
	}
	if err := s.requestRepo.SaveWithLock(ctx, request); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, request)

	response := ToTransferRequestResponse(request)
	return &response, nil
}

func (s *TransferRequestService) publishEvents(ctx context.Context, request *orders.TransferRequest) {
	events := request.GetDomainEvents()
	if s.eventPublisher != nil && len(events) > 0 {
		if err := s.eventPublisher.Publish(ctx, events...); err != nil {
			s.logger.Error("failed to publish transfer request events",
				zap.String("request_id", request.ID.String()),
				zap.Error(err),
			)
		}
	}
	request.ClearDomainEvents()
}

func (s *TransferRequestService) publishOrderEvents(ctx context.Context, order *orders.Order) {
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
