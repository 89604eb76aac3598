package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/catalog"
	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/domain/orders"
	"github.com/ordena/backend/internal/domain/partner"
	"github.com/ordena/backend/internal/domain/shared"
)

// SupplierIngestionRequest carries one supplier delivery document
type SupplierIngestionRequest struct {
	SupplierID  uuid.UUID               `json:"supplier_id" binding:"required"`
	WarehouseID uuid.UUID               `json:"warehouse_id" binding:"required"`
	UserID      uuid.UUID               `json:"-"`
	Description string                  `json:"description"`
	Items       []SupplierIngestionItem `json:"items" binding:"required,min=1,dive"`
}

// SupplierIngestionItem is one delivered product line
type SupplierIngestionItem struct {
	InternalCode string          `json:"internal_code" binding:"required"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	Description  string          `json:"description"`
}

// SupplierIngestionResult reports what the ingestion produced
type SupplierIngestionResult struct {
	OrderID         uuid.UUID             `json:"order_id"`
	CreatedProducts []uuid.UUID           `json:"created_products,omitempty"`
	Records         []StockRecordResponse `json:"records"`
}

// SupplierIngestionService ingests supplier deliveries: it registers unknown
// products, books a completed supplier order, and feeds every line through
// the reconciler so the warehouse stock and the movement ledger stay in step.
type SupplierIngestionService struct {
	productRepo    catalog.ProductRepository
	supplierRepo   partner.SupplierRepository
	orderRepo      orders.OrderRepository
	reconciler     *StockReconciler
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSupplierIngestionService creates a new SupplierIngestionService
func NewSupplierIngestionService(
	productRepo catalog.ProductRepository,
	supplierRepo partner.SupplierRepository,
	orderRepo orders.OrderRepository,
	reconciler *StockReconciler,
	logger *zap.Logger,
) *SupplierIngestionService {
	return &SupplierIngestionService{
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		orderRepo:    orderRepo,
		reconciler:   reconciler,
		logger:       logger,
	}
}

// SetEventPublisher sets the publisher for order events
func (s *SupplierIngestionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Ingest processes one supplier delivery document.
// Supplier orders arrive already fulfilled, so the order is completed on
// creation and every line lands as an inbound movement at the warehouse.
func (s *SupplierIngestionService) Ingest(ctx context.Context, req SupplierIngestionRequest) (*SupplierIngestionResult, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "A delivery needs at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Delivered quantities must be positive")
		}
	}
	if _, err := s.supplierRepo.FindByID(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	result := &SupplierIngestionResult{}

	// Resolve or register every product before touching stock.
	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		product, err := s.resolveProduct(ctx, item, result)
		if err != nil {
			return nil, err
		}
		productIDs[i] = product.ID
	}

	description := req.Description
	if description == "" {
		description = "Supplier delivery"
	}
	order, err := orders.NewSupplierOrder(description, req.WarehouseID, req.SupplierID, req.UserID)
	if err != nil {
		return nil, err
	}
	for i, item := range req.Items {
		if err := order.AddItem(productIDs[i], item.Quantity, item.Description); err != nil {
			return nil, err
		}
	}
	if err := order.CompleteIngestion(req.UserID, "Goods received from supplier"); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishOrderEvents(ctx, order)
	result.OrderID = order.ID

	location := inventory.NewWarehouseRef(req.WarehouseID)
	for i, item := range req.Items {
		delta := item.Quantity
		reconciled, err := s.reconciler.Reconcile(ctx, ReconcileCommand{
			ProductID:  productIDs[i],
			Location:   location,
			Delta:      &delta,
			UserID:     req.UserID,
			Reason:     fmt.Sprintf("Supplier delivery %s", order.ID),
			SourceType: inventory.SourceSupplierIngestion,
			SourceID:   order.ID.String(),
		})
		if err != nil {
			return nil, err
		}
		result.Records = append(result.Records, reconciled.Record)
	}

	return result, nil
}

func (s *SupplierIngestionService) resolveProduct(ctx context.Context, item SupplierIngestionItem, result *SupplierIngestionResult) (*catalog.Product, error) {
	product, err := s.productRepo.FindActiveByInternalCode(ctx, item.InternalCode)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	name := item.Name
	if name == "" {
		name = item.InternalCode
	}
	product, err = catalog.NewProduct(item.InternalCode, name)
	if err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("registered product from supplier delivery",
		zap.String("product_id", product.ID.String()),
		zap.String("internal_code", product.InternalCode),
	)
	result.CreatedProducts = append(result.CreatedProducts, product.ID)
	return product, nil
}

func (s *SupplierIngestionService) publishOrderEvents(ctx context.Context, order *orders.Order) {
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
