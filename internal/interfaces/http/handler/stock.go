package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/ordena/backend/internal/application/inventory"
	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/interfaces/http/middleware"
)

// StockHandler handles stock record and movement endpoints
type StockHandler struct {
	BaseHandler
	stockService *inventoryapp.StockService
	reconciler   *inventoryapp.StockReconciler
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(stockService *inventoryapp.StockService, reconciler *inventoryapp.StockReconciler) *StockHandler {
	return &StockHandler{
		stockService: stockService,
		reconciler:   reconciler,
	}
}

// stockLocationQuery identifies one (product, location) stock record
type stockLocationQuery struct {
	ProductID    uuid.UUID `form:"product_id" binding:"required"`
	LocationKind string    `form:"location_kind" binding:"required,oneof=warehouse branch"`
	LocationID   uuid.UUID `form:"location_id" binding:"required"`
}

func (q stockLocationQuery) locationRef() inventory.LocationRef {
	return inventory.LocationRef{Kind: inventory.LocationKind(q.LocationKind), ID: q.LocationID}
}

// EnsureRecordRequest creates a zero-quantity stock record if none exists
type EnsureRecordRequest struct {
	ProductID uuid.UUID                `json:"product_id" binding:"required"`
	Location  inventoryapp.LocationDTO `json:"location" binding:"required"`
}

// AdjustStockRequest applies one stock adjustment through the reconciler.
// Exactly one of delta and target_quantity must be present.
type AdjustStockRequest struct {
	ProductID      uuid.UUID                `json:"product_id" binding:"required"`
	Location       inventoryapp.LocationDTO `json:"location" binding:"required"`
	Delta          *decimal.Decimal         `json:"delta"`
	TargetQuantity *decimal.Decimal         `json:"target_quantity"`
	Reason         string                   `json:"reason" binding:"required,max=200"`
}

// BatchAdjustStockRequest applies several adjustments in one transaction
type BatchAdjustStockRequest struct {
	Adjustments []AdjustStockRequest `json:"adjustments" binding:"required,min=1,dive"`
}

// AssignSupplierRequest binds a supplier to a stock record
type AssignSupplierRequest struct {
	ProductID  uuid.UUID                `json:"product_id" binding:"required"`
	Location   inventoryapp.LocationDTO `json:"location" binding:"required"`
	SupplierID uuid.UUID                `json:"supplier_id" binding:"required"`
}

// AvailabilityResponse reports whether a quantity can be served
type AvailabilityResponse struct {
	Available bool            `json:"available"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// TotalQuantityResponse aggregates a product's stock across locations
type TotalQuantityResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Total     decimal.Decimal `json:"total"`
}

func (h *StockHandler) reconcileCommand(c *gin.Context, req AdjustStockRequest, userID uuid.UUID) inventoryapp.ReconcileCommand {
	return inventoryapp.ReconcileCommand{
		ProductID:      req.ProductID,
		Location:       req.Location.ToLocationRef(),
		Delta:          req.Delta,
		TargetQuantity: req.TargetQuantity,
		UserID:         userID,
		Reason:         req.Reason,
		SourceType:     inventory.SourceManualAdjustment,
		SourceID:       c.GetHeader(middleware.IdempotencyKeyHeader),
	}
}

// GetRecord godoc
//
//	@Summary		Get one stock record
//	@Tags			inventory
//	@Produce		json
//	@Param			product_id		query		string	true	"Product ID"	format(uuid)
//	@Param			location_kind	query		string	true	"Location kind"	Enums(warehouse, branch)
//	@Param			location_id		query		string	true	"Location ID"	format(uuid)
//	@Success		200				{object}	dto.Response
//	@Failure		404				{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/inventory/stock/record [get]
func (h *StockHandler) GetRecord(c *gin.Context) {
	var query stockLocationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.stockService.GetRecord(c.Request.Context(), query.ProductID, query.locationRef())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// EnsureRecord godoc
//
//	@Summary		Create an empty stock record if none exists
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		EnsureRecordRequest	true	"Record identity"
//	@Success		200		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/inventory/stock/record [post]
func (h *StockHandler) EnsureRecord(c *gin.Context) {
	var req EnsureRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.stockService.GetOrCreateRecord(c.Request.Context(), req.ProductID, req.Location.ToLocationRef())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// List godoc
//
//	@Summary		List stock records
//	@Tags			inventory
//	@Produce		json
//	@Param			product_id		query		string	false	"Product ID"	format(uuid)
//	@Param			location_kind	query		string	false	"Location kind"	Enums(warehouse, branch)
//	@Param			location_id		query		string	false	"Location ID"	format(uuid)
//	@Param			below_minimum	query		bool	false	"Only records at or below their minimum"
//	@Param			page			query		int		false	"Page number"	default(1)
//	@Param			page_size		query		int		false	"Page size"		default(20)	maximum(100)
//	@Success		200				{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/inventory/stock [get]
func (h *StockHandler) List(c *gin.Context) {
	var filter inventoryapp.StockListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	records, total, err := h.stockService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, records, total, filter.Page, filter.PageSize)
}

// SetThresholds godoc
//
//	@Summary		Set min/max alert thresholds on a stock record
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		inventoryapp.SetThresholdsRequest	true	"Thresholds"
//	@Success		200		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/inventory/stock/thresholds [put]
func (h *StockHandler) SetThresholds(c *gin.Context) {
	var req inventoryapp.SetThresholdsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.stockService.SetThresholds(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// AssignSupplier godoc
//
//	@Summary		Assign a preferred supplier to a stock record
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AssignSupplierRequest	true	"Supplier assignment"
//	@Success		200		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/inventory/stock/supplier [put]
func (h *StockHandler) AssignSupplier(c *gin.Context) {
	var req AssignSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	record, err := h.stockService.AssignSupplier(c.Request.Context(), req.ProductID, req.Location.ToLocationRef(), req.SupplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// Adjust godoc
//
//	@Summary		Apply a stock adjustment
//	@Description	Applies a relative delta or reconciles to a target quantity, writing a ledger movement
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			X-Idempotency-Key	header		string				false	"Idempotency key"
//	@Param			request				body		AdjustStockRequest	true	"Adjustment"
//	@Success		200					{object}	dto.Response
//	@Failure		409					{object}	dto.Response
//	@Failure		422					{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/inventory/adjustments [post]
func (h *StockHandler) Adjust(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.reconciler.Reconcile(c.Request.Context(), h.reconcileCommand(c, req, userID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// AdjustBatch godoc
//
//	@Summary		Apply several stock adjustments atomically
//	@Tags			inventory
//	@Accept			json
//	@Produce		json
//	@Param			X-Idempotency-Key	header		string					false	"Idempotency key"
//	@Param			request				body		BatchAdjustStockRequest	true	"Adjustments"
//	@Success		200					{object}	dto.Response
//	@Failure		409					{object}	dto.Response
//	@Failure		422					{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/inventory/adjustments/batch [post]
func (h *StockHandler) AdjustBatch(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req BatchAdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cmds := make([]inventoryapp.ReconcileCommand, len(req.Adjustments))
	for i, adj := range req.Adjustments {
		cmds[i] = h.reconcileCommand(c, adj, userID)
	}

	results, err := h.reconciler.ReconcileAll(c.Request.Context(), cmds)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, results)
}

// Movements godoc
//
//	@Summary		Read the movement ledger
//	@Description	Returns movements for one stock record, or for a product across locations when no location is given
//	@Tags			inventory
//	@Produce		json
//	@Param			product_id		query		string	true	"Product ID"	format(uuid)
//	@Param			location_kind	query		string	false	"Location kind"	Enums(warehouse, branch)
//	@Param			location_id		query		string	false	"Location ID"	format(uuid)
//	@Param			source_type		query		string	false	"Movement source filter"
//	@Param			from			query		string	false	"Occurred-at lower bound (RFC 3339)"
//	@Param			to				query		string	false	"Occurred-at upper bound (RFC 3339)"
//	@Success		200				{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/inventory/movements [get]
func (h *StockHandler) Movements(c *gin.Context) {
	var query struct {
		ProductID    uuid.UUID  `form:"product_id" binding:"required"`
		LocationKind string     `form:"location_kind" binding:"omitempty,oneof=warehouse branch"`
		LocationID   *uuid.UUID `form:"location_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var (
		movements []inventoryapp.MovementResponse
		err       error
	)
	if query.LocationKind != "" && query.LocationID != nil {
		location := inventory.LocationRef{Kind: inventory.LocationKind(query.LocationKind), ID: *query.LocationID}
		movements, err = h.stockService.MovementHistory(c.Request.Context(), query.ProductID, location, filter)
	} else {
		movements, err = h.stockService.MovementHistoryByProduct(c.Request.Context(), query.ProductID, filter)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// Availability godoc
//
//	@Summary		Check whether a quantity is available at a location
//	@Tags			inventory
//	@Produce		json
//	@Param			product_id		query		string	true	"Product ID"	format(uuid)
//	@Param			location_kind	query		string	true	"Location kind"	Enums(warehouse, branch)
//	@Param			location_id		query		string	true	"Location ID"	format(uuid)
//	@Param			quantity		query		string	true	"Requested quantity"
//	@Success		200				{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/inventory/availability [get]
func (h *StockHandler) Availability(c *gin.Context) {
	var query stockLocationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quantity, err := decimal.NewFromString(c.Query("quantity"))
	if err != nil {
		h.BadRequest(c, "Invalid quantity")
		return
	}

	available, onHand, err := h.stockService.CheckAvailability(c.Request.Context(), query.ProductID, query.locationRef(), quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, AvailabilityResponse{Available: available, Quantity: onHand})
}

// TotalQuantity godoc
//
//	@Summary		Total on-hand quantity of a product across all locations
//	@Tags			inventory
//	@Produce		json
//	@Param			id	path		string	true	"Product ID"	format(uuid)
//	@Success		200	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/inventory/products/{id}/quantity [get]
func (h *StockHandler) TotalQuantity(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	total, err := h.stockService.TotalQuantityByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TotalQuantityResponse{ProductID: productID, Total: total})
}
