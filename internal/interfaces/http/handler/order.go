package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/ordena/backend/internal/application/inventory"
	ordersapp "github.com/ordena/backend/internal/application/orders"
	csvimport "github.com/ordena/backend/internal/infrastructure/import"
	"github.com/ordena/backend/internal/interfaces/http/dto"
)

// OrderHandler handles transfer and supplier order endpoints
type OrderHandler struct {
	BaseHandler
	orderService     *ordersapp.OrderService
	ingestionService *inventoryapp.SupplierIngestionService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *ordersapp.OrderService, ingestionService *inventoryapp.SupplierIngestionService) *OrderHandler {
	return &OrderHandler{
		orderService:     orderService,
		ingestionService: ingestionService,
	}
}

// TransitionCommentRequest carries the optional comment on a status change
type TransitionCommentRequest struct {
	Comment string `json:"comment" binding:"max=500"`
}

// Create godoc
//
//	@Summary		Create a warehouse-to-branch transfer order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-Idempotency-Key	header		string									false	"Idempotency key"
//	@Param			request				body		ordersapp.CreateTransferOrderRequest	true	"Order creation request"
//	@Success		201					{object}	dto.Response
//	@Failure		422					{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ordersapp.CreateTransferOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedByID = userID

	order, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID godoc
//
//	@Summary		Get order by ID
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		string	true	"Order ID"	format(uuid)
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// List godoc
//
//	@Summary		List orders
//	@Tags			orders
//	@Produce		json
//	@Param			warehouse_id	query		string	false	"Warehouse ID"	format(uuid)
//	@Param			branch_id		query		string	false	"Branch ID"		format(uuid)
//	@Param			status			query		string	false	"Status filter"	Enums(PENDING, IN_TRANSIT, COMPLETED, REJECTED)
//	@Param			page			query		int		false	"Page number"	default(1)
//	@Param			page_size		query		int		false	"Page size"		default(20)	maximum(100)
//	@Success		200				{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter ordersapp.OrderListFilter
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

	orders, total, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// AddItem godoc
//
//	@Summary		Add an item to a pending order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Order ID"	format(uuid)
//	@Param			request	body		ordersapp.OrderItemInput	true	"Item"
//	@Success		200		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/orders/{id}/items [post]
func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var item ordersapp.OrderItemInput
	if err := c.ShouldBindJSON(&item); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), orderID, item)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// AssignDeliveryPerson godoc
//
//	@Summary		Assign delivery personnel to an order
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string									true	"Order ID"	format(uuid)
//	@Param			request	body		ordersapp.AssignDeliveryPersonRequest	true	"Assignment"
//	@Success		200		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/orders/{id}/delivery-person [put]
func (h *OrderHandler) AssignDeliveryPerson(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	var req ordersapp.AssignDeliveryPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.AssignDeliveryPerson(c.Request.Context(), orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

func (h *OrderHandler) transition(c *gin.Context, apply func(*gin.Context, ordersapp.TransitionRequest)) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req TransitionCommentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	apply(c, ordersapp.TransitionRequest{ActorID: userID, Comment: req.Comment})
}

// Dispatch godoc
//
//	@Summary		Dispatch a pending order
//	@Description	Moves the order to IN_TRANSIT and deducts warehouse stock
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-Idempotency-Key	header		string						false	"Idempotency key"
//	@Param			id					path		string						true	"Order ID"	format(uuid)
//	@Param			request				body		TransitionCommentRequest	false	"Comment"
//	@Success		200					{object}	dto.Response
//	@Failure		422					{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/orders/{id}/dispatch [post]
func (h *OrderHandler) Dispatch(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	h.transition(c, func(c *gin.Context, req ordersapp.TransitionRequest) {
		order, err := h.orderService.Dispatch(c.Request.Context(), orderID, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, order)
	})
}

// Complete godoc
//
//	@Summary		Complete an in-transit order
//	@Description	Moves the order to COMPLETED and credits branch stock
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-Idempotency-Key	header		string						false	"Idempotency key"
//	@Param			id					path		string						true	"Order ID"	format(uuid)
//	@Param			request				body		TransitionCommentRequest	false	"Comment"
//	@Success		200					{object}	dto.Response
//	@Failure		422					{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/orders/{id}/complete [post]
func (h *OrderHandler) Complete(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	h.transition(c, func(c *gin.Context, req ordersapp.TransitionRequest) {
		order, err := h.orderService.Complete(c.Request.Context(), orderID, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, order)
	})
}

// Reject godoc
//
//	@Summary		Reject an order
//	@Description	Rejecting an in-transit order returns the deducted stock to the warehouse
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-Idempotency-Key	header		string						false	"Idempotency key"
//	@Param			id					path		string						true	"Order ID"	format(uuid)
//	@Param			request				body		TransitionCommentRequest	false	"Comment"
//	@Success		200					{object}	dto.Response
//	@Failure		422					{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/orders/{id}/reject [post]
func (h *OrderHandler) Reject(c *gin.Context) {
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	h.transition(c, func(c *gin.Context, req ordersapp.TransitionRequest) {
		order, err := h.orderService.Reject(c.Request.Context(), orderID, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, order)
	})
}

// IngestSupplierDelivery godoc
//
//	@Summary		Ingest a supplier delivery
//	@Description	Registers unknown products, books a completed supplier order, and credits warehouse stock
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			X-Idempotency-Key	header		string									false	"Idempotency key"
//	@Param			request				body		inventoryapp.SupplierIngestionRequest	true	"Delivery manifest"
//	@Success		201					{object}	dto.Response
//	@Failure		422					{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/orders/supplier-ingestions [post]
func (h *OrderHandler) IngestSupplierDelivery(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.SupplierIngestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.UserID = userID

	result, err := h.ingestionService.Ingest(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// IngestSupplierDeliveryCSV godoc
//
//	@Summary		Ingest a supplier delivery from a CSV manifest
//	@Description	Accepts a CSV with internal_code and quantity columns (name and description optional) and books the delivery like the JSON variant
//	@Tags			orders
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file			formData	file	true	"Delivery manifest CSV"
//	@Param			supplier_id		formData	string	true	"Supplier ID"	format(uuid)
//	@Param			warehouse_id	formData	string	true	"Warehouse ID"	format(uuid)
//	@Param			description		formData	string	false	"Order description"
//	@Success		201				{object}	dto.Response
//	@Failure		422				{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/orders/supplier-ingestions/csv [post]
func (h *OrderHandler) IngestSupplierDeliveryCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	supplierID, err := uuid.Parse(c.PostForm("supplier_id"))
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}
	warehouseID, err := uuid.Parse(c.PostForm("warehouse_id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	manifest, err := csvimport.ParseDeliveryManifest(file, 0)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if !manifest.IsValid() {
		details := make([]dto.ValidationDetail, 0, len(manifest.Errors))
		for _, rowErr := range manifest.Errors {
			details = append(details, dto.ValidationDetail{
				Field:   fmt.Sprintf("row %d: %s", rowErr.Row, rowErr.Column),
				Message: rowErr.Message,
			})
		}
		c.JSON(http.StatusUnprocessableEntity, dto.NewValidationErrorResponse(
			"Delivery manifest failed validation", getRequestID(c), details))
		return
	}

	req := inventoryapp.SupplierIngestionRequest{
		SupplierID:  supplierID,
		WarehouseID: warehouseID,
		UserID:      userID,
		Description: c.PostForm("description"),
		Items:       make([]inventoryapp.SupplierIngestionItem, 0, len(manifest.Lines)),
	}
	for _, line := range manifest.Lines {
		req.Items = append(req.Items, inventoryapp.SupplierIngestionItem{
			InternalCode: line.InternalCode,
			Name:         line.Name,
			Quantity:     line.Quantity,
			Description:  line.Description,
		})
	}

	result, err := h.ingestionService.Ingest(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}
