package handler

import (
	"github.com/gin-gonic/gin"

	ordersapp "github.com/ordena/backend/internal/application/orders"
)

// TransferRequestHandler handles branch restock request endpoints
type TransferRequestHandler struct {
	BaseHandler
	requestService *ordersapp.TransferRequestService
}

// NewTransferRequestHandler creates a new TransferRequestHandler
func NewTransferRequestHandler(requestService *ordersapp.TransferRequestService) *TransferRequestHandler {
	return &TransferRequestHandler{requestService: requestService}
}

// Create godoc
//
//	@Summary		File a branch restock request
//	@Tags			transfer-requests
//	@Accept			json
//	@Produce		json
//	@Param			X-Idempotency-Key	header		string									false	"Idempotency key"
//	@Param			request				body		ordersapp.CreateTransferRequestRequest	true	"Restock request"
//	@Success		201					{object}	dto.Response
//	@Failure		422					{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/transfer-requests [post]
func (h *TransferRequestHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ordersapp.CreateTransferRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedByID = userID

	request, err := h.requestService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// GetByID godoc
//
//	@Summary		Get transfer request by ID
//	@Tags			transfer-requests
//	@Produce		json
//	@Param			id	path		string	true	"Transfer request ID"	format(uuid)
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/transfer-requests/{id} [get]
func (h *TransferRequestHandler) GetByID(c *gin.Context) {
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transfer request ID format")
		return
	}

	request, err := h.requestService.GetByID(c.Request.Context(), requestID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// List godoc
//
//	@Summary		List transfer requests
//	@Tags			transfer-requests
//	@Produce		json
//	@Param			branch_id		query		string	false	"Branch ID"		format(uuid)
//	@Param			warehouse_id	query		string	false	"Warehouse ID"	format(uuid)
//	@Param			status			query		string	false	"Status filter"	Enums(PENDING, APPROVED, REJECTED)
//	@Param			page			query		int		false	"Page number"	default(1)
//	@Param			page_size		query		int		false	"Page size"		default(20)	maximum(100)
//	@Success		200				{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/transfer-requests [get]
func (h *TransferRequestHandler) List(c *gin.Context) {
	var filter ordersapp.TransferRequestListFilter
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

	requests, total, err := h.requestService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, requests, total, filter.Page, filter.PageSize)
}

func (h *TransferRequestHandler) transition(c *gin.Context, apply func(*gin.Context, ordersapp.TransitionRequest)) {
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

// Approve godoc
//
//	@Summary		Approve a pending transfer request
//	@Description	Approval books the corresponding transfer order against the warehouse
//	@Tags			transfer-requests
//	@Accept			json
//	@Produce		json
//	@Param			X-Idempotency-Key	header		string						false	"Idempotency key"
//	@Param			id					path		string						true	"Transfer request ID"	format(uuid)
//	@Param			request				body		TransitionCommentRequest	false	"Comment"
//	@Success		200					{object}	dto.Response
//	@Failure		422					{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/transfer-requests/{id}/approve [post]
func (h *TransferRequestHandler) Approve(c *gin.Context) {
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transfer request ID format")
		return
	}

	h.transition(c, func(c *gin.Context, req ordersapp.TransitionRequest) {
		request, err := h.requestService.Approve(c.Request.Context(), requestID, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, request)
	})
}

// Reject godoc
//
//	@Summary		Reject a pending transfer request
//	@Tags			transfer-requests
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Transfer request ID"	format(uuid)
//	@Param			request	body		TransitionCommentRequest	false	"Comment"
//	@Success		200		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/transfer-requests/{id}/reject [post]
func (h *TransferRequestHandler) Reject(c *gin.Context) {
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transfer request ID format")
		return
	}

	h.transition(c, func(c *gin.Context, req ordersapp.TransitionRequest) {
		request, err := h.requestService.Reject(c.Request.Context(), requestID, req)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, request)
	})
}
