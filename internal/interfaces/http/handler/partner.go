package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/ordena/backend/internal/application/partner"
)

// SupplierHandler exposes supplier management endpoints.
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
}

func NewSupplierHandler(supplierService *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// Create godoc
//
//	@Summary		Register a supplier
//	@Tags			partners
//	@Accept			json
//	@Produce		json
//	@Param			request	body		partnerapp.CreateSupplierRequest	true	"Supplier data"
//	@Success		201		{object}	dto.Response{data=partnerapp.SupplierResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/partners/suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.supplierService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
//
//	@Summary		Get a supplier by ID
//	@Tags			partners
//	@Produce		json
//	@Param			id	path		string	true	"Supplier ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=partnerapp.SupplierResponse}
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/partners/suppliers/{id} [get]
func (h *SupplierHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	resp, err := h.supplierService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
//
//	@Summary		List suppliers
//	@Tags			partners
//	@Produce		json
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Param			search		query		string	false	"Search by name or contact"
//	@Success		200			{object}	dto.Response{data=[]partnerapp.SupplierResponse}
//	@Security		BearerAuth
//	@Router			/partners/suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	var filter partnerapp.SupplierListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	items, total, err := h.supplierService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update godoc
//
//	@Summary		Update a supplier
//	@Tags			partners
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Supplier ID"	format(uuid)
//	@Param			request	body		partnerapp.UpdateSupplierRequest	true	"Fields to update"
//	@Success		200		{object}	dto.Response{data=partnerapp.SupplierResponse}
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/partners/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req partnerapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.supplierService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// DeliveryPersonHandler exposes delivery personnel management endpoints.
type DeliveryPersonHandler struct {
	BaseHandler
	deliveryService *partnerapp.DeliveryPersonService
}

func NewDeliveryPersonHandler(deliveryService *partnerapp.DeliveryPersonService) *DeliveryPersonHandler {
	return &DeliveryPersonHandler{deliveryService: deliveryService}
}

// Create godoc
//
//	@Summary		Register a delivery person
//	@Tags			partners
//	@Accept			json
//	@Produce		json
//	@Param			request	body		partnerapp.CreateDeliveryPersonRequest	true	"Delivery person data"
//	@Success		201		{object}	dto.Response{data=partnerapp.DeliveryPersonResponse}
//	@Failure		400		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/partners/delivery-persons [post]
func (h *DeliveryPersonHandler) Create(c *gin.Context) {
	var req partnerapp.CreateDeliveryPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.deliveryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
//
//	@Summary		Get a delivery person by ID
//	@Tags			partners
//	@Produce		json
//	@Param			id	path		string	true	"Delivery person ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=partnerapp.DeliveryPersonResponse}
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/partners/delivery-persons/{id} [get]
func (h *DeliveryPersonHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid delivery person ID format")
		return
	}

	resp, err := h.deliveryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
//
//	@Summary		List delivery persons
//	@Tags			partners
//	@Produce		json
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Param			search		query		string	false	"Search by name or contact"
//	@Success		200			{object}	dto.Response{data=[]partnerapp.DeliveryPersonResponse}
//	@Security		BearerAuth
//	@Router			/partners/delivery-persons [get]
func (h *DeliveryPersonHandler) List(c *gin.Context) {
	var filter partnerapp.SupplierListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	items, total, err := h.deliveryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update godoc
//
//	@Summary		Update a delivery person
//	@Tags			partners
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string									true	"Delivery person ID"	format(uuid)
//	@Param			request	body		partnerapp.UpdateDeliveryPersonRequest	true	"Fields to update"
//	@Success		200		{object}	dto.Response{data=partnerapp.DeliveryPersonResponse}
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/partners/delivery-persons/{id} [put]
func (h *DeliveryPersonHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid delivery person ID format")
		return
	}

	var req partnerapp.UpdateDeliveryPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.deliveryService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
//
//	@Summary		Remove a delivery person
//	@Tags			partners
//	@Param			id	path	string	true	"Delivery person ID"	format(uuid)
//	@Success		204
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/partners/delivery-persons/{id} [delete]
func (h *DeliveryPersonHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid delivery person ID format")
		return
	}

	if err := h.deliveryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
