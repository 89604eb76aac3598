package handler

import (
	"github.com/gin-gonic/gin"

	locationapp "github.com/ordena/backend/internal/application/location"
)

// WarehouseHandler exposes warehouse management endpoints.
type WarehouseHandler struct {
	BaseHandler
	warehouseService *locationapp.WarehouseService
}

func NewWarehouseHandler(warehouseService *locationapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

// Create godoc
//
//	@Summary		Create a warehouse
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		locationapp.CreateWarehouseRequest	true	"Warehouse data"
//	@Success		201		{object}	dto.Response{data=locationapp.WarehouseResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/locations/warehouses [post]
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req locationapp.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.warehouseService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
//
//	@Summary		Get a warehouse by ID
//	@Tags			locations
//	@Produce		json
//	@Param			id	path		string	true	"Warehouse ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=locationapp.WarehouseResponse}
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/locations/warehouses/{id} [get]
func (h *WarehouseHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	resp, err := h.warehouseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
//
//	@Summary		List warehouses
//	@Tags			locations
//	@Produce		json
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Page size"
//	@Param			search		query		string	false	"Search by name or address"
//	@Success		200			{object}	dto.Response{data=[]locationapp.WarehouseResponse}
//	@Security		BearerAuth
//	@Router			/locations/warehouses [get]
func (h *WarehouseHandler) List(c *gin.Context) {
	var filter locationapp.SiteListFilter
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

	items, total, err := h.warehouseService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update godoc
//
//	@Summary		Update a warehouse
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string								true	"Warehouse ID"	format(uuid)
//	@Param			request	body		locationapp.UpdateWarehouseRequest	true	"Fields to update"
//	@Success		200		{object}	dto.Response{data=locationapp.WarehouseResponse}
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/locations/warehouses/{id} [put]
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	var req locationapp.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.warehouseService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// BranchHandler exposes branch management endpoints.
type BranchHandler struct {
	BaseHandler
	branchService *locationapp.BranchService
}

func NewBranchHandler(branchService *locationapp.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Create godoc
//
//	@Summary		Create a branch
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		locationapp.CreateBranchRequest	true	"Branch data"
//	@Success		201		{object}	dto.Response{data=locationapp.BranchResponse}
//	@Failure		400		{object}	dto.Response
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/locations/branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	var req locationapp.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.branchService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
//
//	@Summary		Get a branch by ID
//	@Tags			locations
//	@Produce		json
//	@Param			id	path		string	true	"Branch ID"	format(uuid)
//	@Success		200	{object}	dto.Response{data=locationapp.BranchResponse}
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/locations/branches/{id} [get]
func (h *BranchHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	resp, err := h.branchService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
//
//	@Summary		List branches
//	@Tags			locations
//	@Produce		json
//	@Param			page			query		int		false	"Page number"
//	@Param			page_size		query		int		false	"Page size"
//	@Param			search			query		string	false	"Search by name or address"
//	@Param			warehouse_id	query		string	false	"Filter by supplying warehouse"
//	@Success		200				{object}	dto.Response{data=[]locationapp.BranchResponse}
//	@Security		BearerAuth
//	@Router			/locations/branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	var filter locationapp.SiteListFilter
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

	items, total, err := h.branchService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update godoc
//
//	@Summary		Update a branch
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Branch ID"	format(uuid)
//	@Param			request	body		locationapp.UpdateBranchRequest	true	"Fields to update"
//	@Success		200		{object}	dto.Response{data=locationapp.BranchResponse}
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/locations/branches/{id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	var req locationapp.UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.branchService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ReassignWarehouse godoc
//
//	@Summary		Reassign a branch to a different supplying warehouse
//	@Tags			locations
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Branch ID"	format(uuid)
//	@Param			request	body		AssignSiteRequest	true	"Target warehouse"
//	@Success		200		{object}	dto.Response{data=locationapp.BranchResponse}
//	@Failure		404		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/locations/branches/{id}/warehouse [put]
func (h *BranchHandler) ReassignWarehouse(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	var req AssignSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.branchService.ReassignWarehouse(c.Request.Context(), id, req.SiteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
