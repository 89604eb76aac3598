package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityapp "github.com/ordena/backend/internal/application/identity"
)

// UserHandler handles user management endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identityapp.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// AssignSiteRequest assigns a user to a warehouse or branch
type AssignSiteRequest struct {
	SiteID uuid.UUID `json:"site_id" binding:"required"`
}

// Create godoc
//
//	@Summary		Create a new user
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identityapp.CreateUserRequest	true	"User creation request"
//	@Success		201		{object}	dto.Response
//	@Failure		409		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// GetByID godoc
//
//	@Summary		Get user by ID
//	@Tags			users
//	@Produce		json
//	@Param			id	path		string	true	"User ID"	format(uuid)
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// List godoc
//
//	@Summary		List users
//	@Tags			users
//	@Produce		json
//	@Param			role		query		string	false	"Role filter"	Enums(admin, warehouse, branch)
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Success		200			{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var filter identityapp.UserListFilter
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

	users, total, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, users, total, filter.Page, filter.PageSize)
}

// AssignWarehouse godoc
//
//	@Summary		Assign a user to a warehouse
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"User ID"	format(uuid)
//	@Param			request	body		AssignSiteRequest	true	"Warehouse assignment"
//	@Success		200		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/users/{id}/warehouse [put]
func (h *UserHandler) AssignWarehouse(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	var req AssignSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.AssignWarehouse(c.Request.Context(), userID, req.SiteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// AssignBranch godoc
//
//	@Summary		Assign a user to a branch
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"User ID"	format(uuid)
//	@Param			request	body		AssignSiteRequest	true	"Branch assignment"
//	@Success		200		{object}	dto.Response
//	@Failure		422		{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/users/{id}/branch [put]
func (h *UserHandler) AssignBranch(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	var req AssignSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.AssignBranch(c.Request.Context(), userID, req.SiteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// Deactivate godoc
//
//	@Summary		Deactivate a user
//	@Tags			users
//	@Produce		json
//	@Param			id	path		string	true	"User ID"	format(uuid)
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid user ID format")
		return
	}

	user, err := h.userService.Deactivate(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
