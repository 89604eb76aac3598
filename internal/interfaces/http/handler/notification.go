package handler

import (
	"github.com/gin-gonic/gin"

	notificationapp "github.com/ordena/backend/internal/application/notification"
)

// NotificationHandler handles per-user notification endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notificationapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// UnreadCountResponse reports the number of unread notifications
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// List godoc
//
//	@Summary		List the authenticated user's notifications
//	@Tags			notifications
//	@Produce		json
//	@Param			include_archived	query		bool	false	"Include archived notifications"
//	@Param			read				query		bool	false	"Filter by read state"
//	@Param			page				query		int		false	"Page number"	default(1)
//	@Param			page_size			query		int		false	"Page size"		default(20)	maximum(100)
//	@Success		200					{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter notificationapp.NotificationListFilter
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

	notifications, err := h.notificationService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notifications)
}

// UnreadCount godoc
//
//	@Summary		Count unread notifications
//	@Tags			notifications
//	@Produce		json
//	@Success		200	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, UnreadCountResponse{Count: count})
}

// MarkRead godoc
//
//	@Summary		Mark one notification as read
//	@Tags			notifications
//	@Produce		json
//	@Param			id	path		string	true	"Notification ID"	format(uuid)
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), userID, notificationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notification)
}

// MarkAllRead godoc
//
//	@Summary		Mark all notifications as read
//	@Tags			notifications
//	@Success		204
//	@Security		BearerAuth
//	@Router			/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Archive godoc
//
//	@Summary		Archive a notification
//	@Tags			notifications
//	@Produce		json
//	@Param			id	path		string	true	"Notification ID"	format(uuid)
//	@Success		200	{object}	dto.Response
//	@Failure		404	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/notifications/{id}/archive [post]
func (h *NotificationHandler) Archive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid notification ID format")
		return
	}

	notification, err := h.notificationService.Archive(c.Request.Context(), userID, notificationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, notification)
}
