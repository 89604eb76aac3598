package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	identityapp "github.com/ordena/backend/internal/application/identity"
	"github.com/ordena/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
//
//	@Summary		Log in with email and password
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identityapp.LoginRequest	true	"Credentials"
//	@Success		200		{object}	dto.Response
//	@Failure		401		{object}	dto.Response
//	@Router			/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh godoc
//
//	@Summary		Exchange a refresh token for a new token pair
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identityapp.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	dto.Response
//	@Failure		401		{object}	dto.Response
//	@Router			/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout godoc
//
//	@Summary		Revoke the current access token
//	@Tags			auth
//	@Produce		json
//	@Success		204
//	@Failure		401	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader(middleware.AuthHeaderKey)
	if !strings.HasPrefix(authHeader, middleware.BearerPrefix) {
		h.Unauthorized(c, "Missing bearer token")
		return
	}
	token := strings.TrimPrefix(authHeader, middleware.BearerPrefix)
	if token == "" {
		h.Unauthorized(c, "Missing bearer token")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Me godoc
//
//	@Summary		Get the authenticated user
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	dto.Response
//	@Failure		401	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// ChangePassword godoc
//
//	@Summary		Change the authenticated user's password
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body	identityapp.ChangePasswordRequest	true	"Old and new password"
//	@Success		204
//	@Failure		401	{object}	dto.Response
//	@Security		BearerAuth
//	@Router			/auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
