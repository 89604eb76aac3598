package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/infrastructure/logger"
	"github.com/ordena/backend/internal/infrastructure/persistence"
)

// SystemHandler exposes health and runtime information endpoints.
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	version   string
	startedAt time.Time
}

func NewSystemHandler(db *persistence.Database, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		version:   version,
		startedAt: time.Now(),
	}
}

// Health godoc
//
//	@Summary	Service health check
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	reqLog := logger.GetGinLogger(c)
	if err := h.db.Ping(); err != nil {
		reqLog.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "error",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"database": "ok",
	})
}

// Info godoc
//
//	@Summary	Service version and uptime
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Router		/system/info [get]
func (h *SystemHandler) Info(c *gin.Context) {
	h.Success(c, gin.H{
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
		"time":    time.Now().Format(time.RFC3339),
	})
}

// Ping godoc
//
//	@Summary	Liveness probe
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	dto.Response
//	@Router		/system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{"message": "pong"})
}
