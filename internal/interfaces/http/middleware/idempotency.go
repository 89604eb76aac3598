package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/shared"
	"github.com/ordena/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader carries the client-chosen request key
const IdempotencyKeyHeader = "X-Idempotency-Key"

// maxIdempotencyKeyLength bounds header size to keep store keys sane
const maxIdempotencyKeyLength = 128

// Idempotency returns a middleware that rejects replays of mutating
// requests. Clients opt in by sending an X-Idempotency-Key header; the
// first request reserves the key, replays within the TTL get a 409.
// Requests without the header pass through untouched.
func Idempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled || store == nil {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest,
					"Idempotency key too long", GetRequestID(c)))
			return
		}

		reserved, err := store.Reserve(c.Request.Context(), key, cfg.TTL)
		if err != nil {
			// Store failures fail open; a lost duplicate beats a lost request
			if log != nil {
				log.Warn("Idempotency reservation failed",
					zap.String("key", key),
					zap.Error(err))
			}
			c.Next()
			return
		}

		if !reserved {
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeDuplicateRequest,
					"Request with this idempotency key was already processed", GetRequestID(c)))
			return
		}

		c.Next()
	}
}
