package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const identityKey = "identity"

// requestLogger tags every request with a request id and logs it once
// after the handler chain finishes.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(common.RequestIDHeaderName)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(common.RequestIDHeaderName, requestID)

		c.Next()

		args := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			h.logger.Error(c.Request.Context(), "request", args...)
			return
		}
		h.logger.Info(c.Request.Context(), "request", args...)
	}
}

func isAuthError(err error) bool {
	return errors.Is(err, common.ErrInvalidToken) ||
		errors.Is(err, common.ErrTokenExpired) ||
		errors.Is(err, common.ErrorUnauthorized)
}

// authenticate rejects the request with 401 unless x-auth carries a
// valid token.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := h.tokens.Verify(c.Request.Context(), c.GetHeader(common.AuthHeaderName))
		if err != nil {
			if isAuthError(err) {
				h.logger.Debug(c.Request.Context(), "token rejected", "error", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{})
				return
			}
			h.logger.Error(c.Request.Context(), "token verification", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// optionalAuth attaches an identity when a valid token is presented and
// otherwise lets the request through. Rejected tokens are ignored; store
// failures are logged at Warn.
func (h *Handler) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader(common.AuthHeaderName); token != "" {
			id, err := h.tokens.Verify(c.Request.Context(), token)
			switch {
			case err == nil:
				c.Set(identityKey, id)
			case isAuthError(err):
				h.logger.Debug(c.Request.Context(), "token ignored", "error", err)
			default:
				h.logger.Warn(c.Request.Context(), "token verification", "error", err)
			}
		}
		c.Next()
	}
}

func identity(c *gin.Context) *services.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*services.Identity)
	return id
}
