package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/validate"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto its status code and body.
func (h *Handler) respondError(c *gin.Context, err error) {
	if fields := validate.Fields(err); fields != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fields})
		return
	}

	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"errors": validate.FieldErrors{
			{Field: "email", Message: "email is already registered"},
		}})
	case errors.Is(err, common.ErrInvalidCredentials):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, common.ErrorNotFound):
		c.Status(http.StatusNotFound)
	case isAuthError(err):
		c.JSON(http.StatusUnauthorized, gin.H{})
	default:
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badBody(err error) error {
	return validate.FieldErrors{{Field: "body", Message: "malformed JSON body: " + err.Error()}}
}
