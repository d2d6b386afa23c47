package rest

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
	"github.com/dmitrijs2005/todoapi/internal/server/validate"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	users  *services.UserService
	tokens *services.TokenService
	todos  *services.TodoService
	store  Pinger
	logger logging.Logger
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type todoRequest struct {
	Text string `json:"text"`
}

// todoPatchRequest reads only text and completed; completed counts as true
// only when it is the JSON literal true.
type todoPatchRequest struct {
	Text      *string `json:"text"`
	Completed any     `json:"completed"`
}

// bind decodes a JSON body; an empty body leaves dst at its zero value.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return badBody(err)
	}
	return nil
}

func (h *Handler) health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Warn(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			err = validate.Duplicate(strings.TrimSpace(req.Email))
		}
		h.respondError(c, err)
		return
	}

	c.Header(common.AuthHeaderName, token)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header(common.AuthHeaderName, token)
	c.JSON(http.StatusOK, user)
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.users.Me(c.Request.Context(), identity(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) logout(c *gin.Context) {
	if err := h.users.Logout(c.Request.Context(), identity(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) deleteAccount(c *gin.Context) {
	user, err := h.users.DeleteAccount(c.Request.Context(), identity(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) createTodo(c *gin.Context) {
	var req todoRequest
	if err := bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	todo, err := h.todos.Create(c.Request.Context(), identity(c), req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

func (h *Handler) listTodos(c *gin.Context) {
	todos, err := h.todos.List(c.Request.Context(), identity(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

func (h *Handler) getTodo(c *gin.Context) {
	todo, err := h.todos.Get(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (h *Handler) updateTodo(c *gin.Context) {
	var req todoPatchRequest
	if err := bind(c, &req); err != nil {
		h.respondError(c, err)
		return
	}

	completed := req.Completed == true
	todo, err := h.todos.Update(c.Request.Context(), identity(c), c.Param("id"), req.Text, &completed)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

func (h *Handler) deleteTodo(c *gin.Context) {
	todo, err := h.todos.Delete(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}
