package rest

import (
	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes. Todo routes require a token only
// when the todo service runs in strict ownership mode.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger())

	if len(allowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = allowedOrigins
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", common.AuthHeaderName}
		corsConfig.ExposeHeaders = []string{common.AuthHeaderName, common.RequestIDHeaderName}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/health", h.health)

	users := router.Group("/users")
	{
		users.POST("", h.register)
		users.POST("/login", h.login)

		me := users.Group("/me", h.authenticate())
		{
			me.GET("", h.me)
			me.DELETE("", h.deleteAccount)
			me.DELETE("/token", h.logout)
		}
	}

	todos := router.Group("/todos")
	if h.todos.Strict() {
		todos.Use(h.authenticate())
	} else {
		todos.Use(h.optionalAuth())
	}
	{
		todos.POST("", h.createTodo)
		todos.GET("", h.listTodos)
		todos.GET("/:id", h.getTodo)
		todos.PATCH("/:id", h.updateTodo)
		todos.DELETE("/:id", h.deleteTodo)
	}

	return router
}
