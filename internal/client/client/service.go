package client

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) (*models.User, error)
	CreateTodo(ctx context.Context, text string) (*models.Todo, error)
	ListTodos(ctx context.Context) ([]models.Todo, error)
	GetTodo(ctx context.Context, id string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id string, text *string, completed *bool) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id string) (*models.Todo, error)
	Ping(ctx context.Context) error
	Token() string
}
