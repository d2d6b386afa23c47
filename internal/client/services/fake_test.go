package services

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	User    *models.User
	Todos   []models.Todo
	Todo    *models.Todo
	Err     error
	MeErr   error
	PingErr error

	LastEmail     string
	LastPassword  string
	LastID        string
	LastText      *string
	LastCompleted *bool
	LoggedOut     bool
}

func (f *fakeClient) Register(_ context.Context, email, password string) (*models.User, error) {
	f.LastEmail, f.LastPassword = email, password
	return f.User, f.Err
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*models.User, error) {
	f.LastEmail, f.LastPassword = email, password
	return f.User, f.Err
}

func (f *fakeClient) Me(context.Context) (*models.User, error) { return f.User, f.MeErr }

func (f *fakeClient) Logout(context.Context) error {
	f.LoggedOut = true
	return f.Err
}

func (f *fakeClient) DeleteAccount(context.Context) (*models.User, error) { return f.User, f.Err }

func (f *fakeClient) CreateTodo(_ context.Context, text string) (*models.Todo, error) {
	f.LastText = &text
	return f.Todo, f.Err
}

func (f *fakeClient) ListTodos(context.Context) ([]models.Todo, error) { return f.Todos, f.Err }

func (f *fakeClient) GetTodo(_ context.Context, id string) (*models.Todo, error) {
	f.LastID = id
	return f.Todo, f.Err
}

func (f *fakeClient) UpdateTodo(_ context.Context, id string, text *string, completed *bool) (*models.Todo, error) {
	f.LastID, f.LastText, f.LastCompleted = id, text, completed
	return f.Todo, f.Err
}

func (f *fakeClient) DeleteTodo(_ context.Context, id string) (*models.Todo, error) {
	f.LastID = id
	return f.Todo, f.Err
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func (f *fakeClient) Token() string { return "" }
