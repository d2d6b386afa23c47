package services

import (
	"context"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/todoapi/internal/client/client"
	"github.com/dmitrijs2005/todoapi/internal/client/models"
)

// TodoService defines todo operations for the CLI. A todo reference is
// either a server id or the 1-based position from the most recent List.
type TodoService interface {
	Add(ctx context.Context, text string) (*models.Todo, error)
	List(ctx context.Context) ([]models.Todo, error)
	Show(ctx context.Context, ref string) (*models.Todo, error)
	SetCompleted(ctx context.Context, ref string, completed bool) (*models.Todo, error)
	Rename(ctx context.Context, ref, text string) (*models.Todo, error)
	Delete(ctx context.Context, ref string) (*models.Todo, error)
}

type todoService struct {
	client client.Client

	mu   sync.Mutex
	last []string
}

func NewTodoService(c client.Client) TodoService {
	return &todoService{client: c}
}

// resolve maps a list position to its id; anything else is used verbatim.
func (s *todoService) resolve(ref string) string {
	n, err := strconv.Atoi(ref)
	if err != nil {
		return ref
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 || n > len(s.last) {
		return ref
	}
	return s.last[n-1]
}

func (s *todoService) Add(ctx context.Context, text string) (*models.Todo, error) {
	return s.client.CreateTodo(ctx, text)
}

func (s *todoService) List(ctx context.Context) ([]models.Todo, error) {
	todos, err := s.client.ListTodos(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(todos))
	for i, t := range todos {
		ids[i] = t.ID
	}

	s.mu.Lock()
	s.last = ids
	s.mu.Unlock()

	return todos, nil
}

func (s *todoService) Show(ctx context.Context, ref string) (*models.Todo, error) {
	return s.client.GetTodo(ctx, s.resolve(ref))
}

func (s *todoService) SetCompleted(ctx context.Context, ref string, completed bool) (*models.Todo, error) {
	return s.client.UpdateTodo(ctx, s.resolve(ref), nil, &completed)
}

// Rename changes the text and keeps the completed flag. The server restamps
// completedAt for todos that stay completed.
func (s *todoService) Rename(ctx context.Context, ref, text string) (*models.Todo, error) {
	id := s.resolve(ref)
	current, err := s.client.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateTodo(ctx, id, &text, &current.Completed)
}

func (s *todoService) Delete(ctx context.Context, ref string) (*models.Todo, error) {
	return s.client.DeleteTodo(ctx, s.resolve(ref))
}
