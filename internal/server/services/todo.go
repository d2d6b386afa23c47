package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoapi/internal/server/validate"
)

// TodoService guards todo access. In legacy mode any caller, authenticated
// or not, acts on every todo. In strict mode an Identity is required and
// each operation is confined to the caller's own todos.
type TodoService struct {
	todos  todos.Repository
	strict bool
	now    func() time.Time
}

func NewTodoService(repo todos.Repository, cfg *config.Config) *TodoService {
	return &TodoService{
		todos:  repo,
		strict: cfg.StrictOwnership(),
		now:    time.Now,
	}
}

// Strict reports whether todo routes require an authenticated caller.
func (s *TodoService) Strict() bool {
	return s.strict
}

func (s *TodoService) scope(id *Identity) (string, error) {
	if !s.strict {
		return "", nil
	}
	if id == nil {
		return "", common.ErrorUnauthorized
	}
	return id.UserID, nil
}

// Create stores a new, not completed todo with trimmed text.
func (s *TodoService) Create(ctx context.Context, id *Identity, text string) (*models.Todo, error) {
	creator, err := s.scope(id)
	if err != nil {
		return nil, err
	}

	text, err = validate.TodoText(text)
	if err != nil {
		return nil, err
	}

	return s.todos.Create(ctx, &models.Todo{Text: text, CreatorID: creator})
}

func (s *TodoService) List(ctx context.Context, id *Identity) ([]models.Todo, error) {
	creator, err := s.scope(id)
	if err != nil {
		return nil, err
	}
	return s.todos.List(ctx, creator)
}

// resolve checks the caller and the id before any store access. A malformed
// id is reported as common.ErrorNotFound.
func (s *TodoService) resolve(id *Identity, todoID string) (string, string, error) {
	creator, err := s.scope(id)
	if err != nil {
		return "", "", err
	}
	todoID, err = models.ParseID(todoID)
	if err != nil {
		return "", "", err
	}
	return todoID, creator, nil
}

func (s *TodoService) Get(ctx context.Context, id *Identity, todoID string) (*models.Todo, error) {
	todoID, creator, err := s.resolve(id, todoID)
	if err != nil {
		return nil, err
	}
	return s.todos.GetByID(ctx, todoID, creator)
}

// Update applies a partial change. Text, when given, must be non-empty
// after trimming. completed set to true stamps completedAt with the current
// time; anything else clears both.
func (s *TodoService) Update(ctx context.Context, id *Identity, todoID string, text *string, completed *bool) (*models.Todo, error) {
	todoID, creator, err := s.resolve(id, todoID)
	if err != nil {
		return nil, err
	}

	if text != nil {
		trimmed, err := validate.TodoText(*text)
		if err != nil {
			return nil, err
		}
		text = &trimmed
	}

	patch := models.NewTodoPatch(text, completed != nil && *completed, s.now())
	return s.todos.Update(ctx, todoID, creator, patch)
}

func (s *TodoService) Delete(ctx context.Context, id *Identity, todoID string) (*models.Todo, error) {
	todoID, creator, err := s.resolve(id, todoID)
	if err != nil {
		return nil, err
	}
	return s.todos.Delete(ctx, todoID, creator)
}
