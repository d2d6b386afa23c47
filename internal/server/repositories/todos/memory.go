package todos

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// MemoryRepository keeps todos in insertion order in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	todos []*models.Todo
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func copyTodo(t *models.Todo) *models.Todo {
	c := *t
	if t.CompletedAt != nil {
		ms := *t.CompletedAt
		c.CompletedAt = &ms
	}
	return &c
}

func inScope(t *models.Todo, creatorID string) bool {
	return creatorID == "" || t.CreatorID == creatorID
}

// find returns the index of the todo or -1. Callers hold the lock.
func (r *MemoryRepository) find(id, creatorID string) int {
	return slices.IndexFunc(r.todos, func(t *models.Todo) bool {
		return t.ID == id && inScope(t, creatorID)
	})
}

func (r *MemoryRepository) Create(_ context.Context, todo *models.Todo) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if todo.ID == "" {
		todo.ID = models.NewID()
	}
	r.todos = append(r.todos, copyTodo(todo))
	return todo, nil
}

func (r *MemoryRepository) List(_ context.Context, creatorID string) ([]models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		if inScope(t, creatorID) {
			out = append(out, *copyTodo(t))
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id, creatorID string) (*models.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.find(id, creatorID)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	return copyTodo(r.todos[i]), nil
}

func (r *MemoryRepository) Update(_ context.Context, id, creatorID string, patch models.TodoPatch) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(id, creatorID)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	patch.Apply(r.todos[i])
	return copyTodo(r.todos[i]), nil
}

func (r *MemoryRepository) Delete(_ context.Context, id, creatorID string) (*models.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.find(id, creatorID)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	t := r.todos[i]
	r.todos = slices.Delete(r.todos, i, i+1)
	return t, nil
}
