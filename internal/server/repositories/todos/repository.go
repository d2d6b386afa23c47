// Package todos persists todo items.
package todos

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// Repository persists todos. Every method taking creatorID scopes the
// operation to todos created by that user; an empty creatorID applies no
// scope. A todo outside the scope is reported as common.ErrorNotFound,
// exactly like a missing one. Ids must already be validated with
// models.ParseID.
type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	List(ctx context.Context, creatorID string) ([]models.Todo, error)
	GetByID(ctx context.Context, id, creatorID string) (*models.Todo, error)
	Update(ctx context.Context, id, creatorID string, patch models.TodoPatch) (*models.Todo, error)
	Delete(ctx context.Context, id, creatorID string) (*models.Todo, error)
}
