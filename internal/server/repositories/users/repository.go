// Package users is the credential store: user records and their live
// session tokens.
package users

import (
	"context"

	"github.com/dmitrijs2005/todoapi/internal/server/models"
)

// Repository persists users. Lookups of an unknown user return
// common.ErrorNotFound; Create returns common.ErrDuplicateEmail when the
// email is already taken. Create assigns user.ID when it is empty.
// RemoveToken is a no-op for a token the user does not hold.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	AddToken(ctx context.Context, userID string, token models.Token) error
	RemoveToken(ctx context.Context, userID string, token models.Token) error
	Delete(ctx context.Context, id string) (*models.User, error)
}
