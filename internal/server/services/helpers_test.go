package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:     "abc123",
		BcryptCost:    bcrypt.MinCost,
		OwnershipMode: config.OwnershipLegacy,
	}
}

type fixture struct {
	users  *users.MemoryRepository
	todos  *todos.MemoryRepository
	tokens *TokenService
	user   *UserService
	todo   *TodoService
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	f := &fixture{
		users: users.NewMemoryRepository(),
		todos: todos.NewMemoryRepository(),
	}
	f.tokens = NewTokenService(f.users, cfg)
	f.user = NewUserService(f.users, f.tokens, cfg)
	f.todo = NewTodoService(f.todos, cfg)
	f.todo.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	return f
}

var errStore = errors.New("store unavailable")

// failingUsers fails every call with errStore.
type failingUsers struct{}

func (failingUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, errStore }
func (failingUsers) GetByEmail(context.Context, string) (*models.User, error)   { return nil, errStore }
func (failingUsers) GetByID(context.Context, string) (*models.User, error)      { return nil, errStore }
func (failingUsers) AddToken(context.Context, string, models.Token) error       { return errStore }
func (failingUsers) RemoveToken(context.Context, string, models.Token) error    { return errStore }
func (failingUsers) Delete(context.Context, string) (*models.User, error)       { return nil, errStore }

// tokenlessUsers stores users but cannot store their tokens.
type tokenlessUsers struct {
	*users.MemoryRepository
}

func (tokenlessUsers) AddToken(context.Context, string, models.Token) error { return errStore }

// countingTodos records how often the store is reached.
type countingTodos struct {
	todos.Repository
	calls int
}

func (c *countingTodos) GetByID(ctx context.Context, id, creatorID string) (*models.Todo, error) {
	c.calls++
	return c.Repository.GetByID(ctx, id, creatorID)
}

func (c *countingTodos) Update(ctx context.Context, id, creatorID string, p models.TodoPatch) (*models.Todo, error) {
	c.calls++
	return c.Repository.Update(ctx, id, creatorID, p)
}

func (c *countingTodos) Delete(ctx context.Context, id, creatorID string) (*models.Todo, error) {
	c.calls++
	return c.Repository.Delete(ctx, id, creatorID)
}
