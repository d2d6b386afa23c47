package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/todos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestTodoService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	todo, err := f.todo.Create(ctx, nil, "  Test todo text  ")
	require.NoError(t, err)
	assert.Equal(t, "Test todo text", todo.Text)
	assert.False(t, todo.Completed)
	assert.Nil(t, todo.CompletedAt)
	assert.Empty(t, todo.CreatorID)

	for _, text := range []string{"", "   "} {
		_, err := f.todo.Create(ctx, nil, text)
		require.ErrorIs(t, err, common.ErrorValidation)
	}

	list, err := f.todo.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTodoService_UpdateCompletionInvariant(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	todo, err := f.todo.Create(ctx, nil, "First test todo")
	require.NoError(t, err)

	updated, err := f.todo.Update(ctx, nil, todo.ID, ptr("This should be the new text"), ptr(true))
	require.NoError(t, err)
	assert.Equal(t, "This should be the new text", updated.Text)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, int64(1_700_000_000_000), *updated.CompletedAt)

	updated, err = f.todo.Update(ctx, nil, todo.ID, nil, ptr(false))
	require.NoError(t, err)
	assert.Equal(t, "This should be the new text", updated.Text)
	assert.False(t, updated.Completed)
	assert.Nil(t, updated.CompletedAt)

	// omitted completed behaves like false
	_, err = f.todo.Update(ctx, nil, todo.ID, nil, ptr(true))
	require.NoError(t, err)
	updated, err = f.todo.Update(ctx, nil, todo.ID, ptr("renamed"), nil)
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.Nil(t, updated.CompletedAt)

	_, err = f.todo.Update(ctx, nil, todo.ID, ptr("  "), ptr(true))
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestTodoService_MalformedIDSkipsStore(t *testing.T) {
	ctx := context.Background()
	repo := &countingTodos{Repository: todos.NewMemoryRepository()}
	s := NewTodoService(repo, testConfig())

	_, err := s.Get(ctx, nil, "1234")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = s.Update(ctx, nil, "1234", ptr("x"), nil)
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = s.Delete(ctx, nil, "1234")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, 0, repo.calls)

	_, err = s.Get(ctx, nil, models.NewID())
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Equal(t, 1, repo.calls)
}

func TestTodoService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	todo, err := f.todo.Create(ctx, nil, "bye")
	require.NoError(t, err)

	deleted, err := f.todo.Delete(ctx, nil, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, deleted.ID)

	_, err = f.todo.Get(ctx, nil, todo.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTodoService_StrictOwnership(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.OwnershipMode = config.OwnershipStrict
	f := newFixture(t, cfg)
	require.True(t, f.todo.Strict())

	alice := &Identity{UserID: models.NewID()}
	bob := &Identity{UserID: models.NewID()}

	_, err := f.todo.Create(ctx, nil, "anonymous")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = f.todo.List(ctx, nil)
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	todo, err := f.todo.Create(ctx, alice, "alice's")
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, todo.CreatorID)
	_, err = f.todo.Create(ctx, bob, "bob's")
	require.NoError(t, err)

	list, err := f.todo.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alice's", list[0].Text)

	_, err = f.todo.Get(ctx, bob, todo.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = f.todo.Update(ctx, bob, todo.ID, nil, ptr(true))
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = f.todo.Delete(ctx, bob, todo.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)

	got, err := f.todo.Get(ctx, alice, todo.ID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
}

func TestTodoService_LegacyIgnoresIdentity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testConfig())

	todo, err := f.todo.Create(ctx, &Identity{UserID: models.NewID()}, "shared")
	require.NoError(t, err)
	assert.Empty(t, todo.CreatorID)

	_, err = f.todo.Get(ctx, &Identity{UserID: models.NewID()}, todo.ID)
	require.NoError(t, err)
}
