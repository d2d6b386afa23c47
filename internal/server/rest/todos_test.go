package rest

import (
	"net/http"
	"strings"
	"testing"

	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seed stores the two classic fixture todos, the second one completed.
func seed(t *testing.T, api *testAPI) []*models.Todo {
	t.Helper()
	completedAt := int64(333)
	fixtures := []*models.Todo{
		{Text: "First test todo"},
		{Text: "Second test todo", Completed: true, CompletedAt: &completedAt},
	}
	for _, td := range fixtures {
		_, err := api.todos.Create(t.Context(), td)
		require.NoError(t, err)
	}
	return fixtures
}

func TestCreateTodo(t *testing.T) {
	api := newTestAPI(t, config.OwnershipLegacy, fakePinger{})

	rec := api.do(t, http.MethodPost, "/todos", "", map[string]string{"text": "  Test todo text  "})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Test todo text", body["text"])
	assert.Equal(t, false, body["completed"])
	assert.Nil(t, body["completedAt"])
	assert.NotContains(t, body, "_creator")

	list, err := api.todos.List(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Test todo text", list[0].Text)
}

func TestCreateTodo_Invalid(t *testing.T) {
	api := newTestAPI(t, config.OwnershipLegacy, fakePinger{})

	for _, body := range []any{map[string]string{}, map[string]string{"text": "   "}, `{"text": 5}`} {
		rec := api.do(t, http.MethodPost, "/todos", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "errors")
	}

	list, err := api.todos.List(t.Context(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListTodos(t *testing.T) {
	api := newTestAPI(t, config.OwnershipLegacy, fakePinger{})
	seed(t, api)

	rec := api.do(t, http.MethodGet, "/todos", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	list := decode(t, rec)["todos"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "First test todo", list[0].(map[string]any)["text"])
}

func TestGetTodo(t *testing.T) {
	api := newTestAPI(t, config.OwnershipLegacy, fakePinger{})
	fixtures := seed(t, api)

	rec := api.do(t, http.MethodGet, "/todos/"+fixtures[0].ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	todo := decode(t, rec)["todo"].(map[string]any)
	assert.Equal(t, fixtures[0].Text, todo["text"])

	rec = api.do(t, http.MethodGet, "/todos/"+strings.ToUpper(fixtures[0].ID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTodoNotFound(t *testing.T) {
	api := newTestAPI(t, config.OwnershipLegacy, fakePinger{})
	seed(t, api)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		for _, id := range []string{models.NewID(), "1234"} {
			rec := api.do(t, method, "/todos/"+id, "", map[string]any{"completed": true})
			assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", method, id)
		}
	}

	list, err := api.todos.List(t.Context(), "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUpdateTodo(t *testing.T) {
	api := newTestAPI(t, config.OwnershipLegacy, fakePinger{})
	fixtures := seed(t, api)

	rec := api.do(t, http.MethodPatch, "/todos/"+fixtures[0].ID, "", map[string]any{"text": "New text", "completed": true})
	require.Equal(t, http.StatusOK, rec.Code)
	todo := decode(t, rec)["todo"].(map[string]any)
	assert.Equal(t, "New text", todo["text"])
	assert.Equal(t, true, todo["completed"])
	assert.IsType(t, float64(0), todo["completedAt"])

	rec = api.do(t, http.MethodPatch, "/todos/"+fixtures[1].ID, "", map[string]any{"text": "Another text", "completed": false})
	require.Equal(t, http.StatusOK, rec.Code)
	todo = decode(t, rec)["todo"].(map[string]any)
	assert.Equal(t, "Another text", todo["text"])
	assert.Equal(t, false, todo["completed"])
	assert.Nil(t, todo["completedAt"])
}

func TestUpdateTodo_IgnoresUnknownFields(t *testing.T) {
	api := newTestAPI(t, config.OwnershipLegacy, fakePinger{})
	fixtures := seed(t, api)

	rec := api.do(t, http.MethodPatch, "/todos/"+fixtures[1].ID, "", map[string]any{"completed": "yes", "completedAt": 42, "_id": models.NewID()})
	require.Equal(t, http.StatusOK, rec.Code)
	todo := decode(t, rec)["todo"].(map[string]any)
	assert.Equal(t, fixtures[1].ID, todo["_id"])
	assert.Equal(t, "Second test todo", todo["text"])
	assert.Equal(t, false, todo["completed"])
	assert.Nil(t, todo["completedAt"])

	rec = api.do(t, http.MethodPatch, "/todos/"+fixtures[1].ID, "", map[string]any{"text": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteTodo(t *testing.T) {
	api := newTestAPI(t, config.OwnershipLegacy, fakePinger{})
	fixtures := seed(t, api)

	rec := api.do(t, http.MethodDelete, "/todos/"+fixtures[1].ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, fixtures[1].ID, decode(t, rec)["todo"].(map[string]any)["_id"])

	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/todos/"+fixtures[1].ID, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodDelete, "/todos/"+fixtures[1].ID, "", nil).Code)
}

func TestTodos_StrictOwnership(t *testing.T) {
	api := newTestAPI(t, config.OwnershipStrict, fakePinger{})
	aliceID, alice := api.register(t, "alice@example.com")
	_, bob := api.register(t, "bob@example.com")

	rec := api.do(t, http.MethodPost, "/todos", "", map[string]string{"text": "anonymous"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/todos", "", nil).Code)

	rec = api.do(t, http.MethodPost, "/todos", alice, map[string]string{"text": "alice's todo"})
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode(t, rec)
	assert.Equal(t, aliceID, created["_creator"])
	todoID := created["_id"].(string)

	rec = api.do(t, http.MethodGet, "/todos", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec)["todos"])

	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/todos/"+todoID, bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodPatch, "/todos/"+todoID, bob, map[string]any{"completed": true}).Code)
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodDelete, "/todos/"+todoID, bob, nil).Code)

	rec = api.do(t, http.MethodGet, "/todos/"+todoID, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["todo"].(map[string]any)["completed"])
}

func TestTodos_LegacyIgnoresToken(t *testing.T) {
	api := newTestAPI(t, config.OwnershipLegacy, fakePinger{})
	_, token := api.register(t, "legacy@example.com")

	rec := api.do(t, http.MethodPost, "/todos", token, map[string]string{"text": "with token"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, decode(t, rec), "_creator")

	rec = api.do(t, http.MethodGet, "/todos", "garbage", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["todos"], 1)
}
