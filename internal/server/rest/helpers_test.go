package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/users"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func testConfig(mode string) *config.Config {
	return &config.Config{
		EndpointAddrHTTP:   "127.0.0.1:0",
		SecretKey:          "abc123",
		BcryptCost:         bcrypt.MinCost,
		OwnershipMode:      mode,
		CORSAllowedOrigins: []string{"http://localhost:5173"},
	}
}

type testAPI struct {
	handler http.Handler
	users   *users.MemoryRepository
	todos   *todos.MemoryRepository
}

func newTestAPI(t *testing.T, mode string, store Pinger) *testAPI {
	t.Helper()

	cfg := testConfig(mode)
	ur := users.NewMemoryRepository()
	tr := todos.NewMemoryRepository()
	ts := services.NewTokenService(ur, cfg)
	us := services.NewUserService(ur, ts, cfg)
	tds := services.NewTodoService(tr, cfg)

	srv := NewServer(cfg, logging.Nop(), us, ts, tds, store)
	return &testAPI{handler: srv.Handler(), users: ur, todos: tr}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthHeaderName, token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns its id and token.
func (a *testAPI) register(t *testing.T, email string) (string, string) {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/users", "", map[string]string{"email": email, "password": "123abc!"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	token := rec.Header().Get(common.AuthHeaderName)
	require.NotEmpty(t, token)
	return user["_id"].(string), token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
