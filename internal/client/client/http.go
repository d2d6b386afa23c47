package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/client/models"
	"github.com/dmitrijs2005/todoapi/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Token returns the session token attached to authenticated requests.
func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) setToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// do sends in as JSON and decodes a 2xx body into out. Non-2xx statuses are
// mapped to the package's sentinel errors.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) (http.Header, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(common.AuthHeaderName, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := mapStatus(resp.StatusCode, data); err != nil {
		return resp.Header, err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.Header, fmt.Errorf("decode response: %w", err)
		}
	}

	return resp.Header, nil
}

func mapStatus(code int, body []byte) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusBadRequest:
		var ve ValidationError
		if len(body) > 0 && json.Unmarshal(body, &ve) == nil && len(ve.Errors) > 0 {
			return &ve
		}
		return ErrBadRequest
	case code == http.StatusUnauthorized:
		return ErrUnauthorized
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusServiceUnavailable:
		return ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) authenticate(ctx context.Context, path, email, password string) (*models.User, error) {
	var user models.User
	header, err := c.do(ctx, http.MethodPost, path, credentials{Email: email, Password: password}, &user)
	if err != nil {
		return nil, err
	}

	token := header.Get(common.AuthHeaderName)
	if token == "" {
		return nil, errors.New("server returned no token")
	}
	c.setToken(token)

	return &user, nil
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (*models.User, error) {
	return c.authenticate(ctx, "/users", email, password)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := c.authenticate(ctx, "/users/login", email, password)
	if errors.Is(err, ErrBadRequest) {
		return nil, ErrInvalidCredentials
	}
	return user, err
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the current token on the server and forgets it locally.
func (c *HTTPClient) Logout(ctx context.Context) error {
	if _, err := c.do(ctx, http.MethodDelete, "/users/me/token", nil, nil); err != nil {
		return err
	}
	c.setToken("")
	return nil
}

func (c *HTTPClient) DeleteAccount(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := c.do(ctx, http.MethodDelete, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	c.setToken("")
	return &user, nil
}

func (c *HTTPClient) CreateTodo(ctx context.Context, text string) (*models.Todo, error) {
	var todo models.Todo
	if _, err := c.do(ctx, http.MethodPost, "/todos", map[string]string{"text": text}, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *HTTPClient) ListTodos(ctx context.Context) ([]models.Todo, error) {
	var out struct {
		Todos []models.Todo `json:"todos"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/todos", nil, &out); err != nil {
		return nil, err
	}
	return out.Todos, nil
}

type todoEnvelope struct {
	Todo models.Todo `json:"todo"`
}

func (c *HTTPClient) GetTodo(ctx context.Context, id string) (*models.Todo, error) {
	var out todoEnvelope
	if _, err := c.do(ctx, http.MethodGet, "/todos/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Todo, nil
}

// UpdateTodo sends a partial update. A nil text leaves the text unchanged;
// the server treats a missing completed flag as false.
func (c *HTTPClient) UpdateTodo(ctx context.Context, id string, text *string, completed *bool) (*models.Todo, error) {
	patch := map[string]any{}
	if text != nil {
		patch["text"] = *text
	}
	if completed != nil {
		patch["completed"] = *completed
	}

	var out todoEnvelope
	if _, err := c.do(ctx, http.MethodPatch, "/todos/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out.Todo, nil
}

func (c *HTTPClient) DeleteTodo(ctx context.Context, id string) (*models.Todo, error) {
	var out todoEnvelope
	if _, err := c.do(ctx, http.MethodDelete, "/todos/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Todo, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	return err
}
