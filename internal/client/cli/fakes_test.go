package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/todoapi/internal/client/config"
	"github.com/dmitrijs2005/todoapi/internal/client/models"
)

type fakeAuth struct {
	user *models.User

	lastEmail string
	lastPass  []byte
	err       error
	pingErr   error
	deleted   bool
}

func (f *fakeAuth) Register(_ context.Context, email string, pass []byte) (*models.User, error) {
	return f.signIn(email, pass)
}

func (f *fakeAuth) Login(_ context.Context, email string, pass []byte) (*models.User, error) {
	return f.signIn(email, pass)
}

func (f *fakeAuth) signIn(email string, pass []byte) (*models.User, error) {
	f.lastEmail, f.lastPass = email, append([]byte(nil), pass...)
	if f.err != nil {
		return nil, f.err
	}
	f.user = &models.User{ID: "u1", Email: email}
	return f.user, nil
}

func (f *fakeAuth) Me(context.Context) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.user = nil
	return nil
}

func (f *fakeAuth) DeleteAccount(context.Context) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u := f.user
	f.user, f.deleted = nil, true
	return u, nil
}

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }
func (f *fakeAuth) CurrentUser() *models.User  { return f.user }

type fakeTodos struct {
	todos []models.Todo
	err   error

	lastRef       string
	lastText      string
	lastCompleted bool
}

func (f *fakeTodos) Add(_ context.Context, text string) (*models.Todo, error) {
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	return &models.Todo{ID: "t1", Text: text}, nil
}

func (f *fakeTodos) List(context.Context) ([]models.Todo, error) { return f.todos, f.err }

func (f *fakeTodos) Show(_ context.Context, ref string) (*models.Todo, error) {
	f.lastRef = ref
	if f.err != nil {
		return nil, f.err
	}
	return &models.Todo{ID: ref, Text: "shown"}, nil
}

func (f *fakeTodos) SetCompleted(_ context.Context, ref string, completed bool) (*models.Todo, error) {
	f.lastRef, f.lastCompleted = ref, completed
	if f.err != nil {
		return nil, f.err
	}
	return &models.Todo{ID: ref, Completed: completed}, nil
}

func (f *fakeTodos) Rename(_ context.Context, ref, text string) (*models.Todo, error) {
	f.lastRef, f.lastText = ref, text
	if f.err != nil {
		return nil, f.err
	}
	return &models.Todo{ID: ref, Text: text}, nil
}

func (f *fakeTodos) Delete(_ context.Context, ref string) (*models.Todo, error) {
	f.lastRef = ref
	if f.err != nil {
		return nil, f.err
	}
	return &models.Todo{ID: ref}, nil
}

// newTestApp builds an App over fakes; input feeds the prompt reader.
func newTestApp(input string) (*App, *fakeAuth, *fakeTodos, *bytes.Buffer) {
	fa, ft := &fakeAuth{}, &fakeTodos{}
	out := &bytes.Buffer{}
	return &App{
		config:      &config.Config{ServerURL: "http://test"},
		authService: fa,
		todoService: ft,
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         out,
	}, fa, ft, out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}
