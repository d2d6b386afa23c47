// Package services contains application services for the todo CLI.
// This file defines the account service: register, login, logout, account
// deletion and the server liveness probe.
package services

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/todoapi/internal/client/client"
	"github.com/dmitrijs2005/todoapi/internal/client/models"
)

// AuthService defines account operations for the CLI.
//
// Passwords are passed as byte slices so the caller can wipe them after use.
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	DeleteAccount(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
	CurrentUser() *models.User
}

// authService remembers the user behind the client's current token.
type authService struct {
	client client.Client

	mu   sync.RWMutex
	user *models.User
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(c client.Client) AuthService {
	return &authService{client: c}
}

func (a *authService) setUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
}

// CurrentUser returns the signed-in user or nil.
func (a *authService) CurrentUser() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

func (a *authService) Register(ctx context.Context, email string, password []byte) (*models.User, error) {
	u, err := a.client.Register(ctx, strings.TrimSpace(email), string(password))
	if err != nil {
		return nil, err
	}
	a.setUser(u)
	return u, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	u, err := a.client.Login(ctx, strings.TrimSpace(email), string(password))
	if err != nil {
		return nil, err
	}
	a.setUser(u)
	return u, nil
}

// Me refreshes the current user from the server. An unauthorized answer
// signs the user out locally.
func (a *authService) Me(ctx context.Context) (*models.User, error) {
	u, err := a.client.Me(ctx)
	if err != nil {
		if isUnauthorized(err) {
			a.setUser(nil)
		}
		return nil, err
	}
	a.setUser(u)
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil && !isUnauthorized(err) {
		return err
	}
	a.setUser(nil)
	return nil
}

func (a *authService) DeleteAccount(ctx context.Context) (*models.User, error) {
	u, err := a.client.DeleteAccount(ctx)
	if err != nil {
		return nil, err
	}
	a.setUser(nil)
	return u, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
