// Package services contains the server-side business logic behind the
// HTTP API: session tokens, accounts and todos.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/auth"
	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/users"
)

// Identity is the authenticated caller behind a verified token.
type Identity struct {
	UserID string
	Email  string
	Token  string
}

// TokenService issues, verifies and revokes session tokens. A token is
// valid only while it is both correctly signed and listed on its user.
type TokenService struct {
	users    users.Repository
	secret   []byte
	validity time.Duration
}

func NewTokenService(repo users.Repository, cfg *config.Config) *TokenService {
	return &TokenService{
		users:    repo,
		secret:   []byte(cfg.SecretKey),
		validity: cfg.TokenValidityDuration,
	}
}

// Issue signs a new auth token for userID and appends it to the user's
// token list.
func (s *TokenService) Issue(ctx context.Context, userID string) (string, error) {
	token, err := auth.GenerateToken(userID, common.TokenAccessAuth, s.secret, s.validity)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if err := s.users.AddToken(ctx, userID, models.Token{Access: common.TokenAccessAuth, Token: token}); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}

	return token, nil
}

// Verify resolves token to an Identity. Bad signatures, a foreign access
// kind, a missing user and a revoked token all yield common.ErrInvalidToken;
// an expired token yields common.ErrTokenExpired. Store failures are
// returned as they are.
func (s *TokenService) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}

	claims, err := auth.ParseToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	if claims.Access != common.TokenAccessAuth {
		return nil, common.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, err
	}

	if !user.HasToken(common.TokenAccessAuth, token) {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserID: user.ID, Email: user.Email, Token: token}, nil
}

// Revoke removes the identity's token from its user; other tokens of the
// same user stay valid.
func (s *TokenService) Revoke(ctx context.Context, id *Identity) error {
	return s.users.RemoveToken(ctx, id.UserID, models.Token{Access: common.TokenAccessAuth, Token: id.Token})
}
