package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/users"
	"github.com/dmitrijs2005/todoapi/internal/server/validate"
	"golang.org/x/crypto/bcrypt"
)

// UserService provides account operations:
//   - Register: validate, hash and store a user, then issue its first token
//   - Login: check credentials and issue another token
//   - Me, Logout, DeleteAccount: act on an authenticated Identity
type UserService struct {
	users      users.Repository
	tokens     *TokenService
	bcryptCost int
	// dummyHash is compared against when the email is unknown so that a
	// failed lookup costs the same as a wrong password.
	dummyHash []byte
}

func NewUserService(repo users.Repository, tokens *TokenService, cfg *config.Config) *UserService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		panic(fmt.Sprintf("bcrypt dummy hash: %v", err))
	}

	return &UserService{
		users:      repo,
		tokens:     tokens,
		bcryptCost: cost,
		dummyHash:  dummy,
	}
}

// Register creates a user and returns it with a freshly issued token.
// Invalid input yields validate.FieldErrors; a taken email yields
// common.ErrDuplicateEmail. When the token cannot be stored the new user
// is removed again so the email stays free.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	email, err := validate.Credentials(email, password)
	if err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, "", validate.FieldErrors{{Field: "password", Message: "password must be at most 72 bytes"}}
		}
		return nil, "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	user, err := s.users.Create(ctx, &models.User{Email: email, Password: string(hash)})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		if _, derr := s.users.Delete(context.WithoutCancel(ctx), user.ID); derr != nil {
			err = errors.Join(err, fmt.Errorf("undo register: %w", derr))
		}
		return nil, "", err
	}

	return user, token, nil
}

// Login issues a new token when email and password match a stored user.
// Unknown emails and wrong passwords both yield common.ErrInvalidCredentials
// and leave every token list untouched.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.VerifyPassword(user, password) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// VerifyPassword reports whether password matches the user's stored hash.
func (s *UserService) VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// Me returns the user behind id.
func (s *UserService) Me(ctx context.Context, id *Identity) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes only the token the caller authenticated with.
func (s *UserService) Logout(ctx context.Context, id *Identity) error {
	return s.tokens.Revoke(ctx, id)
}

// DeleteAccount removes the caller's user record and with it every token.
func (s *UserService) DeleteAccount(ctx context.Context, id *Identity) (*models.User, error) {
	user, err := s.users.Delete(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, err
	}
	return user, nil
}
