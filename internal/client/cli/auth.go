package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todoapi/internal/client/models"
	"github.com/dmitrijs2005/todoapi/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// credentials takes the email from args or asks for it, then reads the
// password without echo. The caller wipes the password.
func (a *App) credentials(args []string) (string, []byte, error) {
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		if email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
			return "", nil, err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

type authFunc func(ctx context.Context, email string, password []byte) (*models.User, error)

func (a *App) authenticate(ctx context.Context, args []string, fn authFunc, done string) error {
	email, password, err := a.credentials(args)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := fn(ctx, email, password)
	a.track(err)
	if err != nil {
		return a.fail(err)
	}

	fmt.Fprintf(a.out, "%s as %s\n", done, user.Email)
	return nil
}

// Register creates an account and signs in with it.
func (a *App) Register(ctx context.Context, args []string) error {
	return a.authenticate(ctx, args, a.authService.Register, "Registered")
}

// Login signs in with an existing account.
func (a *App) Login(ctx context.Context, args []string) error {
	return a.authenticate(ctx, args, a.authService.Login, "Logged in")
}

func (a *App) Me(ctx context.Context, _ []string) error {
	user, err := a.authService.Me(ctx)
	a.track(err)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "%s %s\n", user.ID, user.Email)
	return nil
}

// Logout revokes the current session token.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.authService.Logout(ctx)
	a.track(err)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// DeleteAccount removes the account after an explicit confirmation.
func (a *App) DeleteAccount(ctx context.Context, _ []string) error {
	answer, err := getSimpleText(a.reader, "Type 'yes' to delete your account", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	user, err := a.authService.DeleteAccount(ctx)
	a.track(err)
	if err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Account %s deleted\n", user.Email)
	return nil
}
