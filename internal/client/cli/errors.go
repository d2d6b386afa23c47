package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todoapi/internal/client/client"
)

// fail prints a user-facing description of err and returns err unchanged.
func (a *App) fail(err error) error {
	fmt.Fprintln(a.out, "Error:", describe(err))
	return err
}

func describe(err error) string {
	var ve *client.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, client.ErrInvalidCredentials):
		return "invalid email or password"
	case errors.Is(err, client.ErrUnauthorized):
		return "not logged in (use login or register)"
	case errors.Is(err, client.ErrNotFound):
		return "todo not found"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	default:
		return err.Error()
	}
}
