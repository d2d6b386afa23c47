package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/client/client"
	"github.com/dmitrijs2005/todoapi/internal/client/config"
	"github.com/dmitrijs2005/todoapi/internal/client/services"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	todoService services.TodoService
	Mode        Mode
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerURL == "" {
		return nil, errors.New("server url is required")
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)

	as := services.NewAuthService(apiClient)
	ts := services.NewTodoService(apiClient)

	return &App{config: c, authService: as, todoService: ts, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

// track updates the connectivity mode from the outcome of a server call.
func (a *App) track(err error) {
	if errors.Is(err, client.ErrUnavailable) {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.authService != nil && a.authService.CurrentUser() != nil
}

// checkServer pings the server once and sets the mode accordingly.
func (a *App) checkServer(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	a.track(a.authService.Ping(ctx))
}
