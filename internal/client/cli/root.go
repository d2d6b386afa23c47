package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if a.authService != nil {
		if u := a.authService.CurrentUser(); u != nil {
			s = u.Email + " "
		}
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, probes the server and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintf(a.out, "Todo CLI for %s (type 'help' for commands)\n", a.config.ServerURL)

	a.checkServer(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}
