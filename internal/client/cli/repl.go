package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

type command func(ctx context.Context, args []string) error

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Me(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	DeleteAccount(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Done(ctx context.Context, args []string) error
	Undone(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the todo CLI.
//
// It reads a line from reader, parses the first token as the command and
// passes the remaining tokens to it. Unknown commands are reported back to
// the user. The loop exits on EOF or when the user types "exit" or "quit".
//
//	register [email]        create an account and sign in
//	login [email]           sign in
//	me                      show the signed-in user
//	logout                  revoke the current session
//	deleteaccount           delete the account (asks for confirmation)
//	add <text>              add a todo
//	(l)ist                  list todos with their numbers
//	show <ref>              show a todo by id or number
//	done <ref> / undone     mark a todo completed or not completed
//	rename <ref> <text>     change a todo's text
//	delete <ref>            delete a todo
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	commands := map[string]command{
		"register":      a.Register,
		"login":         a.Login,
		"me":            a.Me,
		"logout":        a.Logout,
		"deleteaccount": a.DeleteAccount,
		"add":           a.Add,
		"l":             a.List,
		"list":          a.List,
		"show":          a.Show,
		"done":          a.Done,
		"undone":        a.Undone,
		"rename":        a.Rename,
		"delete":        a.Delete,
	}

	for {
		printlnFn(fmt.Sprintf("todo %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist, show, done, undone, rename, delete, me, logout, deleteaccount, exit")
			} else {
				printlnFn("Available commands: register, login, add, (l)ist, show, done, undone, rename, delete, exit")
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		fn, ok := commands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		_ = fn(ctx, args)
	}
}
