// Package cli provides the interactive todo command-line client.
//
// It wires configuration, the HTTP API client, the account and todo
// services, and a REPL. Typical flow: register or log in, then manage todos
// with add, list, show, done, undone, rename and delete. Todos can be
// referenced by id or by their position in the last list output.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
