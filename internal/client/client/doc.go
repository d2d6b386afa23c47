// Package client talks to the todo API over HTTP.
//
// The Client interface is the transport-agnostic contract used by the CLI
// services; HTTPClient implements it with net/http, keeps the session token
// returned in the x-auth header, and maps response statuses onto sentinel
// errors (ErrUnauthorized, ErrNotFound, ErrInvalidCredentials,
// ErrUnavailable) or a *ValidationError for 400 responses with field errors.
//
// HTTPClient is safe for concurrent use.
package client
