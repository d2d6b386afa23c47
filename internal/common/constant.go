package common

// AuthHeaderName is the HTTP header carrying the session token, both on
// requests and on register/login responses.
const AuthHeaderName = "x-auth"

// TokenAccessAuth is the only token purpose issued by this system.
const TokenAccessAuth = "auth"

// RequestIDHeaderName correlates a request across log lines.
const RequestIDHeaderName = "X-Request-ID"
