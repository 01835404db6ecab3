// Package session implements the server-side session state for browser
// clients: the session store keyed by an opaque cookie identifier, the
// per-session authentication state, and the single-use CSRF token guard for
// mutating form submissions.
package session
