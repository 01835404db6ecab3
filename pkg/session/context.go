package session

import "context"

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Key is the context key under which the request's session is stored.
const Key ContextKey = "session"

// FromContext retrieves the session attached to a request context.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(Key).(*Session)
	return sess, ok
}

// NewContext attaches a session to a request context.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, Key, sess)
}
