package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tilhq/til-in-go/pkg/server/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// UserKey is the context key for the bearer-token-authenticated user.
const UserKey ContextKey = "user"

// UserFromContext retrieves the API user attached by TokenAuthenticator.
func UserFromContext(ctx context.Context) (*store.User, bool) {
	user, ok := ctx.Value(UserKey).(*store.User)
	return user, ok
}

// TokenAuthenticator is middleware that validates API bearer tokens.
type TokenAuthenticator struct {
	Tokens store.TokensStore
}

// NewTokenAuthenticator creates a bearer-token authenticator middleware.
func NewTokenAuthenticator(tokens store.TokensStore) *TokenAuthenticator {
	return &TokenAuthenticator{Tokens: tokens}
}

// Middleware returns an HTTP middleware that resolves the Authorization
// bearer token to its user.
func (t *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		value, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || value == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		user, err := t.Tokens.FindUserByToken(value)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Invalid token"))
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
