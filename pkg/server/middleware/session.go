// Package middleware provides the cross-cutting request gates: session
// loading, the authenticated-only redirect guard for protected page routes,
// and bearer-token authentication for the JSON API.
package middleware

import (
	"net/http"

	"github.com/tilhq/til-in-go/pkg/session"
)

// SessionCookieName is the cookie carrying the opaque session identifier.
const SessionCookieName = "TIL_SESSION"

// SessionLoader attaches a session to every request, creating one (and
// setting the cookie) on first contact.
type SessionLoader struct {
	Store *session.Store
}

// NewSessionLoader creates a session-loading middleware.
func NewSessionLoader(store *session.Store) *SessionLoader {
	return &SessionLoader{Store: store}
}

// Middleware resolves the request's session from its cookie. Unknown or
// absent identifiers get a fresh unauthenticated session.
func (l *SessionLoader) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *session.Session

		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			sess, _ = l.Store.Get(cookie.Value)
		}
		if sess == nil {
			sess = l.Store.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sess.ID(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		r = r.WithContext(session.NewContext(r.Context(), sess))
		next.ServeHTTP(w, r)
	})
}
