package middleware

import (
	"net/http"

	"github.com/tilhq/til-in-go/pkg/session"
)

// RequireAuthenticated gates protected page routes: unauthenticated sessions
// are redirected to the login page before the handler runs.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := session.FromContext(r.Context())
		if !ok || !sess.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
