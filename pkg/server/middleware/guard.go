package middleware

import (
	"net/http"

	"gatehouse/pkg/server/store"
	"gatehouse/pkg/session"
)

// Guard is middleware that enforces authentication and permissions on
// the web pages. Failed checks redirect with a flash message rather
// than rendering an error page.
type Guard struct {
	Sessions *session.Manager
	Authz    store.AuthzStore
}

// NewGuard creates a new Guard
func NewGuard(sessions *session.Manager, authz store.AuthzStore) *Guard {
	return &Guard{Sessions: sessions, Authz: authz}
}

// RequireAuthenticated redirects anonymous requests to the login page.
func (g *Guard) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := g.Sessions.Load(r)
		if !ctx.Authenticated() {
			_ = g.Sessions.Flash(w, r, "danger", "You must sign in first.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, session.Set(r, ctx))
	})
}

// RequirePermission redirects anonymous requests to the login page and
// requests lacking the permission to the dashboard. The dashboard only
// requires authentication, so the redirect always lands.
func (g *Guard) RequirePermission(permission string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := g.Sessions.Load(r)
		if !ctx.Authenticated() {
			_ = g.Sessions.Flash(w, r, "danger", "You must sign in first.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !g.Authz.HasPermission(ctx.AccountID, permission) {
			_ = g.Sessions.Flash(w, r, "danger", "You do not have permission to access that page.")
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, session.Set(r, ctx))
	})
}
