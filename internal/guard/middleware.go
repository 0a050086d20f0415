package guard

import (
	"net/http"

	"github.com/campus-community/gateway/internal/metrics"
	"github.com/campus-community/gateway/internal/roles"
	"github.com/campus-community/gateway/internal/session"
)

// Protect wraps a route with a requirement. Denied navigations get a 303
// to the guard's configured target; the requested path is not preserved.
func (g *Guard) Protect(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := session.FromCtx(r.Context())
			d := g.Evaluate(s, req)
			metrics.GuardDecision(d != Allow)
			if d != Allow {
				http.Redirect(w, r, Target(d), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth protects a route that only needs a token.
func (g *Guard) RequireAuth() func(http.Handler) http.Handler {
	return g.Protect(Requirement{})
}

// RequireRole protects a route needing one exact role.
func (g *Guard) RequireRole(r roles.Role) func(http.Handler) http.Handler {
	return g.Protect(Requirement{Role: r})
}

// RequireAnyRole protects a route accepting any of the given roles.
func (g *Guard) RequireAnyRole(rs ...roles.Role) func(http.Handler) http.Handler {
	return g.Protect(Requirement{AnyOf: rs})
}
