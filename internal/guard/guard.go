// Package guard decides whether a navigation to a protected route
// proceeds. Decisions are computed from the in-memory session only: no
// network calls, no session mutation, redirects are the only side effect.
package guard

import (
	"github.com/campus-community/gateway/internal/config"
	"github.com/campus-community/gateway/internal/roles"
	"github.com/campus-community/gateway/internal/session"
)

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectHome
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Requirement is a route's declared role constraint. The zero value
// requires authentication only. Role and AnyOf are mutually exclusive;
// Role wins if both are set.
type Requirement struct {
	Role  roles.Role
	AnyOf []roles.Role
}

func (r Requirement) hasRoleCheck() bool {
	return r.Role != "" || len(r.AnyOf) > 0
}

// Guard is one configured decision engine. The page guard and the admin
// section guard share this code and differ only in configuration, which
// replaces the two independently drifted implementations of the old
// client.
type Guard struct {
	profilePolicy config.ProfilePolicy
	denyTo        Decision
}

// New returns the page-route guard: authenticated-but-unauthorized
// navigations bounce to the site root.
func New(policy config.ProfilePolicy) *Guard {
	return &Guard{profilePolicy: policy, denyTo: RedirectHome}
}

// NewAdminSection returns the guard for the /admin shell. It always
// redirects to login, whether the actor is unauthenticated or merely not
// administrative, and never fail-opens on a missing profile.
func NewAdminSection() *Guard {
	return &Guard{profilePolicy: config.ProfileBlock, denyTo: RedirectLogin}
}

// Evaluate applies the transition rules in fixed order; the first match
// wins.
func (g *Guard) Evaluate(s *session.Session, req Requirement) Decision {
	if !s.Authenticated() {
		return RedirectLogin
	}
	if !req.hasRoleCheck() {
		return Allow
	}
	if s.User == nil {
		// token held, profile not loaded
		if g.profilePolicy == config.ProfileAllow {
			return Allow
		}
		return g.denyTo
	}
	role := s.Role()
	if req.Role != "" {
		if roles.Matches(role, req.Role) {
			return Allow
		}
		return g.denyTo
	}
	if roles.MatchesAny(role, req.AnyOf) {
		return Allow
	}
	return g.denyTo
}

// Target maps a redirect decision to its path.
func Target(d Decision) string {
	if d == RedirectHome {
		return HomePath
	}
	return LoginPath
}
