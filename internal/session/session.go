// Package session owns the authentication lifecycle: login, register,
// verify and logout against the platform backend, plus the durable store
// that keeps a browser's token and profile across page reloads.
package session

import (
	"context"

	"github.com/campus-community/gateway/internal/models"
	"github.com/campus-community/gateway/internal/roles"
)

// Session is the current browser actor. User is set only when a profile
// has been loaded; a token can exist without one (profile fetch failed or
// has not happened yet).
type Session struct {
	SID   string
	Token string
	User  *models.User
}

// Authenticated reports whether a token is held. It says nothing about
// whether the backend still honors it.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Role returns the loaded profile's role, or "" when no profile is
// loaded.
func (s *Session) Role() roles.Role {
	if s == nil || s.User == nil {
		return ""
	}
	return roles.Role(s.User.Role)
}

type ctxKey string

const sessionCtxKey ctxKey = "session"

// FromCtx returns the session injected by Middleware. Never nil on a
// request that passed through it; an unauthenticated request carries an
// empty session.
func FromCtx(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionCtxKey).(*Session); ok {
		return s
	}
	return &Session{}
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}
