package session

import (
	"context"
	"net/http"
	"time"

	"github.com/campus-community/gateway/internal/backend"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager drives the four auth transitions. It is constructed once in
// main and handed to the handlers; nothing here is a package-level
// singleton, so tests build their own.
type Manager struct {
	store   Store
	backend *backend.Client
	secret  string
	ttl     time.Duration
	log     *zap.Logger
}

func NewManager(store Store, bc *backend.Client, secret string, ttl time.Duration, log *zap.Logger) *Manager {
	return &Manager{store: store, backend: bc, secret: secret, ttl: ttl, log: log}
}

// Login exchanges credentials for a token, then loads the profile with
// it. A credential rejection returns (nil, err) and touches nothing. If
// the profile fetch fails after the token was issued, the token is still
// persisted and the partial record is returned alongside the error; the
// next navigation is then authenticated but has no loaded profile.
func (m *Manager) Login(ctx context.Context, email, password string) (*Record, error) {
	token, err := m.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	rec := &Record{
		SID:       uuid.NewString(),
		Token:     token,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	u, meErr := m.backend.Me(ctx, token)
	if meErr == nil {
		rec.User = u
	} else {
		m.log.Warn("profile fetch after login failed", zap.Error(meErr))
	}
	if err := m.store.Save(ctx, rec); err != nil {
		return nil, err
	}
	if meErr != nil {
		return rec, meErr
	}
	return rec, nil
}

// Register passes the signup payload through. No session mutation.
func (m *Manager) Register(ctx context.Context, p backend.RegisterPayload) error {
	return m.backend.Register(ctx, p)
}

// Verify confirms a pending registration. No session mutation.
func (m *Manager) Verify(ctx context.Context, email, code string) error {
	return m.backend.Verify(ctx, email, code)
}

// Logout drops the persisted record. Unknown ids are fine; calling it
// twice leaves the same empty state.
func (m *Manager) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return m.store.Delete(ctx, sid)
}

// Load rehydrates a session from a signed cookie value. Any failure
// (bad signature, unknown sid, expired record, store error) yields an
// empty session: the browser is simply unauthenticated.
func (m *Manager) Load(ctx context.Context, cookieValue string) *Session {
	sid, err := parseCookieValue(m.secret, cookieValue)
	if err != nil {
		return &Session{}
	}
	rec, err := m.store.Get(ctx, sid)
	if err != nil {
		m.log.Warn("session load failed", zap.Error(err))
		return &Session{}
	}
	if rec == nil {
		return &Session{}
	}
	return &Session{SID: sid, Token: rec.Token, User: rec.User}
}

// Cookie mints the signed browser cookie for a record.
func (m *Manager) Cookie(rec *Record) (*http.Cookie, error) {
	v, err := mintCookieValue(m.secret, rec.SID, m.ttl)
	if err != nil {
		return nil, err
	}
	return newCookie(v, int(m.ttl.Seconds())), nil
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie() *http.Cookie {
	return newCookie("", -1)
}

// Middleware injects the rehydrated session into every request. Pages
// and guards read it from the context; no request reaches a handler
// without one.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := &Session{}
		if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
			s = m.Load(r.Context(), c.Value)
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}
