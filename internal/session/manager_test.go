package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-community/gateway/internal/backend"
	"github.com/campus-community/gateway/internal/roles"
)

const testSecret = "test-secret"

// fakeBackend mimics the platform API's auth surface.
func fakeBackend(t *testing.T, meFails bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var req struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Password != "correct" {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123"})
		case "/auth/me":
			if meFails {
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "profile unavailable"})
				return
			}
			assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"id": 7, "name": "Priya", "email": "priya@campus.edu", "role": "club_leader",
			})
		case "/auth/register", "/auth/verify":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func newManager(t *testing.T, ts *httptest.Server) (*Manager, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	bc := backend.NewClient(ts.URL, zap.NewNop())
	return NewManager(store, bc, testSecret, time.Hour, zap.NewNop()), store
}

func TestLoginRoundTrip(t *testing.T) {
	ts := fakeBackend(t, false)
	defer ts.Close()
	mgr, store := newManager(t, ts)

	rec, err := mgr.Login(context.Background(), "priya@campus.edu", "correct")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "tok-123", rec.Token)
	require.NotNil(t, rec.User)
	assert.Equal(t, "club_leader", rec.User.Role)

	// both values are durable
	saved, err := store.Get(context.Background(), rec.SID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, rec.Token, saved.Token)

	// a fresh rehydration reproduces the same classification
	cookie, err := mgr.Cookie(rec)
	require.NoError(t, err)
	s := mgr.Load(context.Background(), cookie.Value)
	assert.True(t, s.Authenticated())
	assert.True(t, roles.IsAdministrative(s.Role()))
	assert.Equal(t, roles.IsAdministrative(roles.Role(rec.User.Role)), roles.IsAdministrative(s.Role()))
}

func TestLoginRejectionSurfacesDetailVerbatim(t *testing.T) {
	ts := fakeBackend(t, false)
	defer ts.Close()
	mgr, store := newManager(t, ts)

	// a prior valid session must survive a failed login
	prior := &Record{SID: "prior", Token: "old", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(context.Background(), prior))

	rec, err := mgr.Login(context.Background(), "priya@campus.edu", "wrong")
	assert.Nil(t, rec)
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", err.Error())

	kept, err := store.Get(context.Background(), "prior")
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, "old", kept.Token)
}

func TestLoginKeepsTokenWhenProfileFetchFails(t *testing.T) {
	ts := fakeBackend(t, true)
	defer ts.Close()
	mgr, _ := newManager(t, ts)

	rec, err := mgr.Login(context.Background(), "priya@campus.edu", "correct")
	require.Error(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "tok-123", rec.Token)
	assert.Nil(t, rec.User)

	// rehydrates as authenticated with no loaded profile
	cookie, cerr := mgr.Cookie(rec)
	require.NoError(t, cerr)
	s := mgr.Load(context.Background(), cookie.Value)
	assert.True(t, s.Authenticated())
	assert.Nil(t, s.User)
}

func TestLogoutIdempotent(t *testing.T) {
	ts := fakeBackend(t, false)
	defer ts.Close()
	mgr, store := newManager(t, ts)

	rec, err := mgr.Login(context.Background(), "priya@campus.edu", "correct")
	require.NoError(t, err)

	require.NoError(t, mgr.Logout(context.Background(), rec.SID))
	gone, err := store.Get(context.Background(), rec.SID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// second logout: same empty state, no error
	require.NoError(t, mgr.Logout(context.Background(), rec.SID))
	require.NoError(t, mgr.Logout(context.Background(), ""))
}

func TestRegisterAndVerifyDoNotTouchSession(t *testing.T) {
	ts := fakeBackend(t, false)
	defer ts.Close()
	mgr, store := newManager(t, ts)

	prior := &Record{SID: "prior", Token: "old", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(context.Background(), prior))

	require.NoError(t, mgr.Register(context.Background(), backend.RegisterPayload{
		Name: "n", Email: "n@campus.edu", Password: "secret1", Role: "student",
	}))
	require.NoError(t, mgr.Verify(context.Background(), "n@campus.edu", "123456"))

	kept, err := store.Get(context.Background(), "prior")
	require.NoError(t, err)
	require.NotNil(t, kept)
}

func TestLoadRejectsBadCookies(t *testing.T) {
	ts := fakeBackend(t, false)
	defer ts.Close()
	mgr, store := newManager(t, ts)

	assert.False(t, mgr.Load(context.Background(), "garbage").Authenticated())

	// a cookie signed with another secret never reaches the store
	other := NewManager(store, backend.NewClient(ts.URL, zap.NewNop()), "other-secret", time.Hour, zap.NewNop())
	rec := &Record{SID: "sid-1", Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(context.Background(), rec))
	c, err := other.Cookie(rec)
	require.NoError(t, err)
	assert.False(t, mgr.Load(context.Background(), c.Value).Authenticated())
}

func TestExpiredRecordIsUnauthenticated(t *testing.T) {
	ts := fakeBackend(t, false)
	defer ts.Close()
	mgr, store := newManager(t, ts)

	rec := &Record{SID: "sid-2", Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, store.Save(context.Background(), rec))
	c, err := mgr.Cookie(rec)
	require.NoError(t, err)
	assert.False(t, mgr.Load(context.Background(), c.Value).Authenticated())
}
