package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDetailSurfacedVerbatim(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Email not verified"})
	}))
	defer ts.Close()

	c := NewClient(ts.URL, zap.NewNop())
	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Email not verified", err.Error())
}

func TestDetailFallbackWhenBodyUnusable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>nope</html>"))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, zap.NewNop())
	_, err := c.ListEvents(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestBearerHeaderInjection(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, zap.NewNop())
	_, err := c.ListNotices(context.Background(), "tok-9")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-9", got)

	// unauthenticated calls send no header
	err = c.Verify(context.Background(), "a@b.c", "000000")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestContextCancellationAbortsCall(t *testing.T) {
	block := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer ts.Close()
	defer close(block)

	c := NewClient(ts.URL, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := c.ListEvents(ctx, "tok")
		done <- err
	}()
	cancel()
	err := <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListPassThrough(t *testing.T) {
	body := `[{"title":"Tech Fest","location":"Main Hall"}]`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events", r.URL.Path)
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	c := NewClient(ts.URL, zap.NewNop())
	raw, err := c.ListEvents(context.Background(), "tok")
	require.NoError(t, err)
	assert.JSONEq(t, body, string(raw))
}
