package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.BindAddr)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, ProfileBlock, cfg.ProfilePolicy)
	assert.Equal(t, 2.0, cfg.LoginRate)
	assert.Equal(t, 10, cfg.LoginBurst)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	_, err := Load()
	require.Error(t, err)
}

// Unparseable numbers keep their defaults instead of silently becoming
// zero (a zero TTL would expire every session at login).
func TestLoadBadNumbersFallBack(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("SESSION_TTL_HOURS", "abc")
	t.Setenv("LOGIN_RATE", "fast")
	t.Setenv("LOGIN_BURST", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 2.0, cfg.LoginRate)
	assert.Equal(t, 10, cfg.LoginBurst)
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("GUARD_PROFILE_POLICY", "maybe")
	_, err := Load()
	require.Error(t, err)
}
