package session

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-community/gateway/internal/models"
)

func TestHashSID(t *testing.T) {
	h := sha256.Sum256([]byte("sid-1"))
	assert.Equal(t, hex.EncodeToString(h[:]), hashSID("sid-1"))
	assert.Len(t, hashSID("sid-1"), 64)
	assert.Equal(t, hashSID("sid-1"), hashSID("sid-1"))
	assert.NotEqual(t, hashSID("sid-1"), hashSID("sid-2"))
}

// Rows are keyed by the hashed session id; the token column stays
// recoverable because the gateway replays it to the backend.
func TestSessionRowKeyedByHashedSID(t *testing.T) {
	rec := &Record{
		SID:       "sid-1",
		Token:     "tok-1",
		User:      &models.User{ID: 3, Name: "Dev", Email: "dev@campus.edu", Role: "student"},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	row, err := newSessionRow(rec)
	require.NoError(t, err)

	assert.Equal(t, hashSID(rec.SID), row.SID)
	assert.NotEqual(t, rec.SID, row.SID)
	assert.Equal(t, "tok-1", row.Token)
	assert.Contains(t, string(row.User), `"student"`)
	assert.Equal(t, rec.ExpiresAt, row.ExpiresAt)
}

func TestSessionRowWithoutProfile(t *testing.T) {
	row, err := newSessionRow(&Record{SID: "sid-2", Token: "tok-2", ExpiresAt: time.Now()})
	require.NoError(t, err)
	assert.Empty(t, row.User)
	assert.Equal(t, hashSID("sid-2"), row.SID)
}
