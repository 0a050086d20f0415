package session

import (
	"context"
	"sync"
	"time"

	"github.com/campus-community/gateway/internal/models"
)

// Record is one browser's persisted session: the bearer token plus the
// serialized profile, the same two values the old client kept in
// localStorage.
type Record struct {
	SID       string
	Token     string
	User      *models.User
	ExpiresAt time.Time
}

// Store persists session records. Get returns (nil, nil) for unknown or
// expired ids; Delete of an unknown id is a no-op, so logout stays
// idempotent.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, sid string) (*Record, error)
	Delete(ctx context.Context, sid string) error
}

// MemoryStore is the fallback when no DATABASE_URL is configured, and
// what the tests run against.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]*Record)}
}

func (m *MemoryStore) Save(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.recs[rec.SID] = &cp
	return nil
}

func (m *MemoryStore) Get(_ context.Context, sid string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.recs[sid]
	if !ok || time.Now().After(rec.ExpiresAt) {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (m *MemoryStore) Delete(_ context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, sid)
	return nil
}
