package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Loader produces a fresh payload for a cache key
type Loader func(ctx context.Context) (interface{}, error)

// Entry is a cached payload plus the freshness metadata recorded when it
// was written. TTL comes from the schedule policy at write time only.
type Entry struct {
	Key         string        `json:"key"`
	Payload     interface{}   `json:"payload"`
	TTL         time.Duration `json:"-"`
	TTLSeconds  int           `json:"ttl_seconds"`
	Activity    string        `json:"activity"`
	RefreshedAt time.Time     `json:"refreshed_at"`
}

// Expired reports whether the entry is past its TTL at time t
func (e *Entry) Expired(t time.Time) bool {
	return t.Sub(e.RefreshedAt) > e.TTL
}

// Age returns how long ago the entry was refreshed
func (e *Entry) Age(t time.Time) time.Duration {
	return t.Sub(e.RefreshedAt)
}

// DecodePayload unmarshals the payload into dst. Entries restored from
// the mirror carry generically decoded JSON instead of the typed value
// the loader produced, so typed callers re-decode through this.
func (e *Entry) DecodePayload(dst interface{}) error {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

// Mirror persists cache entries outside the process so a restart can
// serve warm data. Read returns an error when the key is absent.
type Mirror interface {
	Write(ctx context.Context, e *Entry) error
	Read(ctx context.Context, key string) (*Entry, error)
}

// Store is the process-wide cache table keyed by (resource, scope).
// Entries are created on first miss and replaced on TTL expiry; there is
// no other eviction. Concurrent requests racing on the same key may both
// recompute and both write - the recomputed value is equivalent, so the
// last write winning is fine.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	mirror    Mirror
	onRefresh func(key string, e *Entry)
	now       func() time.Time
}

// StoreOption configures a Store
type StoreOption func(*Store)

// WithMirror attaches a mirror so entries survive process restarts
func WithMirror(m Mirror) StoreOption {
	return func(s *Store) { s.mirror = m }
}

// WithRefreshHook registers a callback fired after each fresh load
func WithRefreshHook(fn func(key string, e *Entry)) StoreOption {
	return func(s *Store) { s.onRefresh = fn }
}

// WithClock overrides the wall clock (used by tests)
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty cache store
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached entry for key, invoking loader on a miss or on
// TTL expiry. The second return value reports whether the payload came
// from cache. A loader failure with a still-present stale entry returns
// the stale entry rather than the error.
func (s *Store) Get(ctx context.Context, key string, loader Loader) (*Entry, bool, error) {
	now := s.now()

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if ok && !entry.Expired(now) {
		return entry, true, nil
	}

	// Cold key: a restarted process checks the mirror before refetching
	if !ok && s.mirror != nil {
		if warm, merr := s.mirror.Read(ctx, key); merr == nil && warm != nil && !warm.Expired(now) {
			s.mu.Lock()
			s.entries[key] = warm
			s.mu.Unlock()
			log.Printf("[cache] ✓ restored %s from mirror (%ds left)", key, warm.TTLSeconds-int(warm.Age(now).Seconds()))
			return warm, true, nil
		}
	}

	payload, err := loader(ctx)
	if err != nil {
		if ok {
			log.Printf("[cache] refresh failed for %s, serving stale entry: %v", key, err)
			return entry, true, nil
		}
		return nil, false, err
	}

	fresh := Evaluate(now)
	entry = &Entry{
		Key:         key,
		Payload:     payload,
		TTL:         fresh.TTL,
		TTLSeconds:  int(fresh.TTL.Seconds()),
		Activity:    fresh.Activity,
		RefreshedAt: now,
	}

	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()

	if s.mirror != nil {
		if err := s.mirror.Write(ctx, entry); err != nil {
			log.Printf("[cache] mirror write failed for %s: %v", key, err)
		}
	}
	if s.onRefresh != nil {
		s.onRefresh(key, entry)
	}

	return entry, false, nil
}

// Peek returns the entry for key without loading, or nil
func (s *Store) Peek(key string) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[key]
}

// Keys returns the currently held cache keys
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}
