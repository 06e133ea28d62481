package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestStoreMissThenHit(t *testing.T) {
	sat := time.Date(2024, time.November, 9, 14, 0, 0, 0, time.UTC) // Saturday
	store := NewStore(WithClock(fixedClock(sat)))

	loads := 0
	loader := func(ctx context.Context) (interface{}, error) {
		loads++
		return "payload", nil
	}

	entry, fromCache, err := store.Get(context.Background(), "teams:2024", loader)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	if fromCache {
		t.Error("first get should be a miss")
	}
	if entry.TTL != 1*time.Hour {
		t.Errorf("Saturday write should carry 1h TTL, got %v", entry.TTL)
	}
	if entry.Activity != ActivityPeak {
		t.Errorf("expected peak activity, got %s", entry.Activity)
	}

	_, fromCache, err = store.Get(context.Background(), "teams:2024", loader)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if !fromCache {
		t.Error("second get should hit the cache")
	}
	if loads != 1 {
		t.Errorf("expected 1 load, got %d", loads)
	}
}

func TestStoreExpiryTriggersReload(t *testing.T) {
	now := time.Date(2024, time.November, 9, 10, 0, 0, 0, time.UTC) // Saturday, 1h TTL
	store := NewStore(WithClock(func() time.Time { return now }))

	loads := 0
	loader := func(ctx context.Context) (interface{}, error) {
		loads++
		return loads, nil
	}

	if _, _, err := store.Get(context.Background(), "k", loader); err != nil {
		t.Fatal(err)
	}

	now = now.Add(2 * time.Hour)

	entry, fromCache, err := store.Get(context.Background(), "k", loader)
	if err != nil {
		t.Fatal(err)
	}
	if fromCache {
		t.Error("expired entry should trigger a reload")
	}
	if entry.Payload.(int) != 2 {
		t.Errorf("expected reloaded payload 2, got %v", entry.Payload)
	}
}

func TestStoreServesStaleOnLoaderFailure(t *testing.T) {
	now := time.Date(2024, time.November, 9, 10, 0, 0, 0, time.UTC)
	store := NewStore(WithClock(func() time.Time { return now }))

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		if calls == 1 {
			return "good", nil
		}
		return nil, errors.New("upstream down")
	}

	if _, _, err := store.Get(context.Background(), "k", loader); err != nil {
		t.Fatal(err)
	}

	now = now.Add(3 * time.Hour)

	entry, fromCache, err := store.Get(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("stale entry should absorb loader failure, got %v", err)
	}
	if !fromCache || entry.Payload.(string) != "good" {
		t.Errorf("expected stale 'good' payload, got %v (fromCache=%v)", entry.Payload, fromCache)
	}
}

func TestStoreLoaderFailureWithoutEntry(t *testing.T) {
	store := NewStore()

	_, _, err := store.Get(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error when loader fails on a cold key")
	}
}

type fakeMirror struct {
	entries map[string]*Entry
	writes  int
	reads   int
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{entries: make(map[string]*Entry)}
}

func (m *fakeMirror) Write(ctx context.Context, e *Entry) error {
	m.entries[e.Key] = e
	m.writes++
	return nil
}

func (m *fakeMirror) Read(ctx context.Context, key string) (*Entry, error) {
	m.reads++
	e, ok := m.entries[key]
	if !ok {
		return nil, errors.New("not mirrored")
	}
	return e, nil
}

func TestStoreRestoresColdKeyFromMirror(t *testing.T) {
	sat := time.Date(2024, time.November, 9, 14, 0, 0, 0, time.UTC)
	mirror := newFakeMirror()
	mirror.entries["teams:2024"] = &Entry{
		Key:         "teams:2024",
		Payload:     "mirrored",
		TTL:         time.Hour,
		TTLSeconds:  3600,
		Activity:    ActivityPeak,
		RefreshedAt: sat.Add(-10 * time.Minute),
	}

	store := NewStore(WithMirror(mirror), WithClock(fixedClock(sat)))

	loads := 0
	entry, fromCache, err := store.Get(context.Background(), "teams:2024", func(ctx context.Context) (interface{}, error) {
		loads++
		return "fresh", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !fromCache || entry.Payload.(string) != "mirrored" {
		t.Errorf("cold key should be served from the mirror, got %v (fromCache=%v)", entry.Payload, fromCache)
	}
	if loads != 0 {
		t.Errorf("mirror hit should not invoke the loader, got %d loads", loads)
	}

	// restored entry is now in memory, no second mirror read
	store.Get(context.Background(), "teams:2024", func(ctx context.Context) (interface{}, error) { return nil, nil })
	if mirror.reads != 1 {
		t.Errorf("expected 1 mirror read, got %d", mirror.reads)
	}
}

func TestStoreIgnoresExpiredMirrorEntry(t *testing.T) {
	sat := time.Date(2024, time.November, 9, 14, 0, 0, 0, time.UTC)
	mirror := newFakeMirror()
	mirror.entries["k"] = &Entry{
		Key:         "k",
		Payload:     "stale",
		TTL:         time.Hour,
		TTLSeconds:  3600,
		RefreshedAt: sat.Add(-3 * time.Hour),
	}

	store := NewStore(WithMirror(mirror), WithClock(fixedClock(sat)))

	entry, fromCache, err := store.Get(context.Background(), "k", func(ctx context.Context) (interface{}, error) {
		return "fresh", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if fromCache || entry.Payload.(string) != "fresh" {
		t.Errorf("expired mirror entry should fall through to the loader, got %v", entry.Payload)
	}
	if mirror.writes != 1 {
		t.Errorf("fresh load should write through to the mirror, got %d writes", mirror.writes)
	}
}

func TestEntryDecodePayload(t *testing.T) {
	// a mirror round trip leaves the payload as generic JSON
	entry := &Entry{Payload: map[string]interface{}{
		"teams":  []interface{}{map[string]interface{}{"school": "Georgia"}},
		"source": "live",
	}}

	var decoded struct {
		Teams []struct {
			School string `json:"school"`
		} `json:"teams"`
		Source string `json:"source"`
	}
	if err := entry.DecodePayload(&decoded); err != nil {
		t.Fatal(err)
	}
	if len(decoded.Teams) != 1 || decoded.Teams[0].School != "Georgia" {
		t.Errorf("unexpected decode result: %+v", decoded)
	}
	if decoded.Source != "live" {
		t.Errorf("expected source live, got %s", decoded.Source)
	}
}

func TestStoreRefreshHook(t *testing.T) {
	var refreshed []string
	store := NewStore(WithRefreshHook(func(key string, e *Entry) {
		refreshed = append(refreshed, key)
	}))

	loader := func(ctx context.Context) (interface{}, error) { return 1, nil }

	store.Get(context.Background(), "a", loader)
	store.Get(context.Background(), "a", loader) // hit, no hook
	store.Get(context.Background(), "b", loader)

	if len(refreshed) != 2 || refreshed[0] != "a" || refreshed[1] != "b" {
		t.Errorf("expected hook on fresh loads only, got %v", refreshed)
	}
}
