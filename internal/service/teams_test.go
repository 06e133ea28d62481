package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/faults"
	"github.com/fortuna/gridiron/internal/ingest/cfbd"
	"github.com/fortuna/gridiron/internal/mock"
)

// newTeamService builds a service with no API key, so every load takes
// the bundled-dataset path without touching the network.
func newTeamService() *TeamService {
	return NewTeamService(cfbd.New("", "", 0), cache.NewStore())
}

func TestTeamsFallback(t *testing.T) {
	svc := newTeamService()

	payload, entry, cached, err := svc.Teams(context.Background(), 2024)
	if err != nil {
		t.Fatal(err)
	}
	if cached {
		t.Error("first load should not be a cache hit")
	}
	if payload.Source != SourceFallback {
		t.Errorf("expected fallback source, got %q", payload.Source)
	}
	if len(payload.Teams) == 0 {
		t.Fatal("fallback dataset is empty")
	}
	if entry.TTLSeconds <= 0 {
		t.Errorf("cache entry TTL not set: %d", entry.TTLSeconds)
	}

	for _, team := range payload.Teams {
		if team.Slug == "" {
			t.Errorf("team %q has no slug", team.School)
		}
		if team.Logos == nil {
			t.Errorf("team %q has nil logos", team.School)
		}
	}
}

func TestTeamsCacheHit(t *testing.T) {
	svc := newTeamService()
	ctx := context.Background()

	if _, _, cached, err := svc.Teams(ctx, 2024); err != nil || cached {
		t.Fatalf("first call: cached=%v err=%v", cached, err)
	}
	if _, _, cached, err := svc.Teams(ctx, 2024); err != nil || !cached {
		t.Fatalf("second call: cached=%v err=%v", cached, err)
	}
}

type mapMirror struct {
	entries map[string]*cache.Entry
}

func (m *mapMirror) Write(ctx context.Context, e *cache.Entry) error {
	m.entries[e.Key] = e
	return nil
}

func (m *mapMirror) Read(ctx context.Context, key string) (*cache.Entry, error) {
	e, ok := m.entries[key]
	if !ok {
		return nil, errors.New("not mirrored")
	}
	return e, nil
}

func TestTeamsRestoredFromMirror(t *testing.T) {
	// A mirror round trip loses the typed payload: Redis hands back
	// generically decoded JSON.
	raw, err := json.Marshal(&TeamsPayload{Teams: mock.Teams(), Source: SourceLive})
	if err != nil {
		t.Fatal(err)
	}
	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatal(err)
	}

	mirror := &mapMirror{entries: map[string]*cache.Entry{
		"teams:2024": {
			Key:         "teams:2024",
			Payload:     payload,
			TTL:         time.Hour,
			TTLSeconds:  3600,
			Activity:    "peak",
			RefreshedAt: time.Now(),
		},
	}}

	svc := NewTeamService(cfbd.New("", "", 0), cache.NewStore(cache.WithMirror(mirror)))

	restored, _, cached, err := svc.Teams(context.Background(), 2024)
	if err != nil {
		t.Fatal(err)
	}
	if !cached {
		t.Error("mirror restore should count as a cache hit")
	}
	if restored.Source != SourceLive {
		t.Errorf("expected live source from the mirrored payload, got %q", restored.Source)
	}
	if len(restored.Teams) != len(mock.Teams()) {
		t.Errorf("restored %d teams, want %d", len(restored.Teams), len(mock.Teams()))
	}
	if restored.Teams[0].Slug == "" {
		t.Error("restored team lost its slug")
	}
}

func TestTeamBySlug(t *testing.T) {
	svc := newTeamService()
	ctx := context.Background()

	team, err := svc.TeamBySlug(ctx, 2024, "georgia")
	if err != nil {
		t.Fatal(err)
	}
	if team.School != "Georgia" {
		t.Errorf("wrong team: %q", team.School)
	}

	if _, err := svc.TeamBySlug(ctx, 2024, "no-such-team"); !errors.Is(err, faults.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestConferenceUnionCounts(t *testing.T) {
	svc := newTeamService()
	ctx := context.Background()

	all, _, _, err := svc.Conference(ctx, 2024, "all")
	if err != nil {
		t.Fatal(err)
	}
	fbs, _, _, err := svc.Conference(ctx, 2024, "fbs")
	if err != nil {
		t.Fatal(err)
	}
	fcs, _, _, err := svc.Conference(ctx, 2024, "fcs")
	if err != nil {
		t.Fatal(err)
	}

	if len(all.Teams) != len(fbs.Teams)+len(fcs.Teams) {
		t.Errorf("all (%d) != fbs (%d) + fcs (%d)", len(all.Teams), len(fbs.Teams), len(fcs.Teams))
	}
	if len(fcs.Teams) == 0 {
		t.Error("expected FCS teams in the bundled dataset")
	}
}

func TestConferenceBySlug(t *testing.T) {
	svc := newTeamService()

	sec, _, _, err := svc.Conference(context.Background(), 2024, "sec")
	if err != nil {
		t.Fatal(err)
	}
	if len(sec.Teams) == 0 {
		t.Fatal("expected SEC teams")
	}
	for _, team := range sec.Teams {
		if team.Conference != "SEC" {
			t.Errorf("non-SEC team %q in result", team.School)
		}
	}
}

func TestConferenceUnknownSlug(t *testing.T) {
	svc := newTeamService()

	_, _, _, err := svc.Conference(context.Background(), 2024, "moon-league")
	if !errors.Is(err, faults.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCurrentSeason(t *testing.T) {
	cases := []struct {
		month int
		year  int
		want  int
	}{
		{1, 2025, 2024},
		{7, 2025, 2024},
		{8, 2025, 2025},
		{12, 2024, 2024},
	}
	for _, tc := range cases {
		got := CurrentSeason(date(tc.year, tc.month))
		if got != tc.want {
			t.Errorf("CurrentSeason(%d-%02d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}

func date(year, month int) time.Time {
	return time.Date(year, time.Month(month), 15, 12, 0, 0, 0, time.UTC)
}
