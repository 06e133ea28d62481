package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/faults"
	"github.com/fortuna/gridiron/internal/ingest/cfbd"
	"github.com/fortuna/gridiron/internal/mock"
	"github.com/fortuna/gridiron/internal/models"
	"github.com/fortuna/gridiron/internal/normalize"
)

// conferenceAliases maps URL slugs to the conference names the data
// providers use. CFBD and the bundled dataset spell a few of them
// differently, so each slug carries every spelling seen in the wild.
var conferenceAliases = map[string][]string{
	"sec":             {"SEC"},
	"big-ten":         {"Big Ten"},
	"big-12":          {"Big 12"},
	"acc":             {"ACC"},
	"pac-12":          {"Pac-12"},
	"american":        {"American Athletic", "American"},
	"mountain-west":   {"Mountain West"},
	"sun-belt":        {"Sun Belt"},
	"mac":             {"Mid-American", "MAC"},
	"conference-usa":  {"Conference USA"},
	"independent":     {"FBS Independents", "Independent"},
	"big-sky":         {"Big Sky"},
	"missouri-valley": {"Missouri Valley"},
}

// TeamsPayload is the cached team directory for one season
type TeamsPayload struct {
	Teams  []models.TeamRecord `json:"teams"`
	Source string              `json:"source"`
}

// TeamService assembles the season team directory: the CFBD team list
// enriched with records, SP+ ratings, and PPA metrics, cached per season
// under the schedule-aware TTL policy.
type TeamService struct {
	cfbd       *cfbd.Client
	cache      *cache.Store
	logoClient *http.Client
}

// NewTeamService creates a team service
func NewTeamService(client *cfbd.Client, store *cache.Store) *TeamService {
	return &TeamService{
		cfbd:  client,
		cache: store,
		logoClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Teams returns the team directory for a season. The second return is
// the cache entry the payload came from, the third reports a cache hit.
func (s *TeamService) Teams(ctx context.Context, year int) (*TeamsPayload, *cache.Entry, bool, error) {
	key := fmt.Sprintf("teams:%d", year)

	entry, cached, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		return s.loadTeams(ctx, year)
	})
	if err != nil {
		return nil, nil, false, err
	}

	payload, ok := entry.Payload.(*TeamsPayload)
	if !ok {
		payload = &TeamsPayload{}
		if err := entry.DecodePayload(payload); err != nil {
			return nil, nil, false, fmt.Errorf("unexpected cache payload for %s: %w", key, err)
		}
	}
	return payload, entry, cached, nil
}

// loadTeams fetches and assembles the live directory, or substitutes the
// bundled dataset when live data is unavailable. Enrichment fetches run
// concurrently; an individual enrichment failure degrades that metric to
// its zero value rather than failing the load.
func (s *TeamService) loadTeams(ctx context.Context, year int) (interface{}, error) {
	raw, err := s.cfbd.FetchTeams(ctx)
	if err != nil {
		if faults.IsRecoverable(err) {
			log.Printf("[teams] live data unavailable, serving bundled dataset: %v", err)
			return &TeamsPayload{Teams: mock.Teams(), Source: SourceFallback}, nil
		}
		return nil, err
	}

	teams := normalize.TeamsFromCFBD(raw)

	var (
		wg         sync.WaitGroup
		recordsRaw []interface{}
		spRaw      []interface{}
		ppaRaw     []interface{}
	)
	fetches := []struct {
		name string
		dst  *[]interface{}
		fn   func(context.Context, int) ([]interface{}, error)
	}{
		{"records", &recordsRaw, s.cfbd.FetchRecords},
		{"sp ratings", &spRaw, s.cfbd.FetchSPRatings},
		{"ppa", &ppaRaw, s.cfbd.FetchPPA},
	}
	for _, f := range fetches {
		wg.Add(1)
		go func(name string, dst *[]interface{}, fn func(context.Context, int) ([]interface{}, error)) {
			defer wg.Done()
			fetched, err := fn(ctx, year)
			if err != nil {
				log.Printf("[teams] %s fetch failed, continuing without: %v", name, err)
				return
			}
			*dst = fetched
		}(f.name, f.dst, f.fn)
	}
	wg.Wait()

	teams = normalize.ApplySeasonRecords(teams, recordsRaw)
	teams = normalize.ApplySPRatings(teams, spRaw)
	teams = normalize.ApplyPPA(teams, ppaRaw)

	log.Printf("[teams] assembled %d teams for %d", len(teams), year)
	return &TeamsPayload{Teams: teams, Source: SourceLive}, nil
}

// TeamBySlug returns a single team by its URL slug
func (s *TeamService) TeamBySlug(ctx context.Context, year int, slug string) (*models.TeamRecord, error) {
	payload, _, _, err := s.Teams(ctx, year)
	if err != nil {
		return nil, err
	}

	for i := range payload.Teams {
		if payload.Teams[i].Slug == slug {
			return &payload.Teams[i], nil
		}
	}
	return nil, faults.ErrNotFound
}

// Conference returns the teams in a conference by slug. The slugs
// "all", "fbs", and "fcs" select classification buckets instead of a
// single conference. Unknown slugs return faults.ErrNotFound.
func (s *TeamService) Conference(ctx context.Context, year int, slug string) (*TeamsPayload, *cache.Entry, bool, error) {
	payload, entry, cached, err := s.Teams(ctx, year)
	if err != nil {
		return nil, nil, false, err
	}

	teams, ok := selectConference(payload.Teams, slug)
	if !ok {
		return nil, nil, false, faults.ErrNotFound
	}

	return &TeamsPayload{Teams: teams, Source: payload.Source}, entry, cached, nil
}

func selectConference(teams []models.TeamRecord, slug string) ([]models.TeamRecord, bool) {
	switch slug {
	case "all":
		return teams, true
	case models.ClassificationFBS, models.ClassificationFCS:
		return normalize.FilterByClassification(teams, slug), true
	}

	aliases, ok := conferenceAliases[slug]
	if !ok {
		return nil, false
	}

	out := []models.TeamRecord{}
	for _, alias := range aliases {
		out = append(out, normalize.FilterByConference(teams, alias)...)
	}
	return out, true
}

// LogoStatus is one logo reachability check result
type LogoStatus struct {
	School    string `json:"school"`
	URL       string `json:"url"`
	Reachable bool   `json:"reachable"`
}

// VerifyLogos checks each team's first logo URL with a HEAD request.
// Checks run concurrently, at most eight in flight.
func (s *TeamService) VerifyLogos(ctx context.Context, teams []models.TeamRecord) []LogoStatus {
	statuses := make([]LogoStatus, len(teams))
	sem := make(chan struct{}, 8)

	var wg sync.WaitGroup
	for i, team := range teams {
		statuses[i] = LogoStatus{School: team.School}
		if len(team.Logos) == 0 {
			continue
		}
		statuses[i].URL = team.Logos[0]

		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			statuses[i].Reachable = s.logoReachable(ctx, url)
		}(i, team.Logos[0])
	}
	wg.Wait()

	return statuses
}

func (s *TeamService) logoReachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := s.logoClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 400
}
