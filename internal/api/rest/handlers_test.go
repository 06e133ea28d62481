package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fortuna/gridiron/internal/analysis"
	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/ingest/cfbd"
	"github.com/fortuna/gridiron/internal/service"
)

// testServer wires the full stack with no API key, so every resource
// serves the bundled dataset. The clock is pinned to a Saturday.
func testServer() *Server {
	saturday := time.Date(2024, time.November, 9, 15, 0, 0, 0, time.UTC)

	client := cfbd.New("", "", 0)
	cacheStore := cache.NewStore(cache.WithClock(func() time.Time { return saturday }))

	teams := service.NewTeamService(client, cacheStore)
	scorer := analysis.NewScorer(0.25, 0.25, 2.0)
	predictions := service.NewPredictionService(client, teams, scorer, cacheStore, nil, nil, nil)
	scores := service.NewScoreService(nil, cacheStore)
	news := service.NewNewsService(nil, nil, cacheStore)
	ratings := service.NewRatingsService(client, cacheStore)
	rankings := service.NewRankingsService(nil, cacheStore)

	handler := NewHandler(teams, predictions, scores, news, ratings, rankings, cacheStore)
	handler.now = func() time.Time { return saturday }

	return NewServer("0", handler)
}

func get(t *testing.T, srv *Server, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rr, req)

	var body map[string]interface{}
	if len(rr.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("decoding response for %s: %v", path, err)
		}
	}
	return rr, body
}

func TestHealthCheck(t *testing.T) {
	rr, body := get(t, testServer(), "/health")

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if body["status"] != "healthy" {
		t.Errorf("unexpected health body: %v", body)
	}
}

func TestWeeklyPredictionsEnvelope(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/predictions/weekly?year=2024&week=11")

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %v", rr.Code, body)
	}
	if body["success"] != true {
		t.Error("success flag not set")
	}

	predictions, ok := body["predictions"].([]interface{})
	if !ok || len(predictions) == 0 {
		t.Fatalf("no predictions in response: %v", body["predictions"])
	}

	meta, ok := body["metadata"].(map[string]interface{})
	if !ok {
		t.Fatal("metadata missing")
	}
	if meta["source"] != "fallback" {
		t.Errorf("expected fallback source, got %v", meta["source"])
	}
	if meta["activity"] != "peak" {
		t.Errorf("expected peak activity on Saturday, got %v", meta["activity"])
	}
}

func TestWeeklyPredictionsDegraded(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/predictions/weekly?subagents=false")

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}

	predictions := body["predictions"].([]interface{})
	for _, raw := range predictions {
		p := raw.(map[string]interface{})
		if p["recommendation"] != "ANALYSIS_PENDING" {
			t.Errorf("expected ANALYSIS_PENDING, got %v", p["recommendation"])
		}
		if p["confidence"] != "LOW" {
			t.Errorf("expected LOW confidence, got %v", p["confidence"])
		}
	}
}

func TestCachedTeamsStatusDiagnostics(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/teams/cached?year=2024&status=true")

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}

	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("diagnostics missing: %v", body)
	}
	if data["optimalCaching"] != "1 hour (game day)" {
		t.Errorf("optimalCaching = %v", data["optimalCaching"])
	}
	if data["isGameDay"] != true {
		t.Errorf("isGameDay = %v", data["isGameDay"])
	}
	if _, hasTeams := body["teams"]; hasTeams {
		t.Error("status request should not include the team payload")
	}
}

func TestCachedTeamsStatusListsEntries(t *testing.T) {
	srv := testServer()

	// Warm the cache, then ask for diagnostics
	if rr, _ := get(t, srv, "/api/v1/teams/cached?year=2024"); rr.Code != http.StatusOK {
		t.Fatalf("warmup status %d", rr.Code)
	}
	_, body := get(t, srv, "/api/v1/teams/cached?year=2024&status=true")

	meta := body["metadata"].(map[string]interface{})
	entries, ok := meta["entries"].([]interface{})
	if !ok || len(entries) == 0 {
		t.Fatalf("no cache entries in diagnostics: %v", meta["entries"])
	}

	found := false
	for _, raw := range entries {
		entry := raw.(map[string]interface{})
		if entry["key"] == "teams:2024" {
			found = true
			if entry["activity"] != "peak" {
				t.Errorf("entry activity = %v", entry["activity"])
			}
			if entry["age_seconds"].(float64) != 0 {
				t.Errorf("entry age = %v, want 0 under a pinned clock", entry["age_seconds"])
			}
		}
	}
	if !found {
		t.Error("warmed teams:2024 key not listed in diagnostics")
	}
}

func TestScoreboardFallback(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/scoreboard")

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	data, ok := body["data"].([]interface{})
	if !ok || len(data) == 0 {
		t.Fatal("empty scoreboard payload")
	}
	meta := body["metadata"].(map[string]interface{})
	if meta["source"] != "fallback" {
		t.Errorf("expected fallback source, got %v", meta["source"])
	}

	first := data[0].(map[string]interface{})
	if first["home_team"] == "" || first["away_team"] == "" {
		t.Errorf("score row missing sides: %v", first)
	}
}

func TestScoreboardDateValidation(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/scoreboard?date=11-09-2024")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rr.Code)
	}
	if body["success"] != false {
		t.Error("error envelope should have success=false")
	}
}

func TestConferenceUnionCounts(t *testing.T) {
	srv := testServer()

	count := func(slug string) int {
		rr, body := get(t, srv, "/api/v1/conferences/"+slug)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status %d", slug, rr.Code)
		}
		teams, ok := body["teams"].([]interface{})
		if !ok {
			t.Fatalf("%s: no teams array", slug)
		}
		return len(teams)
	}

	all := count("all")
	fbs := count("fbs")
	fcs := count("fcs")
	if all != fbs+fcs {
		t.Errorf("all (%d) != fbs (%d) + fcs (%d)", all, fbs, fcs)
	}
}

func TestConferenceUnknownSlug(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/conferences/moon-league")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rr.Code)
	}
	if body["success"] != false {
		t.Error("error envelope should have success=false")
	}
}

func TestConferenceTestTruncation(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/conferences/all?test=true")

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	teams := body["teams"].([]interface{})
	if len(teams) > 4 {
		t.Errorf("test mode returned %d teams, want at most 4", len(teams))
	}
}

func TestConferenceSortDescending(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/conferences/all?sortBy=rating&order=desc")

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}

	teams := body["teams"].([]interface{})
	var prev float64 = 1e9
	for _, raw := range teams {
		rating := raw.(map[string]interface{})["rating"].(float64)
		if rating > prev {
			t.Fatalf("teams not sorted descending by rating")
		}
		prev = rating
	}
}

func TestTeamSlugValidation(t *testing.T) {
	rr, _ := get(t, testServer(), "/api/v1/teams/Georgia")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("uppercase slug: status %d, want 400", rr.Code)
	}
}

func TestTeamNotFound(t *testing.T) {
	rr, _ := get(t, testServer(), "/api/v1/teams/no-such-team")
	if rr.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", rr.Code)
	}
}

func TestTeamBySlug(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/teams/georgia")

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	data := body["data"].(map[string]interface{})
	if data["school"] != "Georgia" {
		t.Errorf("wrong team: %v", data["school"])
	}
}

func TestRatingsEndpoints(t *testing.T) {
	srv := testServer()

	for _, path := range []string{"/api/v1/ratings/sp", "/api/v1/ratings/ppa"} {
		rr, body := get(t, srv, path)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status %d", path, rr.Code)
		}
		data, ok := body["data"].([]interface{})
		if !ok || len(data) == 0 {
			t.Errorf("%s: empty ratings payload", path)
		}
		meta := body["metadata"].(map[string]interface{})
		if meta["description"] == nil {
			t.Errorf("%s: missing description metadata", path)
		}
	}
}

func TestNewsEndpoint(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/news")

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	data, ok := body["data"].([]interface{})
	if !ok || len(data) == 0 {
		t.Error("empty news payload")
	}
}

func TestRankingsEndpoint(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/rankings")

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	data, ok := body["data"].([]interface{})
	if !ok || len(data) == 0 {
		t.Fatal("empty rankings payload")
	}
	first := data[0].(map[string]interface{})
	if first["rank"].(float64) != 1 {
		t.Errorf("first entry rank = %v", first["rank"])
	}
}

func TestPredictionHistoryEmptyWithoutStore(t *testing.T) {
	rr, body := get(t, testServer(), "/api/v1/predictions/history")

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if body["success"] != true {
		t.Error("history without a store should still succeed")
	}
	predictions, ok := body["predictions"].([]interface{})
	if !ok {
		t.Fatalf("predictions not an array: %v", body["predictions"])
	}
	if len(predictions) != 0 {
		t.Errorf("expected empty history, got %d entries", len(predictions))
	}
}

func TestRequestIDHeader(t *testing.T) {
	rr, _ := get(t, testServer(), "/health")
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}
