package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/faults"
	"github.com/fortuna/gridiron/internal/normalize"
	"github.com/fortuna/gridiron/internal/service"
)

// slugPattern validates path-derived team slugs
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	teams       *service.TeamService
	predictions *service.PredictionService
	scores      *service.ScoreService
	news        *service.NewsService
	ratings     *service.RatingsService
	rankings    *service.RankingsService
	cache       *cache.Store

	now func() time.Time
}

// NewHandler creates a new handler
func NewHandler(teams *service.TeamService, predictions *service.PredictionService, scores *service.ScoreService, news *service.NewsService, ratings *service.RatingsService, rankings *service.RankingsService, cacheStore *cache.Store) *Handler {
	return &Handler{
		teams:       teams,
		predictions: predictions,
		scores:      scores,
		news:        news,
		ratings:     ratings,
		rankings:    rankings,
		cache:       cacheStore,
		now:         time.Now,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "gridiron",
		"version": "1.0.0",
	})
}

// GetWeeklyPredictions returns the scored slate for a season week.
// subagents=false bypasses the scorer and returns ANALYSIS_PENDING
// placeholders.
func (h *Handler) GetWeeklyPredictions(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", service.CurrentSeason(h.now()))
	week := queryInt(r, "week", 1)
	subagents := queryBool(r, "subagents", true)

	result, entry, cached, err := h.predictions.Weekly(r.Context(), year, week, subagents)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to build weekly predictions", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"predictions": result.Predictions,
		"summary":     result.Summary,
		"metadata": cacheMetadata(entry, cached, map[string]interface{}{
			"year":      year,
			"week":      week,
			"subagents": subagents,
			"source":    result.Source,
		}),
	})
}

// GetPredictionHistory returns recently persisted predictions. With no
// history store configured the list is empty, never an error.
func (h *Handler) GetPredictionHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)

	predictions, err := h.predictions.History(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch prediction history", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"predictions": predictions,
		"metadata": map[string]interface{}{
			"count": len(predictions),
			"limit": limit,
		},
	})
}

// GetCachedTeams returns the schedule-aware cached team directory.
// status=true returns only cache diagnostics, no payload.
func (h *Handler) GetCachedTeams(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", service.CurrentSeason(h.now()))

	if queryBool(r, "status", false) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    cache.Diagnose(h.now()),
			"metadata": map[string]interface{}{
				"year":    year,
				"entries": h.cacheEntries(),
			},
		})
		return
	}

	payload, entry, cached, err := h.teams.Teams(r.Context(), year)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch teams", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"teams":   payload.Teams,
		"metadata": cacheMetadata(entry, cached, map[string]interface{}{
			"year":   year,
			"count":  len(payload.Teams),
			"source": payload.Source,
		}),
	})
}

// GetTeam returns a single team by slug
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if !slugPattern.MatchString(slug) {
		respondError(w, http.StatusBadRequest, "Invalid team slug", faults.NewValidationError("slug", "must match ^[a-z0-9-]+$"))
		return
	}

	year := queryInt(r, "year", service.CurrentSeason(h.now()))

	team, err := h.teams.TeamBySlug(r.Context(), year, slug)
	if err != nil {
		if errors.Is(err, faults.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Team not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch team", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    team,
		"metadata": map[string]interface{}{
			"year": year,
			"slug": slug,
		},
	})
}

// GetConference returns the teams in a conference with optional
// sorting, truncation, and logo verification.
func (h *Handler) GetConference(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]
	if !slugPattern.MatchString(slug) {
		respondError(w, http.StatusBadRequest, "Invalid conference slug", faults.NewValidationError("slug", "must match ^[a-z0-9-]+$"))
		return
	}

	year := queryInt(r, "year", service.CurrentSeason(h.now()))

	payload, entry, cached, err := h.teams.Conference(r.Context(), year, slug)
	if err != nil {
		if errors.Is(err, faults.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Unknown conference", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch conference", err)
		return
	}

	// Logo verification replaces the team payload entirely
	if r.URL.Query().Get("logos") == "verify" {
		statuses := h.teams.VerifyLogos(r.Context(), payload.Teams)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    statuses,
			"metadata": map[string]interface{}{
				"conference": slug,
				"checked":    len(statuses),
			},
		})
		return
	}

	teams := payload.Teams
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		teams = normalize.SortTeams(teams, sortBy, r.URL.Query().Get("order"))
	}
	if limit := queryInt(r, "limit", 0); limit > 0 {
		teams = normalize.Truncate(teams, limit)
	}
	if queryBool(r, "test", false) {
		teams = normalize.Truncate(teams, 4)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"teams":   teams,
		"metadata": cacheMetadata(entry, cached, map[string]interface{}{
			"conference": slug,
			"year":       year,
			"count":      len(teams),
			"source":     payload.Source,
		}),
	})
}

// cacheEntries snapshots the currently held cache keys with their
// freshness, for the status diagnostics response
func (h *Handler) cacheEntries() []map[string]interface{} {
	keys := h.cache.Keys()
	sort.Strings(keys)

	entries := make([]map[string]interface{}, 0, len(keys))
	for _, key := range keys {
		entry := h.cache.Peek(key)
		if entry == nil {
			continue
		}
		entries = append(entries, map[string]interface{}{
			"key":          key,
			"activity":     entry.Activity,
			"ttl_seconds":  entry.TTLSeconds,
			"age_seconds":  int(entry.Age(h.now()).Seconds()),
			"refreshed_at": entry.RefreshedAt,
		})
	}
	return entries
}

// GetScoreboard returns live scores, optionally for a specific date
// (YYYYMMDD)
func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("20060102", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid date, expected YYYYMMDD", faults.NewValidationError("date", "must match YYYYMMDD"))
			return
		}
		date = parsed
	}

	payload, entry, cached, err := h.scores.Scoreboard(r.Context(), date)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch scoreboard", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    payload.Scores,
		"metadata": cacheMetadata(entry, cached, map[string]interface{}{
			"count":  len(payload.Scores),
			"source": payload.Source,
		}),
	})
}

// GetSPRatings returns SP+ ratings in the upstream shape
func (h *Handler) GetSPRatings(w http.ResponseWriter, r *http.Request) {
	h.serveRatings(w, r, "SP+ composite team ratings", h.ratings.SP)
}

// GetPPARatings returns predicted-points-added metrics in the upstream shape
func (h *Handler) GetPPARatings(w http.ResponseWriter, r *http.Request) {
	h.serveRatings(w, r, "Predicted points added per play", h.ratings.PPA)
}

func (h *Handler) serveRatings(w http.ResponseWriter, r *http.Request, description string, fetch func(ctx context.Context, year int) (*service.RatingsPayload, *cache.Entry, bool, error)) {
	year := queryInt(r, "year", service.CurrentSeason(h.now()))

	payload, entry, cached, err := fetch(r.Context(), year)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch ratings", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    payload.Ratings,
		"metadata": cacheMetadata(entry, cached, map[string]interface{}{
			"year":        year,
			"description": description,
			"count":       len(payload.Ratings),
			"source":      payload.Source,
		}),
	})
}

// GetNews returns normalized, relevance-filtered news items
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	payload, entry, cached, err := h.news.News(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch news", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    payload.Items,
		"metadata": cacheMetadata(entry, cached, map[string]interface{}{
			"count":  len(payload.Items),
			"source": payload.Source,
		}),
	})
}

// GetRankings returns the current AP Top 25 poll
func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	payload, entry, cached, err := h.rankings.Rankings(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch rankings", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    payload.Entries,
		"metadata": cacheMetadata(entry, cached, map[string]interface{}{
			"poll":   "AP Top 25",
			"count":  len(payload.Entries),
			"source": payload.Source,
		}),
	})
}

// cacheMetadata merges cache freshness fields into response metadata
func cacheMetadata(entry *cache.Entry, cached bool, extra map[string]interface{}) map[string]interface{} {
	meta := map[string]interface{}{
		"cached":       cached,
		"activity":     entry.Activity,
		"ttl_seconds":  entry.TTLSeconds,
		"refreshed_at": entry.RefreshedAt,
	}
	for k, v := range extra {
		meta[k] = v
	}
	return meta
}

// queryInt parses an integer query parameter with a default
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// queryBool parses a boolean query parameter with a default
func queryBool(r *http.Request, name string, def bool) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"success": false,
		"error":   message,
		"status":  status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
