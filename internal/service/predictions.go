package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/fortuna/gridiron/internal/analysis"
	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/faults"
	"github.com/fortuna/gridiron/internal/ingest/cfbd"
	"github.com/fortuna/gridiron/internal/mock"
	"github.com/fortuna/gridiron/internal/models"
	"github.com/fortuna/gridiron/internal/normalize"
)

// HistoryStore persists scored prediction batches for later review.
// The live request path never depends on it; writes are best-effort.
type HistoryStore interface {
	SaveBatch(ctx context.Context, predictions []models.Prediction) error
	Recent(ctx context.Context, limit int) ([]models.Prediction, error)
}

// Notifier pushes alerts for standout plays
type Notifier interface {
	AlertStrongPlays(predictions []models.Prediction)
}

// EventPublisher fans freshly scored slates out to connected clients
type EventPublisher interface {
	PublishPredictions(year, week int, summary models.PredictionSummary)
}

// GamesPayload is the cached week slate for one (season, week)
type GamesPayload struct {
	Games  []models.GameContext `json:"games"`
	Source string               `json:"source"`
}

// WeeklyPredictions is a scored week slate with its batch summary
type WeeklyPredictions struct {
	Year        int                      `json:"year"`
	Week        int                      `json:"week"`
	Source      string                   `json:"source"`
	Predictions []models.Prediction      `json:"predictions"`
	Summary     models.PredictionSummary `json:"summary"`
}

// PredictionService builds and scores week slates. Game contexts are
// cached per (season, week); predictions are scored fresh per request
// so each carries its own ID and timestamp.
type PredictionService struct {
	cfbd    *cfbd.Client
	teams   *TeamService
	scorer  *analysis.Scorer
	cache   *cache.Store
	history HistoryStore
	notify  Notifier
	events  EventPublisher
}

// NewPredictionService creates a prediction service. history, notify,
// and events may be nil when those features are not configured.
func NewPredictionService(client *cfbd.Client, teams *TeamService, scorer *analysis.Scorer, store *cache.Store, history HistoryStore, notify Notifier, events EventPublisher) *PredictionService {
	return &PredictionService{
		cfbd:    client,
		teams:   teams,
		scorer:  scorer,
		cache:   store,
		history: history,
		notify:  notify,
		events:  events,
	}
}

// Weekly scores the slate for a season week. With subagents false the
// scorer is bypassed and every prediction comes back ANALYSIS_PENDING.
func (s *PredictionService) Weekly(ctx context.Context, year, week int, subagents bool) (*WeeklyPredictions, *cache.Entry, bool, error) {
	key := fmt.Sprintf("games:%d:%d", year, week)

	entry, cached, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		return s.loadGames(ctx, year, week)
	})
	if err != nil {
		return nil, nil, false, err
	}

	payload, ok := entry.Payload.(*GamesPayload)
	if !ok {
		payload = &GamesPayload{}
		if err := entry.DecodePayload(payload); err != nil {
			return nil, nil, false, fmt.Errorf("unexpected cache payload for %s: %w", key, err)
		}
	}

	predictions := make([]models.Prediction, 0, len(payload.Games))
	for _, g := range payload.Games {
		if subagents {
			predictions = append(predictions, s.scorer.Analyze(g))
		} else {
			predictions = append(predictions, s.scorer.Pending(g))
		}
	}

	result := &WeeklyPredictions{
		Year:        year,
		Week:        week,
		Source:      payload.Source,
		Predictions: predictions,
		Summary:     analysis.Summarize(predictions),
	}

	// Persist, alert, and broadcast only on a fresh slate so a cache
	// hit does not duplicate history rows, alerts, or pushed events.
	if !cached && subagents {
		if s.history != nil {
			if err := s.history.SaveBatch(ctx, predictions); err != nil {
				log.Printf("[predictions] history write failed: %v", err)
			}
		}
		if s.notify != nil {
			s.notify.AlertStrongPlays(predictions)
		}
		if s.events != nil {
			s.events.PublishPredictions(year, week, result.Summary)
		}
	}

	return result, entry, cached, nil
}

// History returns recently persisted predictions. With no store
// configured it returns an empty list, never an error.
func (s *PredictionService) History(ctx context.Context, limit int) ([]models.Prediction, error) {
	if s.history == nil {
		return []models.Prediction{}, nil
	}
	return s.history.Recent(ctx, limit)
}

// loadGames builds the week slate. Schedule and lines fetch
// concurrently; a lines failure degrades to scoring without market data,
// a schedule failure falls back to the bundled slate.
func (s *PredictionService) loadGames(ctx context.Context, year, week int) (interface{}, error) {
	teamsPayload, _, _, err := s.teams.Teams(ctx, year)
	if err != nil {
		return nil, err
	}
	if teamsPayload.Source == SourceFallback {
		return &GamesPayload{Games: mock.Games(year, week), Source: SourceFallback}, nil
	}

	var (
		wg       sync.WaitGroup
		gamesRaw []interface{}
		linesRaw []interface{}
		gamesErr error
		linesErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		gamesRaw, gamesErr = s.cfbd.FetchGames(ctx, year, week)
	}()
	go func() {
		defer wg.Done()
		linesRaw, linesErr = s.cfbd.FetchLines(ctx, year, week)
	}()
	wg.Wait()

	if gamesErr != nil {
		if faults.IsRecoverable(gamesErr) {
			log.Printf("[predictions] schedule unavailable, serving bundled slate: %v", gamesErr)
			return &GamesPayload{Games: mock.Games(year, week), Source: SourceFallback}, nil
		}
		return nil, gamesErr
	}
	if linesErr != nil {
		log.Printf("[predictions] lines fetch failed, scoring without market data: %v", linesErr)
		linesRaw = nil
	}

	games := normalize.GamesFromCFBD(gamesRaw, linesRaw, teamsPayload.Teams)
	log.Printf("[predictions] assembled %d games for %d week %d", len(games), year, week)

	return &GamesPayload{Games: games, Source: SourceLive}, nil
}
