package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/faults"
	"github.com/fortuna/gridiron/internal/ingest/espn"
	"github.com/fortuna/gridiron/internal/mock"
	"github.com/fortuna/gridiron/internal/models"
	"github.com/fortuna/gridiron/internal/normalize"
)

// ScoresPayload is the cached scoreboard for one date
type ScoresPayload struct {
	Scores []models.ScoreUpdate `json:"scores"`
	Source string               `json:"source"`
}

// ScoreService serves the live scoreboard. A zero date means the
// provider's current slate.
type ScoreService struct {
	espn  *espn.Client
	cache *cache.Store
}

// NewScoreService creates a score service
func NewScoreService(espnClient *espn.Client, store *cache.Store) *ScoreService {
	return &ScoreService{
		espn:  espnClient,
		cache: store,
	}
}

// Scoreboard returns score updates for a date
func (s *ScoreService) Scoreboard(ctx context.Context, date time.Time) (*ScoresPayload, *cache.Entry, bool, error) {
	key := "scoreboard:today"
	if !date.IsZero() {
		key = "scoreboard:" + date.Format("20060102")
	}

	entry, cached, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		return s.loadScores(ctx, date)
	})
	if err != nil {
		return nil, nil, false, err
	}

	payload, ok := entry.Payload.(*ScoresPayload)
	if !ok {
		payload = &ScoresPayload{}
		if err := entry.DecodePayload(payload); err != nil {
			return nil, nil, false, fmt.Errorf("unexpected cache payload for %s: %w", key, err)
		}
	}
	return payload, entry, cached, nil
}

func (s *ScoreService) loadScores(ctx context.Context, date time.Time) (interface{}, error) {
	if s.espn == nil {
		return &ScoresPayload{Scores: mock.Scores(), Source: SourceFallback}, nil
	}

	raw, err := s.espn.FetchScoreboard(ctx, date)
	if err != nil {
		if faults.IsRecoverable(err) {
			log.Printf("[scores] scoreboard unavailable, serving bundled scores: %v", err)
			return &ScoresPayload{Scores: mock.Scores(), Source: SourceFallback}, nil
		}
		return nil, err
	}

	scores := normalize.ScoresFromESPN(raw)
	log.Printf("[scores] scoreboard carries %d games", len(scores))

	return &ScoresPayload{Scores: scores, Source: SourceLive}, nil
}
