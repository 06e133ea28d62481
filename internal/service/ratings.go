package service

import (
	"context"
	"fmt"
	"log"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/faults"
	"github.com/fortuna/gridiron/internal/ingest/cfbd"
	"github.com/fortuna/gridiron/internal/mock"
)

// RatingsPayload carries a pass-through upstream ratings payload
type RatingsPayload struct {
	Ratings []interface{} `json:"ratings"`
	Source  string        `json:"source"`
}

// RatingsService serves SP+ and PPA ratings in the upstream shape.
// These endpoints pass provider data through untouched; only the
// response metadata is added.
type RatingsService struct {
	cfbd  *cfbd.Client
	cache *cache.Store
}

// NewRatingsService creates a ratings service
func NewRatingsService(client *cfbd.Client, store *cache.Store) *RatingsService {
	return &RatingsService{cfbd: client, cache: store}
}

// SP returns SP+ composite ratings for a season
func (s *RatingsService) SP(ctx context.Context, year int) (*RatingsPayload, *cache.Entry, bool, error) {
	return s.get(ctx, fmt.Sprintf("ratings:sp:%d", year), year, s.cfbd.FetchSPRatings, mock.SPRatings)
}

// PPA returns predicted-points-added metrics for a season
func (s *RatingsService) PPA(ctx context.Context, year int) (*RatingsPayload, *cache.Entry, bool, error) {
	return s.get(ctx, fmt.Sprintf("ratings:ppa:%d", year), year, s.cfbd.FetchPPA, mock.PPA)
}

func (s *RatingsService) get(ctx context.Context, key string, year int, fetch func(context.Context, int) ([]interface{}, error), fallback func() []interface{}) (*RatingsPayload, *cache.Entry, bool, error) {
	entry, cached, err := s.cache.Get(ctx, key, func(ctx context.Context) (interface{}, error) {
		raw, err := fetch(ctx, year)
		if err != nil {
			if faults.IsRecoverable(err) {
				log.Printf("[ratings] live data unavailable for %s, serving bundled dataset: %v", key, err)
				return &RatingsPayload{Ratings: fallback(), Source: SourceFallback}, nil
			}
			return nil, err
		}
		return &RatingsPayload{Ratings: raw, Source: SourceLive}, nil
	})
	if err != nil {
		return nil, nil, false, err
	}

	payload, ok := entry.Payload.(*RatingsPayload)
	if !ok {
		payload = &RatingsPayload{}
		if err := entry.DecodePayload(payload); err != nil {
			return nil, nil, false, fmt.Errorf("unexpected cache payload for %s: %w", key, err)
		}
	}
	return payload, entry, cached, nil
}
