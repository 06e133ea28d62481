package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/ingest/rankings"
	"github.com/fortuna/gridiron/internal/mock"
	"github.com/fortuna/gridiron/internal/models"
)

// RankingsPayload is the cached AP Top 25 poll
type RankingsPayload struct {
	Entries []models.RankingEntry `json:"entries"`
	Source  string                `json:"source"`
}

// RankingsService serves the AP Top 25 poll. Scraping is optional; with
// no scraper configured the bundled poll excerpt is served instead.
type RankingsService struct {
	scraper *rankings.Client
	cache   *cache.Store
}

// NewRankingsService creates a rankings service. scraper may be nil.
func NewRankingsService(scraper *rankings.Client, store *cache.Store) *RankingsService {
	return &RankingsService{scraper: scraper, cache: store}
}

// Rankings returns the current poll
func (s *RankingsService) Rankings(ctx context.Context) (*RankingsPayload, *cache.Entry, bool, error) {
	entry, cached, err := s.cache.Get(ctx, "rankings", s.loadRankings)
	if err != nil {
		return nil, nil, false, err
	}

	payload, ok := entry.Payload.(*RankingsPayload)
	if !ok {
		payload = &RankingsPayload{}
		if err := entry.DecodePayload(payload); err != nil {
			return nil, nil, false, fmt.Errorf("unexpected cache payload for rankings: %w", err)
		}
	}
	return payload, entry, cached, nil
}

func (s *RankingsService) loadRankings(ctx context.Context) (interface{}, error) {
	if s.scraper == nil {
		return &RankingsPayload{Entries: mock.Rankings(), Source: SourceFallback}, nil
	}

	html, err := s.scraper.FetchPollHTML(ctx)
	if err != nil {
		log.Printf("[rankings] poll fetch failed, serving bundled poll: %v", err)
		return &RankingsPayload{Entries: mock.Rankings(), Source: SourceFallback}, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		log.Printf("[rankings] poll page unreadable, serving bundled poll: %v", err)
		return &RankingsPayload{Entries: mock.Rankings(), Source: SourceFallback}, nil
	}

	entries, err := rankings.ParsePoll(doc)
	if err != nil || len(entries) == 0 {
		log.Printf("[rankings] poll parse yielded nothing, serving bundled poll")
		return &RankingsPayload{Entries: mock.Rankings(), Source: SourceFallback}, nil
	}

	return &RankingsPayload{Entries: entries, Source: SourceLive}, nil
}
