package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/ingest/espn"
	"github.com/fortuna/gridiron/internal/ingest/rss"
	"github.com/fortuna/gridiron/internal/mock"
	"github.com/fortuna/gridiron/internal/models"
	"github.com/fortuna/gridiron/internal/normalize"
)

// NewsPayload is the cached merged news list
type NewsPayload struct {
	Items  []models.NewsItem `json:"items"`
	Source string            `json:"source"`
}

// NewsService merges the ESPN college football feed with the configured
// RSS feeds. ESPN output is already scoped to the sport; RSS items pass
// through the relevance filter before merging.
type NewsService struct {
	espn  *espn.Client
	rss   *rss.Fetcher
	cache *cache.Store
}

// NewNewsService creates a news service
func NewNewsService(espnClient *espn.Client, rssFetcher *rss.Fetcher, store *cache.Store) *NewsService {
	return &NewsService{
		espn:  espnClient,
		rss:   rssFetcher,
		cache: store,
	}
}

// News returns the merged news list, newest first
func (s *NewsService) News(ctx context.Context) (*NewsPayload, *cache.Entry, bool, error) {
	entry, cached, err := s.cache.Get(ctx, "news", s.loadNews)
	if err != nil {
		return nil, nil, false, err
	}

	payload, ok := entry.Payload.(*NewsPayload)
	if !ok {
		payload = &NewsPayload{}
		if err := entry.DecodePayload(payload); err != nil {
			return nil, nil, false, fmt.Errorf("unexpected cache payload for news: %w", err)
		}
	}
	return payload, entry, cached, nil
}

// loadNews pulls both providers concurrently and merges whatever
// succeeded. Only when every provider fails does the bundled dataset
// take over.
func (s *NewsService) loadNews(ctx context.Context) (interface{}, error) {
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		items     []models.NewsItem
		failures  int
		providers int
	)

	collect := func(fetched []models.NewsItem, err error, provider string) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			log.Printf("[news] %s fetch failed: %v", provider, err)
			failures++
			return
		}
		items = append(items, fetched...)
	}

	if s.espn != nil {
		providers++
		wg.Add(1)
		go func() {
			defer wg.Done()
			raw, err := s.espn.FetchNews(ctx)
			if err != nil {
				collect(nil, err, "espn")
				return
			}
			collect(normalize.NewsFromESPN(raw), nil, "espn")
		}()
	}

	if s.rss != nil {
		providers++
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetched, err := s.rss.FetchAll(ctx)
			if err != nil {
				collect(nil, err, "rss")
				return
			}
			collect(normalize.FilterRelevant(fetched), nil, "rss")
		}()
	}
	wg.Wait()

	if len(items) == 0 {
		if failures == providers {
			log.Printf("[news] all providers failed, serving bundled items")
		}
		return &NewsPayload{Items: mock.News(), Source: SourceFallback}, nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Published.After(items[j].Published)
	})

	return &NewsPayload{Items: items, Source: SourceLive}, nil
}
