package rss

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fortuna/gridiron/internal/models"
	"github.com/mmcdole/gofeed"
)

// Fetcher pulls news items from RSS feeds. General sports feeds are not
// scoped to college football, so callers run the normalizer's relevance
// filter over the output.
type Fetcher struct {
	parser *gofeed.Parser
	feeds  []string
	maxAge time.Duration
}

// NewFetcher creates an RSS fetcher over the configured feed URLs
func NewFetcher(feeds []string) *Fetcher {
	return &Fetcher{
		parser: gofeed.NewParser(),
		feeds:  feeds,
		maxAge: 7 * 24 * time.Hour,
	}
}

// FetchAll pulls every configured feed concurrently and merges the
// results. Individual feed failures are collected, not fatal - the
// caller gets whatever items the healthy feeds produced.
func (f *Fetcher) FetchAll(ctx context.Context) ([]models.NewsItem, error) {
	var (
		mu    sync.Mutex
		items []models.NewsItem
		errs  []string
		wg    sync.WaitGroup
	)

	for _, feedURL := range f.feeds {
		wg.Add(1)
		go func(feedURL string) {
			defer wg.Done()

			fetched, err := f.fetchOne(ctx, feedURL)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err.Error())
				return
			}
			items = append(items, fetched...)
		}(feedURL)
	}
	wg.Wait()

	if len(items) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("all feeds failed: %s", strings.Join(errs, "; "))
	}

	return items, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, feedURL string) ([]models.NewsItem, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", feedURL, err)
	}

	now := time.Now()
	cutoff := now.Add(-f.maxAge)

	items := make([]models.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		published := now
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		if published.Before(cutoff) {
			continue
		}

		items = append(items, models.NewsItem{
			Title:       strings.TrimSpace(item.Title),
			Description: strings.TrimSpace(item.Description),
			Link:        item.Link,
			Source:      feed.Title,
			Published:   published,
		})
	}

	return items, nil
}
