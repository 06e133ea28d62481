package normalize

import (
	"strings"
	"time"

	"github.com/fortuna/gridiron/internal/models"
)

// relevanceKeywords is the fixed set used to keep general news feeds
// scoped to college football. Matching is case-insensitive substring.
var relevanceKeywords = []string{
	"college football",
	"cfb",
	"ncaa",
	"fbs",
	"fcs",
	"heisman",
	"bowl",
	"playoff",
	"quarterback",
	"recruiting",
	"transfer portal",
	"sec",
	"big ten",
	"big 12",
	"acc",
}

// Relevant reports whether a news item looks football-related
func Relevant(title, description string) bool {
	haystack := strings.ToLower(title + " " + description)
	for _, kw := range relevanceKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// FilterRelevant keeps only football-related items. Providers whose
// output is already scoped (ESPN college-football endpoints) skip this.
func FilterRelevant(items []models.NewsItem) []models.NewsItem {
	out := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		if Relevant(item.Title, item.Description) {
			out = append(out, item)
		}
	}
	return out
}

// NewsFromESPN maps an ESPN news payload into normalized items. The
// endpoint is already scoped to college football, so no relevance
// filtering is applied here.
func NewsFromESPN(raw map[string]interface{}) []models.NewsItem {
	articles := extractArray(raw, "articles")
	items := make([]models.NewsItem, 0, len(articles))

	for _, a := range articles {
		article, ok := a.(map[string]interface{})
		if !ok {
			continue
		}

		item := models.NewsItem{
			Title:       extractString(article, "headline"),
			Description: extractString(article, "description"),
			Source:      "espn",
		}
		if item.Title == "" {
			continue
		}

		links := extractMap(article, "links")
		web := extractMap(links, "web")
		item.Link = extractString(web, "href")

		if published := extractString(article, "published"); published != "" {
			if ts, err := time.Parse(time.RFC3339, published); err == nil {
				item.Published = ts
			}
		}

		items = append(items, item)
	}

	return items
}
