package rankings

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fortuna/gridiron/internal/models"
)

// rankLinePattern matches poll rows rendered as plain text, e.g.
// "1. Georgia (11-0) 1548 (52)"
var rankLinePattern = regexp.MustCompile(`^(\d{1,2})\.?\s+(.+?)\s+\((\d+-\d+)\)(?:\s+(\d+))?(?:\s+\((\d+)\))?$`)

// ParsePoll extracts AP Top 25 entries from a rendered poll page.
// The page markup shifts between weeks, so two strategies run in order:
// a table scan, then a text-line scan over list items.
func ParsePoll(doc *goquery.Document) ([]models.RankingEntry, error) {
	entries := parsePollTable(doc)

	if len(entries) == 0 {
		entries = parsePollText(doc)
	}

	log.Printf("[rankings] parsed %d poll entries", len(entries))
	return entries, nil
}

func parsePollTable(doc *goquery.Document) []models.RankingEntry {
	var entries []models.RankingEntry

	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		rank, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil || rank < 1 || rank > 25 {
			return
		}

		entry := models.RankingEntry{
			Rank:   rank,
			School: cleanSchool(cells.Eq(1).Text()),
		}
		if cells.Length() >= 3 {
			entry.Record = strings.TrimSpace(cells.Eq(2).Text())
		}
		if cells.Length() >= 4 {
			entry.Points, _ = strconv.Atoi(strings.TrimSpace(cells.Eq(3).Text()))
		}

		if entry.School != "" {
			entries = append(entries, entry)
		}
	})

	return entries
}

func parsePollText(doc *goquery.Document) []models.RankingEntry {
	var entries []models.RankingEntry

	doc.Find("li, p").Each(func(i int, s *goquery.Selection) {
		line := strings.TrimSpace(s.Text())
		m := rankLinePattern.FindStringSubmatch(line)
		if m == nil {
			return
		}

		rank, _ := strconv.Atoi(m[1])
		if rank < 1 || rank > 25 {
			return
		}

		entry := models.RankingEntry{
			Rank:   rank,
			School: cleanSchool(m[2]),
			Record: m[3],
		}
		if m[4] != "" {
			entry.Points, _ = strconv.Atoi(m[4])
		}
		if m[5] != "" {
			entry.FirstPlace, _ = strconv.Atoi(m[5])
		}

		entries = append(entries, entry)
	})

	return entries
}

// cleanSchool strips first-place vote markers like "Georgia (52)"
func cleanSchool(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "("); idx > 0 {
		s = strings.TrimSpace(s[:idx])
	}
	return s
}
