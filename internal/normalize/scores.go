package normalize

import (
	"time"

	"github.com/fortuna/gridiron/internal/models"
)

// scoreboardDateLayouts covers the timestamp formats ESPN has used on
// scoreboard events (minute precision with and without seconds).
var scoreboardDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z",
}

// ScoresFromESPN maps an ESPN scoreboard payload into score updates.
// Events missing an identifier or either side are dropped.
func ScoresFromESPN(raw map[string]interface{}) []models.ScoreUpdate {
	events := extractArray(raw, "events")
	scores := make([]models.ScoreUpdate, 0, len(events))

	for _, e := range events {
		event, ok := e.(map[string]interface{})
		if !ok {
			continue
		}

		update := models.ScoreUpdate{
			GameID: extractString(event, "id"),
			Name:   firstString(event, "name", "shortName"),
		}
		if date := extractString(event, "date"); date != "" {
			for _, layout := range scoreboardDateLayouts {
				if ts, err := time.Parse(layout, date); err == nil {
					update.Kickoff = ts
					break
				}
			}
		}

		competitions := extractArray(event, "competitions")
		if len(competitions) == 0 {
			continue
		}
		competition, ok := competitions[0].(map[string]interface{})
		if !ok {
			continue
		}

		status := extractMap(competition, "status")
		update.Status = extractString(extractMap(status, "type"), "description")

		for _, c := range extractArray(competition, "competitors") {
			competitor, ok := c.(map[string]interface{})
			if !ok {
				continue
			}
			team := extractMap(competitor, "team")
			name := firstString(team, "displayName", "shortDisplayName", "name")
			score := extractInt(competitor, "score")

			switch extractString(competitor, "homeAway") {
			case "home":
				update.HomeTeam, update.HomeScore = name, score
			case "away":
				update.AwayTeam, update.AwayScore = name, score
			}
		}

		if update.GameID == "" || update.HomeTeam == "" || update.AwayTeam == "" {
			continue
		}
		scores = append(scores, update)
	}

	return scores
}
