package normalize

import (
	"testing"
	"time"
)

func scoreboardFixture() map[string]interface{} {
	return map[string]interface{}{
		"events": []interface{}{
			map[string]interface{}{
				"id":   "401520281",
				"name": "Alabama Crimson Tide at Georgia Bulldogs",
				"date": "2024-11-09T17:00Z",
				"competitions": []interface{}{
					map[string]interface{}{
						"status": map[string]interface{}{
							"type": map[string]interface{}{"description": "Final"},
						},
						"competitors": []interface{}{
							map[string]interface{}{
								"homeAway": "home",
								"score":    "27",
								"team":     map[string]interface{}{"displayName": "Georgia Bulldogs"},
							},
							map[string]interface{}{
								"homeAway": "away",
								"score":    "24",
								"team":     map[string]interface{}{"displayName": "Alabama Crimson Tide"},
							},
						},
					},
				},
			},
			// no competitions, must be dropped
			map[string]interface{}{
				"id":   "401520282",
				"name": "Broken Event",
			},
		},
	}
}

func TestScoresFromESPN(t *testing.T) {
	scores := ScoresFromESPN(scoreboardFixture())

	if len(scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(scores))
	}

	s := scores[0]
	if s.GameID != "401520281" {
		t.Errorf("game id = %q", s.GameID)
	}
	if s.HomeTeam != "Georgia Bulldogs" || s.AwayTeam != "Alabama Crimson Tide" {
		t.Errorf("sides mapped wrong: home=%q away=%q", s.HomeTeam, s.AwayTeam)
	}
	if s.HomeScore != 27 || s.AwayScore != 24 {
		t.Errorf("scores = %d-%d, want 27-24", s.HomeScore, s.AwayScore)
	}
	if s.Status != "Final" {
		t.Errorf("status = %q", s.Status)
	}

	want := time.Date(2024, time.November, 9, 17, 0, 0, 0, time.UTC)
	if !s.Kickoff.Equal(want) {
		t.Errorf("kickoff = %v, want %v", s.Kickoff, want)
	}
}

func TestScoresFromESPNEmptyPayload(t *testing.T) {
	if scores := ScoresFromESPN(map[string]interface{}{}); len(scores) != 0 {
		t.Errorf("expected no scores, got %d", len(scores))
	}
}
