package normalize

import (
	"fmt"
	"math"
	"time"

	"github.com/fortuna/gridiron/internal/models"
)

// GamesFromCFBD maps CFBD /games and /lines payloads into matchup
// contexts, attaching team metrics from the provided team list. Games
// whose home and away side resolve to the same school are dropped.
func GamesFromCFBD(gamesRaw, linesRaw []interface{}, teams []models.TeamRecord) []models.GameContext {
	bySchool := make(map[string]models.TeamRecord, len(teams))
	for _, t := range teams {
		bySchool[t.School] = t
	}

	linesByGame := linesIndex(linesRaw)

	games := make([]models.GameContext, 0, len(gamesRaw))
	for _, item := range gamesRaw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		homeSchool := firstString(entry, "homeTeam", "home_team")
		awaySchool := firstString(entry, "awayTeam", "away_team")
		if homeSchool == "" || awaySchool == "" || homeSchool == awaySchool {
			continue
		}

		id := extractString(entry, "id")
		if id == "" {
			if n := extractInt(entry, "id"); n > 0 {
				id = fmt.Sprintf("%d", n)
			}
		}

		game := models.GameContext{
			ID:       id,
			Season:   extractInt(entry, "season"),
			Week:     extractInt(entry, "week"),
			Venue:    extractString(entry, "venue"),
			HomeTeam: teamOrShell(bySchool, homeSchool),
			AwayTeam: teamOrShell(bySchool, awaySchool),
		}

		if kickoff := firstString(entry, "startDate", "start_date"); kickoff != "" {
			if ts, err := time.Parse(time.RFC3339, kickoff); err == nil {
				game.Kickoff = ts
			}
		}

		if lines, ok := linesByGame[id]; ok {
			game.Lines = lines
		}

		game.DataQuality = assessQuality(&game)
		game.KeyAdvantages = keyAdvantages(&game)
		game.RiskFactors = riskFactors(&game)

		games = append(games, game)
	}

	return games
}

// linesIndex flattens a CFBD /lines payload into one BettingLines per
// game, preferring the first provider that carries a spread.
func linesIndex(raw []interface{}) map[string]models.BettingLines {
	index := make(map[string]models.BettingLines, len(raw))

	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		id := extractString(entry, "id")
		if id == "" {
			if n := extractInt(entry, "id"); n > 0 {
				id = fmt.Sprintf("%d", n)
			}
		}
		if id == "" {
			continue
		}

		for _, lineItem := range extractArray(entry, "lines") {
			line, ok := lineItem.(map[string]interface{})
			if !ok {
				continue
			}

			lines := models.BettingLines{
				Spread:        extractFloat(line, "spread"),
				Total:         firstFloat(line, "overUnder", "over_under"),
				HomeMoneyline: extractInt(line, "homeMoneyline"),
				AwayMoneyline: extractInt(line, "awayMoneyline"),
				Provider:      extractString(line, "provider"),
			}
			if updated := extractString(line, "lastUpdated"); updated != "" {
				if ts, err := time.Parse(time.RFC3339, updated); err == nil {
					lines.LastUpdated = ts
				}
			}

			if lines.Spread != 0 || lines.HomeMoneyline != 0 {
				index[id] = lines
				break
			}
		}
	}

	return index
}

func teamOrShell(bySchool map[string]models.TeamRecord, school string) models.TeamRecord {
	if team, ok := bySchool[school]; ok {
		return team
	}
	return models.TeamRecord{
		School: school,
		Slug:   Slugify(school),
		Logos:  []string{},
	}
}

func assessQuality(g *models.GameContext) models.DataQuality {
	q := models.DataQuality{
		BettingLinesAvailable: g.Lines.Spread != 0 || g.Lines.HomeMoneyline != 0,
		MetricsAvailable:      g.HomeTeam.Rating != 0 && g.AwayTeam.Rating != 0,
	}

	score := 0.0
	if q.BettingLinesAvailable {
		score += 40
	}
	if q.MetricsAvailable {
		score += 40
	}
	if g.HomeTeam.PPA != 0 && g.AwayTeam.PPA != 0 {
		score += 10
	}
	if g.HomeTeam.Explosiveness != 0 && g.AwayTeam.Explosiveness != 0 {
		score += 10
	}
	q.Score = score

	return q
}

func keyAdvantages(g *models.GameContext) []string {
	advantages := []string{}

	if g.HomeTeam.Rating-g.AwayTeam.Rating > 5 {
		advantages = append(advantages, fmt.Sprintf("%s holds a clear overall rating edge", g.HomeTeam.School))
	} else if g.AwayTeam.Rating-g.HomeTeam.Rating > 5 {
		advantages = append(advantages, fmt.Sprintf("%s holds a clear overall rating edge", g.AwayTeam.School))
	}

	if g.HomeTeam.OffenseRating-g.AwayTeam.DefenseRating > 8 {
		advantages = append(advantages, fmt.Sprintf("%s offense matches up well", g.HomeTeam.School))
	}
	if g.AwayTeam.OffenseRating-g.HomeTeam.DefenseRating > 8 {
		advantages = append(advantages, fmt.Sprintf("%s offense matches up well", g.AwayTeam.School))
	}

	if math.Abs(g.HomeTeam.Explosiveness-g.AwayTeam.Explosiveness) > 0.2 {
		leader := g.HomeTeam.School
		if g.AwayTeam.Explosiveness > g.HomeTeam.Explosiveness {
			leader = g.AwayTeam.School
		}
		advantages = append(advantages, fmt.Sprintf("%s has the explosiveness edge", leader))
	}

	return advantages
}

func riskFactors(g *models.GameContext) []string {
	risks := []string{}

	if !g.DataQuality.BettingLinesAvailable {
		risks = append(risks, "no betting lines available")
	}
	if !g.DataQuality.MetricsAvailable {
		risks = append(risks, "incomplete team metrics")
	}
	if math.Abs(g.Lines.Spread) >= 21 {
		risks = append(risks, "blowout-range spread, garbage time likely")
	}
	if g.HomeTeam.Wins+g.HomeTeam.Losses < 3 || g.AwayTeam.Wins+g.AwayTeam.Losses < 3 {
		risks = append(risks, "small early-season sample")
	}

	return risks
}
