package normalize

import (
	"strings"

	"github.com/fortuna/gridiron/internal/models"
)

// TeamsFromCFBD maps a CollegeFootballData /teams payload into unified
// team records. Missing optional fields degrade to zero values; the
// function never fails on payload shape.
func TeamsFromCFBD(raw []interface{}) []models.TeamRecord {
	teams := make([]models.TeamRecord, 0, len(raw))

	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		school := extractString(entry, "school")
		if school == "" {
			continue
		}

		team := models.TeamRecord{
			School:         school,
			Mascot:         extractString(entry, "mascot"),
			Slug:           Slugify(school),
			Conference:     extractString(entry, "conference"),
			Division:       extractString(entry, "division"),
			Classification: strings.ToLower(extractString(entry, "classification")),
			Logos:          extractStringArray(entry, "logos"),
		}
		if team.Classification == "" {
			team.Classification = models.ClassificationFBS
		}
		if team.Logos == nil {
			team.Logos = []string{}
		}

		teams = append(teams, team)
	}

	return teams
}

// ApplySeasonRecords merges a CFBD /records payload (win/loss totals)
// into the team list, matching by school name.
func ApplySeasonRecords(teams []models.TeamRecord, raw []interface{}) []models.TeamRecord {
	type record struct{ wins, losses int }
	bySchool := make(map[string]record, len(raw))

	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		school := extractString(entry, "team")
		if school == "" {
			continue
		}
		total := extractMap(entry, "total")
		wins := extractInt(total, "wins")
		losses := extractInt(total, "losses")
		if wins < 0 {
			wins = 0
		}
		if losses < 0 {
			losses = 0
		}
		bySchool[school] = record{wins: wins, losses: losses}
	}

	out := make([]models.TeamRecord, len(teams))
	for i, team := range teams {
		if rec, ok := bySchool[team.School]; ok {
			team.Wins = rec.wins
			team.Losses = rec.losses
		}
		out[i] = team
	}
	return out
}

// ApplySPRatings merges a CFBD /ratings/sp payload into the team list.
// SP+ ratings are unbounded and may be negative.
func ApplySPRatings(teams []models.TeamRecord, raw []interface{}) []models.TeamRecord {
	type rating struct {
		overall, offense, defense, explosiveness float64
		sosRank                                  int
	}
	bySchool := make(map[string]rating, len(raw))

	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		school := extractString(entry, "team")
		if school == "" {
			continue
		}
		offense := extractMap(entry, "offense")
		defense := extractMap(entry, "defense")
		bySchool[school] = rating{
			overall:       extractFloat(entry, "rating"),
			offense:       extractFloat(offense, "rating"),
			defense:       extractFloat(defense, "rating"),
			explosiveness: extractFloat(offense, "explosiveness"),
			sosRank:       extractInt(entry, "sosRank"),
		}
	}

	out := make([]models.TeamRecord, len(teams))
	for i, team := range teams {
		if r, ok := bySchool[team.School]; ok {
			team.Rating = r.overall
			team.OffenseRating = r.offense
			team.DefenseRating = r.defense
			team.Explosiveness = r.explosiveness
			team.SOSRank = r.sosRank
		}
		out[i] = team
	}
	return out
}

// ApplyPPA merges a CFBD /ppa/teams payload (predicted points added)
// into the team list.
func ApplyPPA(teams []models.TeamRecord, raw []interface{}) []models.TeamRecord {
	bySchool := make(map[string]float64, len(raw))

	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		school := extractString(entry, "team")
		if school == "" {
			continue
		}
		offense := extractMap(entry, "offense")
		bySchool[school] = firstFloat(offense, "overall", "cumulative")
	}

	out := make([]models.TeamRecord, len(teams))
	for i, team := range teams {
		if ppa, ok := bySchool[team.School]; ok {
			team.PPA = ppa
		}
		out[i] = team
	}
	return out
}
