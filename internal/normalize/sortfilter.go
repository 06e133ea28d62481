package normalize

import (
	"sort"
	"strings"

	"github.com/fortuna/gridiron/internal/models"
)

// teamField resolves a caller-supplied sort field name to a numeric
// value. Unknown field names resolve to 0 for every record, which keeps
// the original order (stable sort) instead of failing.
func teamField(t *models.TeamRecord, field string) float64 {
	switch strings.ToLower(field) {
	case "wins":
		return float64(t.Wins)
	case "losses":
		return float64(t.Losses)
	case "rating", "sp", "sp_rating":
		return t.Rating
	case "offense", "offense_rating":
		return t.OffenseRating
	case "defense", "defense_rating":
		return t.DefenseRating
	case "explosiveness":
		return t.Explosiveness
	case "ppa":
		return t.PPA
	case "sos_rank", "sos":
		return float64(t.SOSRank)
	case "ats", "ats_percent":
		return t.ATSPercent
	default:
		return 0
	}
}

// SortTeams orders teams by the named field. Records missing the field
// sort as 0. Descending order is the exact reverse of ascending, so
// sorting asc then desc round-trips to the reversed slice.
func SortTeams(teams []models.TeamRecord, field, order string) []models.TeamRecord {
	out := make([]models.TeamRecord, len(teams))
	copy(out, teams)

	sort.SliceStable(out, func(i, j int) bool {
		return teamField(&out[i], field) < teamField(&out[j], field)
	})

	if strings.EqualFold(order, "desc") {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}

	return out
}

// FilterByConference keeps teams in the named conference (case-insensitive)
func FilterByConference(teams []models.TeamRecord, conference string) []models.TeamRecord {
	out := make([]models.TeamRecord, 0, len(teams))
	for _, t := range teams {
		if strings.EqualFold(t.Conference, conference) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByClassification keeps teams in the given division bucket (fbs/fcs)
func FilterByClassification(teams []models.TeamRecord, classification string) []models.TeamRecord {
	out := make([]models.TeamRecord, 0, len(teams))
	for _, t := range teams {
		if strings.EqualFold(t.Classification, classification) {
			out = append(out, t)
		}
	}
	return out
}

// Truncate limits the list to at most n records
func Truncate(teams []models.TeamRecord, n int) []models.TeamRecord {
	if n <= 0 || n >= len(teams) {
		return teams
	}
	return teams[:n]
}
