package mock

import (
	"time"

	"github.com/fortuna/gridiron/internal/models"
)

// Deterministic fallback dataset served when provider credentials are
// missing or an upstream is down. Values are frozen so responses (and
// tests) are reproducible; live and fallback data are never mixed
// within one resource.

// Teams returns the bundled team dataset
func Teams() []models.TeamRecord {
	return []models.TeamRecord{
		{School: "Georgia", Mascot: "Bulldogs", Slug: "georgia", Conference: "SEC", Division: "East", Classification: models.ClassificationFBS,
			Wins: 11, Losses: 1, Rating: 27.3, OffenseRating: 35.8, DefenseRating: 8.5, Explosiveness: 1.29, PPA: 0.27, SOSRank: 14, ATSPercent: 58.3, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/61.png"}},
		{School: "Alabama", Mascot: "Crimson Tide", Slug: "alabama", Conference: "SEC", Division: "West", Classification: models.ClassificationFBS,
			Wins: 10, Losses: 2, Rating: 24.1, OffenseRating: 33.2, DefenseRating: 9.1, Explosiveness: 1.34, PPA: 0.24, SOSRank: 6, ATSPercent: 50.0, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/333.png"}},
		{School: "Ohio State", Mascot: "Buckeyes", Slug: "ohio-state", Conference: "Big Ten", Division: "East", Classification: models.ClassificationFBS,
			Wins: 11, Losses: 1, Rating: 26.8, OffenseRating: 37.1, DefenseRating: 10.3, Explosiveness: 1.41, PPA: 0.29, SOSRank: 22, ATSPercent: 54.5, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/194.png"}},
		{School: "Michigan", Mascot: "Wolverines", Slug: "michigan", Conference: "Big Ten", Division: "East", Classification: models.ClassificationFBS,
			Wins: 12, Losses: 0, Rating: 25.5, OffenseRating: 30.9, DefenseRating: 5.4, Explosiveness: 1.18, PPA: 0.22, SOSRank: 31, ATSPercent: 66.7, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/130.png"}},
		{School: "Texas", Mascot: "Longhorns", Slug: "texas", Conference: "Big 12", Division: "", Classification: models.ClassificationFBS,
			Wins: 10, Losses: 2, Rating: 21.7, OffenseRating: 34.0, DefenseRating: 12.3, Explosiveness: 1.37, PPA: 0.25, SOSRank: 40, ATSPercent: 41.7, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/251.png"}},
		{School: "Oklahoma", Mascot: "Sooners", Slug: "oklahoma", Conference: "Big 12", Division: "", Classification: models.ClassificationFBS,
			Wins: 9, Losses: 3, Rating: 17.2, OffenseRating: 35.5, DefenseRating: 18.3, Explosiveness: 1.44, PPA: 0.26, SOSRank: 45, ATSPercent: 50.0, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/201.png"}},
		{School: "Florida State", Mascot: "Seminoles", Slug: "florida-state", Conference: "ACC", Division: "Atlantic", Classification: models.ClassificationFBS,
			Wins: 12, Losses: 0, Rating: 19.9, OffenseRating: 31.2, DefenseRating: 11.3, Explosiveness: 1.22, PPA: 0.21, SOSRank: 55, ATSPercent: 58.3, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/52.png"}},
		{School: "Clemson", Mascot: "Tigers", Slug: "clemson", Conference: "ACC", Division: "Atlantic", Classification: models.ClassificationFBS,
			Wins: 8, Losses: 4, Rating: 15.4, OffenseRating: 27.8, DefenseRating: 12.4, Explosiveness: 1.12, PPA: 0.15, SOSRank: 38, ATSPercent: 33.3, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/228.png"}},
		{School: "Washington", Mascot: "Huskies", Slug: "washington", Conference: "Pac-12", Division: "North", Classification: models.ClassificationFBS,
			Wins: 12, Losses: 0, Rating: 20.6, OffenseRating: 36.4, DefenseRating: 15.8, Explosiveness: 1.49, PPA: 0.30, SOSRank: 28, ATSPercent: 62.5, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/264.png"}},
		{School: "Oregon", Mascot: "Ducks", Slug: "oregon", Conference: "Pac-12", Division: "North", Classification: models.ClassificationFBS,
			Wins: 11, Losses: 1, Rating: 23.9, OffenseRating: 38.0, DefenseRating: 14.1, Explosiveness: 1.52, PPA: 0.31, SOSRank: 35, ATSPercent: 58.3, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/2483.png"}},
		{School: "Tulane", Mascot: "Green Wave", Slug: "tulane", Conference: "American", Division: "", Classification: models.ClassificationFBS,
			Wins: 11, Losses: 1, Rating: 9.8, OffenseRating: 28.3, DefenseRating: 18.5, Explosiveness: 1.08, PPA: 0.14, SOSRank: 88, ATSPercent: 54.5, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/2655.png"}},
		{School: "Boise State", Mascot: "Broncos", Slug: "boise-state", Conference: "Mountain West", Division: "", Classification: models.ClassificationFBS,
			Wins: 8, Losses: 5, Rating: 7.5, OffenseRating: 29.1, DefenseRating: 21.6, Explosiveness: 1.19, PPA: 0.16, SOSRank: 92, ATSPercent: 46.2, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/68.png"}},
		{School: "North Dakota State", Mascot: "Bison", Slug: "north-dakota-state", Conference: "Missouri Valley", Division: "", Classification: models.ClassificationFCS,
			Wins: 11, Losses: 1, Rating: 12.1, OffenseRating: 27.5, DefenseRating: 15.4, Explosiveness: 1.05, PPA: 0.18, SOSRank: 120, ATSPercent: 50.0, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/2449.png"}},
		{School: "South Dakota State", Mascot: "Jackrabbits", Slug: "south-dakota-state", Conference: "Missouri Valley", Division: "", Classification: models.ClassificationFCS,
			Wins: 12, Losses: 0, Rating: 13.4, OffenseRating: 28.9, DefenseRating: 15.5, Explosiveness: 1.11, PPA: 0.20, SOSRank: 118, ATSPercent: 58.3, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/2571.png"}},
		{School: "Montana", Mascot: "Grizzlies", Slug: "montana", Conference: "Big Sky", Division: "", Classification: models.ClassificationFCS,
			Wins: 10, Losses: 2, Rating: 8.9, OffenseRating: 25.1, DefenseRating: 16.2, Explosiveness: 0.98, PPA: 0.12, SOSRank: 131, ATSPercent: 41.7, Logos: []string{"https://a.espncdn.com/i/teamlogos/ncaa/500/149.png"}},
	}
}

// Games returns a bundled week slate built over the fallback teams
func Games(year, week int) []models.GameContext {
	teams := teamIndex()
	kickoff := time.Date(year, time.November, 9, 17, 0, 0, 0, time.UTC)

	games := []models.GameContext{
		{
			ID: "900001", Season: year, Week: week, Venue: "Sanford Stadium",
			Kickoff:  kickoff,
			HomeTeam: teams["Georgia"], AwayTeam: teams["Alabama"],
			Lines: models.BettingLines{Spread: -6.5, Total: 52.5, HomeMoneyline: -245, AwayMoneyline: 200, Provider: "fallback", LastUpdated: kickoff.Add(-36 * time.Hour)},
		},
		{
			ID: "900002", Season: year, Week: week, Venue: "Ohio Stadium",
			Kickoff:  kickoff.Add(3 * time.Hour),
			HomeTeam: teams["Ohio State"], AwayTeam: teams["Michigan"],
			Lines: models.BettingLines{Spread: -3.5, Total: 45.5, HomeMoneyline: -180, AwayMoneyline: 155, Provider: "fallback", LastUpdated: kickoff.Add(-36 * time.Hour)},
		},
		{
			ID: "900003", Season: year, Week: week, Venue: "Husky Stadium",
			Kickoff:  kickoff.Add(6 * time.Hour),
			HomeTeam: teams["Washington"], AwayTeam: teams["Oregon"],
			Lines: models.BettingLines{Spread: 2.5, Total: 63.5, HomeMoneyline: 125, AwayMoneyline: -150, Provider: "fallback", LastUpdated: kickoff.Add(-24 * time.Hour)},
		},
		{
			// No lines published for this one - exercises the PASS path
			ID: "900004", Season: year, Week: week, Venue: "Yulman Stadium",
			Kickoff:  kickoff.Add(1 * time.Hour),
			HomeTeam: teams["Tulane"], AwayTeam: teams["Boise State"],
		},
	}

	for i := range games {
		games[i].DataQuality = quality(&games[i])
	}
	return games
}

// Scores returns a bundled scoreboard built over the fallback slate
func Scores() []models.ScoreUpdate {
	kickoff := time.Date(2024, time.November, 9, 17, 0, 0, 0, time.UTC)
	return []models.ScoreUpdate{
		{GameID: "900001", Name: "Alabama Crimson Tide at Georgia Bulldogs", HomeTeam: "Georgia Bulldogs", AwayTeam: "Alabama Crimson Tide",
			HomeScore: 27, AwayScore: 24, Status: "Final", Kickoff: kickoff},
		{GameID: "900002", Name: "Michigan Wolverines at Ohio State Buckeyes", HomeTeam: "Ohio State Buckeyes", AwayTeam: "Michigan Wolverines",
			HomeScore: 13, AwayScore: 17, Status: "In Progress", Kickoff: kickoff.Add(3 * time.Hour)},
		{GameID: "900003", Name: "Oregon Ducks at Washington Huskies", HomeTeam: "Washington Huskies", AwayTeam: "Oregon Ducks",
			Status: "Scheduled", Kickoff: kickoff.Add(6 * time.Hour)},
	}
}

// News returns bundled news items
func News() []models.NewsItem {
	base := time.Date(2024, time.November, 8, 9, 0, 0, 0, time.UTC)
	return []models.NewsItem{
		{Title: "Playoff picture sharpens after week 11 college football slate", Description: "Four unbeatens remain as the committee meets", Link: "https://example.com/news/1", Source: "fallback", Published: base},
		{Title: "Heisman watch: quarterback race narrows to three", Description: "Transfer portal reshaped the ballot this season", Link: "https://example.com/news/2", Source: "fallback", Published: base.Add(-4 * time.Hour)},
		{Title: "SEC title game scenarios explained", Description: "Tiebreakers and the path to Atlanta", Link: "https://example.com/news/3", Source: "fallback", Published: base.Add(-9 * time.Hour)},
	}
}

// Rankings returns a bundled AP Top 25 excerpt
func Rankings() []models.RankingEntry {
	return []models.RankingEntry{
		{Rank: 1, School: "Georgia", Record: "11-1", Points: 1548, FirstPlace: 52},
		{Rank: 2, School: "Michigan", Record: "12-0", Points: 1489, FirstPlace: 9},
		{Rank: 3, School: "Ohio State", Record: "11-1", Points: 1410},
		{Rank: 4, School: "Florida State", Record: "12-0", Points: 1389},
		{Rank: 5, School: "Washington", Record: "12-0", Points: 1320},
	}
}

// SPRatings returns the bundled team metrics in the upstream
// /ratings/sp shape, for the pass-through ratings endpoints
func SPRatings() []interface{} {
	teams := Teams()
	out := make([]interface{}, 0, len(teams))
	for _, t := range teams {
		out = append(out, map[string]interface{}{
			"team":       t.School,
			"conference": t.Conference,
			"rating":     t.Rating,
			"sosRank":    t.SOSRank,
			"offense": map[string]interface{}{
				"rating":        t.OffenseRating,
				"explosiveness": t.Explosiveness,
			},
			"defense": map[string]interface{}{
				"rating": t.DefenseRating,
			},
		})
	}
	return out
}

// PPA returns the bundled team metrics in the upstream /ppa/teams shape
func PPA() []interface{} {
	teams := Teams()
	out := make([]interface{}, 0, len(teams))
	for _, t := range teams {
		out = append(out, map[string]interface{}{
			"team":       t.School,
			"conference": t.Conference,
			"offense": map[string]interface{}{
				"overall": t.PPA,
			},
		})
	}
	return out
}

func teamIndex() map[string]models.TeamRecord {
	index := make(map[string]models.TeamRecord)
	for _, t := range Teams() {
		index[t.School] = t
	}
	return index
}

func quality(g *models.GameContext) models.DataQuality {
	q := models.DataQuality{
		BettingLinesAvailable: g.Lines.Spread != 0 || g.Lines.HomeMoneyline != 0,
		MetricsAvailable:      g.HomeTeam.Rating != 0 && g.AwayTeam.Rating != 0,
	}
	if q.BettingLinesAvailable {
		q.Score += 50
	}
	if q.MetricsAvailable {
		q.Score += 50
	}
	return q
}
