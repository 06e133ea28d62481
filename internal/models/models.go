package models

import "time"

// Classification buckets for college football teams
const (
	ClassificationFBS = "fbs"
	ClassificationFCS = "fcs"
)

// TeamRecord is the unified team shape every provider payload is mapped
// into. Every field has a zero default so normalization never fails on a
// missing source field. Records are built fresh per request and never
// mutated after construction.
type TeamRecord struct {
	School         string   `json:"school"`
	Mascot         string   `json:"mascot"`
	Slug           string   `json:"slug"`
	Conference     string   `json:"conference"`
	Division       string   `json:"division"`
	Classification string   `json:"classification"`
	Wins           int      `json:"wins"`
	Losses         int      `json:"losses"`
	Rating         float64  `json:"rating"`
	OffenseRating  float64  `json:"offense_rating"`
	DefenseRating  float64  `json:"defense_rating"`
	Explosiveness  float64  `json:"explosiveness"`
	PPA            float64  `json:"ppa"`
	SOSRank        int      `json:"sos_rank"`
	ATSPercent     float64  `json:"ats_percent"`
	Logos          []string `json:"logos"`
}

// BettingLines holds market data for a single game. Spread is
// home-team-relative: negative means the home team is favored.
type BettingLines struct {
	Spread        float64   `json:"spread"`
	Total         float64   `json:"total"`
	HomeMoneyline int       `json:"home_moneyline"`
	AwayMoneyline int       `json:"away_moneyline"`
	Provider      string    `json:"provider"`
	LastUpdated   time.Time `json:"last_updated"`
}

// DataQuality describes how complete the inputs for a matchup are.
// The scorer must refuse to produce a recommendation when the
// underlying lines or metrics are missing.
type DataQuality struct {
	BettingLinesAvailable bool    `json:"betting_lines_available"`
	MetricsAvailable      bool    `json:"metrics_available"`
	Score                 float64 `json:"score"`
}

// GameContext is a single matchup with everything the scorer needs.
// Home and away teams are always distinct.
type GameContext struct {
	ID            string       `json:"id"`
	Season        int          `json:"season"`
	Week          int          `json:"week"`
	Kickoff       time.Time    `json:"kickoff"`
	Venue         string       `json:"venue"`
	HomeTeam      TeamRecord   `json:"home_team"`
	AwayTeam      TeamRecord   `json:"away_team"`
	Lines         BettingLines `json:"lines"`
	KeyAdvantages []string     `json:"key_advantages"`
	RiskFactors   []string     `json:"risk_factors"`
	DataQuality   DataQuality  `json:"data_quality"`
}

// Recommendation labels emitted by the scorer
const (
	RecommendStrongHome = "STRONG_HOME"
	RecommendLeanHome   = "LEAN_HOME"
	RecommendStrongAway = "STRONG_AWAY"
	RecommendLeanAway   = "LEAN_AWAY"
	RecommendPass       = "PASS"

	// RecommendPending is emitted in degraded mode when scoring is disabled
	RecommendPending = "ANALYSIS_PENDING"
)

// Confidence tiers
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// Risk tiers
const (
	RiskLow      = "LOW"
	RiskModerate = "MODERATE"
	RiskHigh     = "HIGH"
)

// Prediction is the scored output for one game
type Prediction struct {
	ID             string    `json:"id"`
	GameID         string    `json:"game_id"`
	Matchup        string    `json:"matchup"`
	Week           int       `json:"week"`
	Recommendation string    `json:"recommendation"`
	Confidence     string    `json:"confidence"`
	WinProbability float64   `json:"win_probability"`
	MarketProb     float64   `json:"market_probability"`
	ValueRating    float64   `json:"value_rating"`
	StakeFraction  float64   `json:"stake_fraction"`
	RiskTier       string    `json:"risk_tier"`
	KeyFactors     []string  `json:"key_factors"`
	DataQuality    float64   `json:"data_quality"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// PredictionSummary aggregates a batch of predictions. It is derived
// from the batch on every request, never mutated in place.
type PredictionSummary struct {
	TotalGames           int            `json:"total_games"`
	Recommendations      map[string]int `json:"recommendations"`
	ConfidenceBreakdown  map[string]int `json:"confidence_breakdown"`
	HighValuePlays       int            `json:"high_value_plays"`
	MediumValuePlays     int            `json:"medium_value_plays"`
	AvgValidationScore   float64        `json:"avg_validation_score"`
	TotalStakeAllocation float64        `json:"total_stake_allocation"`
	AvgStakePerPlay      float64        `json:"avg_stake_per_play"`
}

// ScoreUpdate is one scoreboard row from the live scores provider
type ScoreUpdate struct {
	GameID    string    `json:"game_id"`
	Name      string    `json:"name"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	Status    string    `json:"status"`
	Kickoff   time.Time `json:"kickoff"`
}

// NewsItem is a normalized news record from any news provider
type NewsItem struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Source      string    `json:"source"`
	Published   time.Time `json:"published"`
}

// RankingEntry is one row of a poll (AP Top 25)
type RankingEntry struct {
	Rank       int    `json:"rank"`
	School     string `json:"school"`
	Record     string `json:"record"`
	Points     int    `json:"points"`
	FirstPlace int    `json:"first_place_votes"`
}

// Matchup returns "Away @ Home" for display
func (g *GameContext) Matchup() string {
	return g.AwayTeam.School + " @ " + g.HomeTeam.School
}
