package analysis

import (
	"math"
	"time"

	"github.com/fortuna/gridiron/internal/analysis/oddsmath"
	"github.com/fortuna/gridiron/internal/models"
	"github.com/google/uuid"
)

// Scoring thresholds, in edge percentage points
const (
	strongEdge = 15.0
	highEdge   = 5.0
	lowEdge    = 2.0

	// homeFieldPoints is the generic home-field bump in rating points
	homeFieldPoints = 2.5

	// marginScale converts an estimated margin into a win probability
	// via the logistic curve; ~7 rating points ≈ 68% win probability
	marginScale = 9.0
)

// Scorer turns matchup contexts into predictions using a fixed
// heuristic model over team metrics and market prices.
type Scorer struct {
	kellyFraction float64
	maxStakePct   float64
	minEdge       float64
	now           func() time.Time
}

// NewScorer creates a scorer with the given staking parameters
func NewScorer(kellyFraction, maxStakePct, minEdge float64) *Scorer {
	return &Scorer{
		kellyFraction: kellyFraction,
		maxStakePct:   maxStakePct,
		minEdge:       minEdge,
		now:           time.Now,
	}
}

// Analyze scores one game. When betting lines or team metrics are
// missing the result is PASS with LOW confidence - the model never
// fabricates a recommendation from absent inputs.
func (s *Scorer) Analyze(g models.GameContext) models.Prediction {
	p := models.Prediction{
		ID:          uuid.NewString(),
		GameID:      g.ID,
		Matchup:     g.Matchup(),
		Week:        g.Week,
		KeyFactors:  g.KeyAdvantages,
		DataQuality: g.DataQuality.Score,
		GeneratedAt: s.now(),
	}
	if p.KeyFactors == nil {
		p.KeyFactors = []string{}
	}

	if !g.DataQuality.BettingLinesAvailable || !g.DataQuality.MetricsAvailable {
		p.Recommendation = models.RecommendPass
		p.Confidence = models.ConfidenceLow
		p.WinProbability = 0.5
		p.MarketProb = 0.5
		p.RiskTier = models.RiskHigh
		return p
	}

	modelHome := s.modelHomeProbability(&g)
	marketHome := marketHomeProbability(&g.Lines)

	p.WinProbability = oddsmath.Round4(modelHome)
	p.MarketProb = oddsmath.Round4(marketHome)

	edgeHome, errH := oddsmath.CalculateEdge(modelHome, marketHome)
	edgeAway, errA := oddsmath.CalculateEdge(1-modelHome, 1-marketHome)
	if errH != nil || errA != nil {
		p.Recommendation = models.RecommendPass
		p.Confidence = models.ConfidenceLow
		p.RiskTier = models.RiskHigh
		return p
	}
	edgeHome *= 100
	edgeAway *= 100

	backingHome := edgeHome >= edgeAway
	bestEdge := edgeAway
	if backingHome {
		bestEdge = edgeHome
	}

	p.ValueRating = oddsmath.Round4(bestEdge)
	p.RiskTier = riskTier(&g)

	if bestEdge < s.minEdge {
		p.Recommendation = models.RecommendPass
		p.Confidence = models.ConfidenceLow
		p.ValueRating = oddsmath.Round4(edgeHome)
		return p
	}

	switch {
	case backingHome && bestEdge >= strongEdge:
		p.Recommendation = models.RecommendStrongHome
	case backingHome:
		p.Recommendation = models.RecommendLeanHome
	case bestEdge >= strongEdge:
		p.Recommendation = models.RecommendStrongAway
	default:
		p.Recommendation = models.RecommendLeanAway
	}

	p.Confidence = confidence(bestEdge, g.DataQuality.Score)
	p.StakeFraction = oddsmath.Round4(s.stake(&g, modelHome, marketHome, backingHome))

	return p
}

// Pending produces the degraded placeholder emitted when scoring is
// toggled off for a request.
func (s *Scorer) Pending(g models.GameContext) models.Prediction {
	return models.Prediction{
		ID:             uuid.NewString(),
		GameID:         g.ID,
		Matchup:        g.Matchup(),
		Week:           g.Week,
		Recommendation: models.RecommendPending,
		Confidence:     models.ConfidenceLow,
		WinProbability: 0.5,
		MarketProb:     0.5,
		RiskTier:       models.RiskModerate,
		KeyFactors:     []string{},
		DataQuality:    g.DataQuality.Score,
		GeneratedAt:    s.now(),
	}
}

// modelHomeProbability estimates the home win probability from rating,
// efficiency, explosiveness, and PPA differentials plus home field.
func (s *Scorer) modelHomeProbability(g *models.GameContext) float64 {
	ratingDiff := g.HomeTeam.Rating - g.AwayTeam.Rating
	effDiff := (g.HomeTeam.OffenseRating - g.AwayTeam.DefenseRating) -
		(g.AwayTeam.OffenseRating - g.HomeTeam.DefenseRating)
	explosiveDiff := g.HomeTeam.Explosiveness - g.AwayTeam.Explosiveness
	ppaDiff := g.HomeTeam.PPA - g.AwayTeam.PPA

	margin := ratingDiff + 0.25*effDiff + 4.0*explosiveDiff + 6.0*ppaDiff + homeFieldPoints

	p := 1.0 / (1.0 + math.Exp(-margin/marginScale))
	return oddsmath.Clamp(p, 0.02, 0.98)
}

// marketHomeProbability derives the market's home win probability from
// no-vig moneylines, falling back to the spread when moneylines are
// absent.
func marketHomeProbability(lines *models.BettingLines) float64 {
	if lines.HomeMoneyline != 0 && lines.AwayMoneyline != 0 {
		homeImplied, errH := oddsmath.AmericanToImpliedProbability(lines.HomeMoneyline)
		awayImplied, errA := oddsmath.AmericanToImpliedProbability(lines.AwayMoneyline)
		if errH == nil && errA == nil {
			if fairHome, _, err := oddsmath.RemoveVigMultiplicative(homeImplied, awayImplied); err == nil {
				return fairHome
			}
		}
	}

	return oddsmath.SpreadToWinProbability(lines.Spread)
}

func (s *Scorer) stake(g *models.GameContext, modelHome, marketHome float64, backingHome bool) float64 {
	var p, decimal float64
	var moneyline int

	if backingHome {
		p = modelHome
		moneyline = g.Lines.HomeMoneyline
		decimal = 1.0 / marketHome
	} else {
		p = 1 - modelHome
		moneyline = g.Lines.AwayMoneyline
		decimal = 1.0 / (1 - marketHome)
	}

	if moneyline != 0 {
		if d, err := oddsmath.AmericanToDecimal(moneyline); err == nil {
			decimal = d
		}
	}

	return oddsmath.FractionalKelly(p, decimal, s.kellyFraction, s.maxStakePct)
}

func confidence(edge, quality float64) string {
	tier := models.ConfidenceMedium
	if edge >= highEdge {
		tier = models.ConfidenceHigh
	} else if edge < lowEdge {
		tier = models.ConfidenceLow
	}

	// Thin inputs cap the tier regardless of edge size
	if quality < 60 {
		return models.ConfidenceLow
	}
	if quality < 80 && tier == models.ConfidenceHigh {
		return models.ConfidenceMedium
	}
	return tier
}

func riskTier(g *models.GameContext) string {
	spread := math.Abs(g.Lines.Spread)

	switch {
	case g.DataQuality.Score < 60 || spread >= 17:
		return models.RiskHigh
	case g.DataQuality.Score >= 80 && spread <= 7:
		return models.RiskLow
	default:
		return models.RiskModerate
	}
}
