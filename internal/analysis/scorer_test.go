package analysis

import (
	"testing"
	"time"

	"github.com/fortuna/gridiron/internal/models"
)

func testScorer() *Scorer {
	s := NewScorer(0.25, 0.25, 2.0)
	s.now = func() time.Time {
		return time.Date(2024, time.November, 9, 12, 0, 0, 0, time.UTC)
	}
	return s
}

func fullQualityGame() models.GameContext {
	g := models.GameContext{
		ID:   "401520",
		Week: 11,
		HomeTeam: models.TeamRecord{
			School: "Georgia", Rating: 27.0, OffenseRating: 36.0, DefenseRating: 9.0,
			Explosiveness: 1.3, PPA: 0.28, Wins: 8, Losses: 1,
		},
		AwayTeam: models.TeamRecord{
			School: "Kentucky", Rating: 8.0, OffenseRating: 26.0, DefenseRating: 18.0,
			Explosiveness: 1.1, PPA: 0.05, Wins: 5, Losses: 4,
		},
		Lines: models.BettingLines{
			Spread: -14.5, Total: 47.5,
			HomeMoneyline: -450, AwayMoneyline: 340,
			Provider: "consensus",
		},
	}
	g.DataQuality = models.DataQuality{BettingLinesAvailable: true, MetricsAvailable: true, Score: 100}
	return g
}

func TestAnalyzeProducesBoundedProbability(t *testing.T) {
	p := testScorer().Analyze(fullQualityGame())

	if p.WinProbability <= 0 || p.WinProbability >= 1 {
		t.Errorf("win probability out of (0,1): %v", p.WinProbability)
	}
	if p.WinProbability <= 0.5 {
		t.Errorf("heavy home favorite should model above 0.5, got %v", p.WinProbability)
	}
	if p.MarketProb <= 0.5 {
		t.Errorf("market should favor home at -450/+340, got %v", p.MarketProb)
	}
}

func TestAnalyzeMissingLinesIsPass(t *testing.T) {
	g := fullQualityGame()
	g.Lines = models.BettingLines{}
	g.DataQuality.BettingLinesAvailable = false
	g.DataQuality.Score = 50

	p := testScorer().Analyze(g)

	if p.Recommendation != models.RecommendPass {
		t.Errorf("missing lines must yield PASS, got %s", p.Recommendation)
	}
	if p.Confidence != models.ConfidenceLow {
		t.Errorf("missing lines must yield LOW confidence, got %s", p.Confidence)
	}
	if p.StakeFraction != 0 {
		t.Errorf("PASS must carry zero stake, got %v", p.StakeFraction)
	}
}

func TestAnalyzeMissingMetricsIsPass(t *testing.T) {
	g := fullQualityGame()
	g.HomeTeam.Rating = 0
	g.DataQuality.MetricsAvailable = false
	g.DataQuality.Score = 40

	p := testScorer().Analyze(g)
	if p.Recommendation != models.RecommendPass || p.Confidence != models.ConfidenceLow {
		t.Errorf("missing metrics must yield PASS/LOW, got %s/%s", p.Recommendation, p.Confidence)
	}
}

func TestAnalyzeStakeClamp(t *testing.T) {
	g := fullQualityGame()
	// Make the model wildly more confident than the market
	g.HomeTeam.Rating = 45
	g.AwayTeam.Rating = -10
	g.Lines.HomeMoneyline = 100
	g.Lines.AwayMoneyline = -120

	p := testScorer().Analyze(g)
	if p.StakeFraction > 0.25 {
		t.Errorf("stake must clamp to 0.25, got %v", p.StakeFraction)
	}
	if p.StakeFraction < 0 {
		t.Errorf("stake must be non-negative, got %v", p.StakeFraction)
	}
}

func TestAnalyzeRecommendationSides(t *testing.T) {
	// Model likes home far more than a near-even market
	g := fullQualityGame()
	g.Lines.Spread = -1.0
	g.Lines.HomeMoneyline = -105
	g.Lines.AwayMoneyline = -115

	p := testScorer().Analyze(g)
	if p.Recommendation != models.RecommendStrongHome && p.Recommendation != models.RecommendLeanHome {
		t.Errorf("expected a home recommendation, got %s", p.Recommendation)
	}

	// Flip the matchup: model likes away side now
	g.HomeTeam, g.AwayTeam = g.AwayTeam, g.HomeTeam

	p = testScorer().Analyze(g)
	if p.Recommendation != models.RecommendStrongAway && p.Recommendation != models.RecommendLeanAway {
		t.Errorf("expected an away recommendation, got %s", p.Recommendation)
	}
}

func TestPendingPlaceholder(t *testing.T) {
	p := testScorer().Pending(fullQualityGame())

	if p.Recommendation != models.RecommendPending {
		t.Errorf("expected ANALYSIS_PENDING, got %s", p.Recommendation)
	}
	if p.Confidence != models.ConfidenceLow {
		t.Errorf("expected LOW confidence, got %s", p.Confidence)
	}
	if p.ID == "" {
		t.Error("pending prediction still needs an ID")
	}
}

func TestConfidenceQualityCap(t *testing.T) {
	if got := confidence(8.0, 100); got != models.ConfidenceHigh {
		t.Errorf("big edge at full quality should be HIGH, got %s", got)
	}
	if got := confidence(8.0, 70); got != models.ConfidenceMedium {
		t.Errorf("big edge at 70 quality caps at MEDIUM, got %s", got)
	}
	if got := confidence(8.0, 40); got != models.ConfidenceLow {
		t.Errorf("quality below 60 is always LOW, got %s", got)
	}
	if got := confidence(1.0, 100); got != models.ConfidenceLow {
		t.Errorf("sub-2%% edge is LOW, got %s", got)
	}
}
