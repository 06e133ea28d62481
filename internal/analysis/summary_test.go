package analysis

import (
	"math"
	"testing"

	"github.com/fortuna/gridiron/internal/models"
)

func TestSummarizeEmptyBatch(t *testing.T) {
	summary := Summarize(nil)

	if summary.TotalGames != 0 {
		t.Errorf("expected 0 games, got %d", summary.TotalGames)
	}
	if summary.AvgValidationScore != 0 || summary.AvgStakePerPlay != 0 {
		t.Errorf("empty batch must yield zero averages, got %+v", summary)
	}
	if summary.Recommendations == nil || summary.ConfidenceBreakdown == nil {
		t.Error("distribution maps must be initialized even for empty batches")
	}
}

func TestSummarizeCounts(t *testing.T) {
	batch := []models.Prediction{
		{Recommendation: models.RecommendStrongHome, Confidence: models.ConfidenceHigh, ValueRating: 62, StakeFraction: 0.10, DataQuality: 100},
		{Recommendation: models.RecommendLeanAway, Confidence: models.ConfidenceMedium, ValueRating: 25, StakeFraction: 0.05, DataQuality: 80},
		{Recommendation: models.RecommendPass, Confidence: models.ConfidenceLow, ValueRating: 1, DataQuality: 40},
		{Recommendation: models.RecommendPass, Confidence: models.ConfidenceLow, ValueRating: 55, DataQuality: 60},
	}

	summary := Summarize(batch)

	if summary.TotalGames != 4 {
		t.Errorf("expected 4 games, got %d", summary.TotalGames)
	}
	if summary.Recommendations[models.RecommendPass] != 2 {
		t.Errorf("expected 2 PASS, got %d", summary.Recommendations[models.RecommendPass])
	}
	if summary.ConfidenceBreakdown[models.ConfidenceLow] != 2 {
		t.Errorf("expected 2 LOW, got %d", summary.ConfidenceBreakdown[models.ConfidenceLow])
	}
	if summary.HighValuePlays != 2 {
		t.Errorf("expected 2 high-value plays (rating > 50), got %d", summary.HighValuePlays)
	}
	if summary.MediumValuePlays != 1 {
		t.Errorf("expected 1 medium-value play, got %d", summary.MediumValuePlays)
	}

	// Stake totals exclude PASS entries
	if math.Abs(summary.TotalStakeAllocation-0.15) > 1e-9 {
		t.Errorf("expected total stake 0.15, got %v", summary.TotalStakeAllocation)
	}
	if math.Abs(summary.AvgStakePerPlay-0.075) > 1e-9 {
		t.Errorf("expected avg stake 0.075, got %v", summary.AvgStakePerPlay)
	}
	if summary.AvgValidationScore != 70 {
		t.Errorf("expected avg validation 70, got %v", summary.AvgValidationScore)
	}
}

func TestSummarizeAllPassBatch(t *testing.T) {
	batch := []models.Prediction{
		{Recommendation: models.RecommendPass, Confidence: models.ConfidenceLow},
		{Recommendation: models.RecommendPass, Confidence: models.ConfidenceLow},
	}

	summary := Summarize(batch)
	if summary.AvgStakePerPlay != 0 {
		t.Errorf("all-PASS batch must not divide by zero, got %v", summary.AvgStakePerPlay)
	}
}
