package analysis

import (
	"github.com/fortuna/gridiron/internal/models"
)

// Value-opportunity thresholds on the value rating
const (
	highValueThreshold   = 50.0
	mediumValueThreshold = 20.0
)

// Summarize reduces a batch of predictions into distribution counts and
// stake totals. A zero-length batch yields a well-defined zero summary;
// averages over filtered subsets guard the divisor with a floor of 1.
func Summarize(predictions []models.Prediction) models.PredictionSummary {
	summary := models.PredictionSummary{
		TotalGames:          len(predictions),
		Recommendations:     make(map[string]int),
		ConfidenceBreakdown: make(map[string]int),
	}

	var qualityTotal float64
	played := 0

	for _, p := range predictions {
		summary.Recommendations[p.Recommendation]++
		summary.ConfidenceBreakdown[p.Confidence]++
		qualityTotal += p.DataQuality

		if p.ValueRating > highValueThreshold {
			summary.HighValuePlays++
		} else if p.ValueRating > mediumValueThreshold {
			summary.MediumValuePlays++
		}

		if p.Recommendation != models.RecommendPass && p.Recommendation != models.RecommendPending {
			summary.TotalStakeAllocation += p.StakeFraction
			played++
		}
	}

	summary.AvgValidationScore = qualityTotal / float64(max(len(predictions), 1))
	summary.AvgStakePerPlay = summary.TotalStakeAllocation / float64(max(played, 1))

	return summary
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
