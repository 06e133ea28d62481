package oddsmath

import (
	"fmt"
	"math"
)

// AmericanToDecimal converts American odds to decimal odds
// American +150 → Decimal 2.50
// American -150 → Decimal 1.67
func AmericanToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, fmt.Errorf("invalid American odds: cannot be 0")
	}

	if american > 0 {
		return (float64(american) / 100.0) + 1.0, nil
	}

	return (100.0 / float64(-american)) + 1.0, nil
}

// AmericanToImpliedProbability converts American odds to the
// bookmaker's implied probability (vig included)
func AmericanToImpliedProbability(american int) (float64, error) {
	decimal, err := AmericanToDecimal(american)
	if err != nil {
		return 0, err
	}
	return 1.0 / decimal, nil
}

// RemoveVigMultiplicative removes vig from a two-way market by
// normalizing both implied probabilities to sum to 1.0. Standard method
// for moneyline pairs.
func RemoveVigMultiplicative(prob1, prob2 float64) (fair1, fair2 float64, err error) {
	if prob1 <= 0 || prob1 >= 1 || prob2 <= 0 || prob2 >= 1 {
		return 0, 0, fmt.Errorf("probabilities must be between 0 and 1")
	}

	totalProb := prob1 + prob2
	if totalProb <= 1.0 {
		return 0, 0, fmt.Errorf("no vig detected: probabilities sum to <= 1.0")
	}

	return prob1 / totalProb, prob2 / totalProb, nil
}

// CalculateEdge calculates the percentage edge of a model probability
// over the market's implied probability.
// Edge = (Model / Market) - 1; positive = +EV.
func CalculateEdge(modelProbability, marketProbability float64) (float64, error) {
	if modelProbability <= 0 || modelProbability >= 1 {
		return 0, fmt.Errorf("model probability must be between 0 and 1")
	}
	if marketProbability <= 0 || marketProbability >= 1 {
		return 0, fmt.Errorf("market probability must be between 0 and 1")
	}

	return (modelProbability / marketProbability) - 1.0, nil
}

// SpreadToWinProbability approximates a home win probability from a
// home-relative point spread (negative = home favored). College spreads
// move win probability roughly 2.7% per point; the result is clamped
// away from the extremes.
func SpreadToWinProbability(spread float64) float64 {
	p := 0.5 + (-spread * 0.027)
	return Clamp(p, 0.02, 0.98)
}

// FractionalKelly computes a bankroll fraction for a bet with model
// probability p at decimal odds, scaled by fraction and capped at maxPct.
// Returns 0 when the full Kelly is non-positive.
func FractionalKelly(p, decimal, fraction, maxPct float64) float64 {
	b := decimal - 1.0
	if b <= 0 {
		return 0
	}
	q := 1.0 - p

	kelly := (b*p - q) / b
	if kelly <= 0 {
		return 0
	}

	stake := kelly * fraction
	if stake > maxPct {
		stake = maxPct
	}
	return stake
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round4 rounds to four decimal places for display
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
