package cache

import "time"

// Activity classifications for the college football week
const (
	ActivityPeak      = "peak"
	ActivityPrimeTime = "prime-time moderate"
	ActivityPostGame  = "post-game"
	ActivityLowMod    = "low-moderate"
	ActivityLow       = "low"
	ActivityVeryLow   = "very low"
)

// Freshness is the policy output for a point in time
type Freshness struct {
	TTL      time.Duration
	Activity string
}

// Status is the diagnostic view exposed to API callers
type Status struct {
	Activity       string `json:"activity"`
	OptimalCaching string `json:"optimalCaching"`
	IsGameDay      bool   `json:"isGameDay"`
	TTLSeconds     int    `json:"ttl_seconds"`
	EvaluatedAt    string `json:"evaluated_at"`
}

// Evaluate returns the schedule-aware TTL for the given wall-clock time.
// College football activity drives refresh frequency: Saturday slates churn
// hourly, Thursday/Friday night games need a moderate window, and the early
// week barely moves. Pure function of (weekday, hour); the payload being
// cached has no influence. Hour boundaries are inclusive on both ends.
func Evaluate(t time.Time) Freshness {
	hour := t.Hour()

	switch t.Weekday() {
	case time.Thursday:
		if hour >= 12 && hour <= 18 {
			return Freshness{TTL: 2 * time.Hour, Activity: ActivityPrimeTime}
		}
		return Freshness{TTL: 8 * time.Hour, Activity: ActivityLow}
	case time.Friday:
		if hour >= 12 && hour <= 18 {
			return Freshness{TTL: 2 * time.Hour, Activity: ActivityPrimeTime}
		}
		return Freshness{TTL: 6 * time.Hour, Activity: ActivityLowMod}
	case time.Saturday:
		return Freshness{TTL: 1 * time.Hour, Activity: ActivityPeak}
	case time.Sunday:
		return Freshness{TTL: 2 * time.Hour, Activity: ActivityPostGame}
	default: // Monday, Tuesday, Wednesday
		return Freshness{TTL: 12 * time.Hour, Activity: ActivityVeryLow}
	}
}

// Diagnose returns the human-readable policy status for a point in time
func Diagnose(t time.Time) Status {
	f := Evaluate(t)

	return Status{
		Activity:       f.Activity,
		OptimalCaching: describeTTL(f),
		IsGameDay:      t.Weekday() == time.Saturday,
		TTLSeconds:     int(f.TTL.Seconds()),
		EvaluatedAt:    t.Format(time.RFC3339),
	}
}

func describeTTL(f Freshness) string {
	switch f.Activity {
	case ActivityPeak:
		return "1 hour (game day)"
	case ActivityPrimeTime:
		return "2 hours (prime-time window)"
	case ActivityPostGame:
		return "2 hours (post-game)"
	case ActivityLowMod:
		return "6 hours (off day)"
	case ActivityLow:
		return "8 hours (off day)"
	default:
		return "12 hours (quiet period)"
	}
}
