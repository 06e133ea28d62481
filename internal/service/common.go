package service

import "time"

// Source labels reported in response metadata. A resource is served
// entirely live or entirely from the bundled fallback dataset, never a
// mix of the two.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// CurrentSeason returns the season a date falls in. Seasons start in
// August; January bowl games belong to the prior calendar year.
func CurrentSeason(t time.Time) int {
	if t.Month() >= time.August {
		return t.Year()
	}
	return t.Year() - 1
}
