// Package usage folds completed trips into per-gear usage statistics.
package usage

import (
	"math"

	"github.com/pkordes/gear-planner/internal/domain"
)

// Apply folds one trip gear link of a completed trip into stats.
// It mutates only stats and has no side effects, so links can be applied in
// any order.
func Apply(stats *domain.UsageStats, trip domain.Trip, link domain.TripGearLink) {
	if link.Packed {
		stats.TimesPacked++
		if link.Used {
			stats.TimesUsed++
		} else {
			stats.TimesNotUsed++
		}
	}

	for _, a := range trip.Activities {
		stats.UsageByActivity = stats.UsageByActivity.Inc(a)
	}
	if len(trip.ExpectedWeather) > 0 {
		stats.UsageByWeather = stats.UsageByWeather.Inc(domain.WeatherKey(trip.ExpectedWeather))
	}
	stats.UsageByDuration = stats.UsageByDuration.Inc(domain.DurationBucket(trip.DurationDays))

	if link.UsefulnessRating != nil && stats.TimesPacked > 0 {
		avg := RunningAverage(stats.AvgUsefulnessRating, stats.TimesPacked, *link.UsefulnessRating)
		stats.AvgUsefulnessRating = &avg
	}

	end := trip.EndDate
	stats.LastUsedDate = &end
}

// RunningAverage weights old by n-1 samples, adds rating and rounds to two
// decimal places. A nil old average counts as zero. n must be positive.
func RunningAverage(old *float64, n int, rating int) float64 {
	var prev float64
	if old != nil {
		prev = *old
	}
	return round2((prev*float64(n-1) + float64(rating)) / float64(n))
}

// round2 rounds half to even, so 2.125 becomes 2.12.
func round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
