package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Counter maps a context key to an occurrence count. The zero value is
// usable for reads; use Inc to write.
type Counter map[string]int

// Inc increments key, allocating the map when needed, and returns the map.
func (c Counter) Inc(key string) Counter {
	if c == nil {
		c = Counter{}
	}
	c[key]++
	return c
}

// Duration buckets used as keys of UsageStats.UsageByDuration.
const (
	BucketOneDay       = "1_day"
	BucketTwoThreeDays = "2-3_days"
	BucketFourSeven    = "4-7_days"
	BucketEightPlus    = "8+_days"
)

// DurationBucket maps a trip length in days to its usage bucket.
func DurationBucket(days int) string {
	switch {
	case days <= 1:
		return BucketOneDay
	case days <= 3:
		return BucketTwoThreeDays
	case days <= 7:
		return BucketFourSeven
	default:
		return BucketEightPlus
	}
}

// WeatherKey builds the UsageByWeather key for a trip's weather list.
// The whole list forms one key ("Rainy,Windy"), so combinations are counted
// separately from their individual conditions.
func WeatherKey(tags []string) string {
	return strings.Join(tags, ",")
}

// UsageStats is the running per-user, per-gear ledger folded from completed
// trips. Keys of UsageByActivity are activity names, UsageByWeather uses
// WeatherKey, and UsageByDuration uses the Bucket constants.
type UsageStats struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	GearID              uuid.UUID
	GearName            string
	TimesPacked         int
	TimesUsed           int
	TimesNotUsed        int
	AvgUsefulnessRating *float64
	UsageByActivity     Counter
	UsageByWeather      Counter
	UsageByDuration     Counter
	LastUsedDate        *time.Time
	UpdatedAt           time.Time
}
