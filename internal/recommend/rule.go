// Package recommend turns a trip and the user's gear into an ordered list of
// packing suggestions by evaluating a static table of rules.
// Conditions and quantities are plain data interpreted here, so the rule
// table can be inspected and tested without executing closures.
package recommend

import "github.com/pkordes/gear-planner/internal/domain"

// ConditionKind selects how a Condition is evaluated.
type ConditionKind int

const (
	// Always matches every trip.
	Always ConditionKind = iota
	// AnyActivity matches when the trip has at least one of Activities.
	AnyActivity
	// HasWeather matches when Weather is among the expected conditions.
	HasWeather
	// LacksWeather matches when Weather is not among the expected conditions.
	LacksWeather
	// DurationOver matches when duration_days > Value.
	DurationOver
	// TempMaxBelow matches when expected_temp_max is set and < Value.
	TempMaxBelow
	// TempMaxAbove matches when expected_temp_max is set and > Value.
	TempMaxAbove
	// TempMinBelow matches when expected_temp_min is set and < Value.
	TempMinBelow
	// AnyOf matches when at least one of Terms matches.
	AnyOf
	// AllOf matches when every one of Terms matches.
	AllOf
)

// Condition is an applicability predicate over a trip's fields.
// Only the fields relevant to Kind are read.
type Condition struct {
	Kind       ConditionKind
	Activities []string
	Weather    string
	Value      int
	Terms      []Condition
}

// Eval reports whether the condition holds for trip.
func (c Condition) Eval(trip domain.Trip) bool {
	switch c.Kind {
	case Always:
		return true
	case AnyActivity:
		return trip.HasActivity(c.Activities...)
	case HasWeather:
		return trip.HasWeather(c.Weather)
	case LacksWeather:
		return !trip.HasWeather(c.Weather)
	case DurationOver:
		return trip.DurationDays > c.Value
	case TempMaxBelow:
		return trip.ExpectedTempMax != nil && *trip.ExpectedTempMax < c.Value
	case TempMaxAbove:
		return trip.ExpectedTempMax != nil && *trip.ExpectedTempMax > c.Value
	case TempMinBelow:
		return trip.ExpectedTempMin != nil && *trip.ExpectedTempMin < c.Value
	case AnyOf:
		for _, t := range c.Terms {
			if t.Eval(trip) {
				return true
			}
		}
		return false
	case AllOf:
		for _, t := range c.Terms {
			if !t.Eval(trip) {
				return false
			}
		}
		return true
	}
	return false
}

// QuantityKind selects how many items of a category a trip needs.
type QuantityKind int

const (
	// One always requires a single item.
	One QuantityKind = iota
	// HalfDuration requires max(1, duration_days/2).
	HalfDuration
	// Duration requires one per day.
	Duration
	// DurationPlusOne requires one per day plus a spare.
	DurationPlusOne
)

// For returns the required quantity for trip.
func (q QuantityKind) For(trip domain.Trip) int {
	switch q {
	case HalfDuration:
		return max(1, trip.DurationDays/2)
	case Duration:
		return trip.DurationDays
	case DurationPlusOne:
		return trip.DurationDays + 1
	}
	return 1
}

// Rule is a category-scoped suggestion policy.
type Rule struct {
	Category  string
	Items     []string
	Quantity  QuantityKind
	Condition Condition
	Priority  domain.Priority
}

// Applies reports whether the rule's condition holds for trip.
func (r Rule) Applies(trip domain.Trip) bool {
	return r.Condition.Eval(trip)
}

func anyActivity(names ...string) Condition {
	return Condition{Kind: AnyActivity, Activities: names}
}

func weather(tag string) Condition {
	return Condition{Kind: HasWeather, Weather: tag}
}

func anyOf(terms ...Condition) Condition {
	return Condition{Kind: AnyOf, Terms: terms}
}

func allOf(terms ...Condition) Condition {
	return Condition{Kind: AllOf, Terms: terms}
}

func multiDay() Condition {
	return Condition{Kind: DurationOver, Value: 1}
}
