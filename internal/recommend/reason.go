package recommend

import (
	"fmt"

	"github.com/pkordes/gear-planner/internal/domain"
)

// Reason returns the human-readable justification for a rule firing on trip.
func Reason(r Rule, trip domain.Trip) string {
	switch r.Category {
	case "Climbing Gear":
		return "Essential for climbing activities"
	case "Water Sports":
		return "Required for water activities"
	case "Winter Sports":
		return "Needed for cold weather or winter activities"
	case "Fishing":
		return "Required for fishing"
	case "Biking":
		return "Essential for biking safety"
	case "Sun Protection":
		return "Recommended for sunny weather"
	case "Clothing - Outer Layer":
		if trip.HasWeather(domain.WeatherRainy) {
			return "Rain protection needed"
		}
	case "Clothing - Insulation":
		return "Warmth needed for cold temperatures"
	case "Shelter", "Cooking":
		return "Required for overnight trips"
	case "Hygiene":
		return "Essential for multi-day trips"
	case "Accessories", "Clothing - Lower Body":
		return fmt.Sprintf("Recommended: %d for %d-day trip", r.Quantity.For(trip), trip.DurationDays)
	}
	return "Recommended for your trip"
}

// shortfallReason is used when the user owns some but not enough items.
func shortfallReason(missing int) string {
	return fmt.Sprintf("Consider adding %d more items", missing)
}
