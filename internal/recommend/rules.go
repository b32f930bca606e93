package recommend

import "github.com/pkordes/gear-planner/internal/domain"

// defaultRules is the built-in rule table in evaluation order.
// It is never mutated; DefaultRules hands out copies.
var defaultRules = []Rule{
	// Base essentials for all trips.
	{
		Category: "Clothing - Base Layer",
		Items:    []string{"Base layer top", "Base layer bottom"},
		Quantity: HalfDuration,
		Priority: domain.PriorityMedium,
	},
	{
		Category: "Clothing - Lower Body",
		Items:    []string{"Hiking pants", "Underwear"},
		Quantity: Duration,
		Priority: domain.PriorityMedium,
	},
	{
		Category: "Accessories",
		Items:    []string{"Socks"},
		Quantity: DurationPlusOne,
		Priority: domain.PriorityMedium,
	},

	// Activity based.
	{
		Category:  "Footwear",
		Items:     []string{"Hiking boots", "Trail running shoes"},
		Condition: anyActivity("Hiking", "Backpacking", "Trail Running"),
		Priority:  domain.PriorityHigh,
	},
	{
		Category:  "Trekking",
		Items:     []string{"Trekking poles"},
		Condition: anyActivity("Hiking", "Backpacking", "Mountaineering"),
		Priority:  domain.PriorityMedium,
	},
	{
		Category:  "Climbing Gear",
		Items:     []string{"Climbing harness", "Climbing helmet", "Carabiners"},
		Condition: anyActivity("Rock Climbing", "Mountaineering"),
		Priority:  domain.PriorityHigh,
	},
	{
		Category:  "Water Sports",
		Items:     []string{"Life jacket", "Paddle", "Dry bag"},
		Condition: anyActivity("Kayaking", "Canoeing", "Rafting"),
		Priority:  domain.PriorityHigh,
	},
	{
		Category: "Winter Sports",
		Items:    []string{"Crampons", "Ice axe", "Insulated jacket"},
		Condition: anyOf(
			anyActivity("Snowshoeing", "Winter Camping", "Mountaineering"),
			Condition{Kind: TempMaxBelow, Value: 5},
		),
		Priority: domain.PriorityHigh,
	},
	{
		Category:  "Fishing",
		Items:     []string{"Fishing rod", "Fishing tackle", "Fishing license"},
		Condition: anyActivity("Fishing"),
		Priority:  domain.PriorityMedium,
	},
	{
		Category:  "Biking",
		Items:     []string{"Bike helmet", "Bike repair kit"},
		Condition: anyActivity("Mountain Biking", "Bikepacking"),
		Priority:  domain.PriorityHigh,
	},

	// Overnight and camping trips.
	{
		Category:  "Shelter",
		Items:     []string{"Tent", "Sleeping bag", "Sleeping pad"},
		Condition: anyOf(multiDay(), anyActivity("Camping", "Backpacking", "Wild Camping")),
		Priority:  domain.PriorityHigh,
	},
	{
		Category:  "Cooking",
		Items:     []string{"Camping stove", "Fuel", "Pot", "Utensils"},
		Condition: anyOf(multiDay(), anyActivity("Camping", "Backpacking")),
		Priority:  domain.PriorityMedium,
	},
	{
		Category:  "Food Storage",
		Items:     []string{"Food storage bag", "Bear canister"},
		Condition: multiDay(),
		Priority:  domain.PriorityMedium,
	},

	// Weather based.
	{
		Category:  "Sun Protection",
		Items:     []string{"Sunscreen", "Sunglasses", "Sun hat"},
		Condition: anyOf(weather(domain.WeatherSunny), Condition{Kind: TempMaxAbove, Value: 25}),
		Priority:  domain.PriorityMedium,
	},
	{
		Category:  "Clothing - Outer Layer",
		Items:     []string{"Rain jacket", "Rain pants"},
		Condition: anyOf(weather(domain.WeatherRainy), weather(domain.WeatherSnowy)),
		Priority:  domain.PriorityHigh,
	},
	{
		Category:  "Clothing - Insulation",
		Items:     []string{"Down jacket", "Fleece jacket"},
		Condition: anyOf(weather(domain.WeatherSnowy), Condition{Kind: TempMinBelow, Value: 10}),
		Priority:  domain.PriorityHigh,
	},
	{
		Category:  "Handwear",
		Items:     []string{"Gloves", "Mittens"},
		Condition: anyOf(weather(domain.WeatherSnowy), Condition{Kind: TempMinBelow, Value: 5}),
		Priority:  domain.PriorityMedium,
	},
	{
		Category:  "Headwear",
		Items:     []string{"Warm beanie"},
		Condition: Condition{Kind: TempMinBelow, Value: 10},
		Priority:  domain.PriorityMedium,
	},

	// Essentials for every trip.
	{
		Category: "Hydration",
		Items:    []string{"Water bottle", "Hydration bladder"},
		Priority: domain.PriorityHigh,
	},
	{
		Category:  "Water Treatment",
		Items:     []string{"Water filter", "Water purification tablets"},
		Condition: multiDay(),
		Priority:  domain.PriorityHigh,
	},
	{
		Category: "Navigation",
		Items:    []string{"Map", "Compass", "GPS device"},
		Priority: domain.PriorityHigh,
	},
	{
		Category: "Lighting",
		Items:    []string{"Headlamp", "Extra batteries"},
		Priority: domain.PriorityHigh,
	},
	{
		Category: "First Aid",
		Items:    []string{"First aid kit"},
		Priority: domain.PriorityHigh,
	},
	{
		Category: "Emergency",
		Items:    []string{"Emergency whistle", "Emergency blanket"},
		Priority: domain.PriorityHigh,
	},
	{
		Category:  "Fire",
		Items:     []string{"Lighter", "Matches", "Fire starter"},
		Condition: anyActivity("Camping", "Backpacking", "Wild Camping"),
		Priority:  domain.PriorityMedium,
	},
	{
		Category:  "Hygiene",
		Items:     []string{"Toilet paper", "Hand sanitizer", "Toothbrush", "Biodegradable soap"},
		Condition: multiDay(),
		Priority:  domain.PriorityMedium,
	},
	{
		Category: "Insect Protection",
		Items:    []string{"Insect repellent"},
		Condition: allOf(
			Condition{Kind: TempMaxAbove, Value: 15},
			Condition{Kind: LacksWeather, Weather: domain.WeatherSnowy},
		),
		Priority: domain.PriorityLow,
	},
	{
		Category: "Tools",
		Items:    []string{"Multi-tool", "Knife"},
		Priority: domain.PriorityMedium,
	},
}

// DefaultRules returns a copy of the built-in rule table in evaluation order.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}
