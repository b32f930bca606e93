package domain

import "github.com/google/uuid"

// CatalogItem is a curated reference entry used for cold-start suggestions.
// PopularityScore only ranks entries; higher comes first.
type CatalogItem struct {
	ID                 uuid.UUID
	Name               string
	Description        string
	CategoryID         *uuid.UUID
	CategoryName       string
	TypicalWeightGrams *int
	CommonActivities   []string
	WeatherConditions  []string
	PopularityScore    int
}

// ActivityType describes an outdoor activity and the gear categories it
// usually calls for. Activity types are seeded and read-only.
type ActivityType struct {
	ID                    uuid.UUID
	Name                  string
	Description           string
	TypicalGearCategories []string
}
