package domain

import (
	"time"

	"github.com/google/uuid"
)

// Priority is the urgency tier of a suggestion.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities high(0) < medium(1) < low(2); anything else sorts last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// SuggestionSource says where a suggestion's items came from.
type SuggestionSource string

const (
	SourceCatalog    SuggestionSource = "catalog"
	SourceUser       SuggestionSource = "user"
	SourceSuggestion SuggestionSource = "suggestion"
)

// SuggestedItem is one concrete item inside a suggestion.
// Usage fields are only populated for the user's own gear.
type SuggestedItem struct {
	ID          uuid.UUID
	Name        string
	Description string
	WeightGrams *int
	Source      SuggestionSource
	TimesUsed   *int
	AvgRating   *float64
	LastUsed    *time.Time
}

// Suggestion is one entry of a trip's packing recommendations.
// CategoryID is nil for bare suggestions whose category is not in the store.
type Suggestion struct {
	Category       string
	CategoryID     *uuid.UUID
	SuggestedItems []SuggestedItem
	Reason         string
	Quantity       int
	Priority       Priority
	Source         SuggestionSource
}
