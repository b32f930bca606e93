package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
)

// catalogSuggestionLimit caps the number of catalog items offered per rule.
const catalogSuggestionLimit = 2

// highlyRatedThreshold is the average rating at which a user's own gear is
// called out in the suggestion reason.
const highlyRatedThreshold = 4.0

const highlyRatedMarker = " (highly rated by you)"

// Store is the read-only data the engine needs. repo.RecommendStore is the
// Postgres implementation; tests use an in-memory fake.
type Store interface {
	// ListGearByUser returns all gear owned by userID with CategoryName resolved.
	ListGearByUser(ctx context.Context, userID uuid.UUID) ([]domain.GearItem, error)

	// GetCategoryByName returns domain.ErrNotFound when no category has that name.
	GetCategoryByName(ctx context.Context, name string) (domain.Category, error)

	// TopCatalogByCategory returns up to limit catalog items in the category
	// ordered by popularity descending, then name.
	TopCatalogByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]domain.CatalogItem, error)

	// ListUsageStatsByUser returns every usage stats row owned by userID.
	ListUsageStatsByUser(ctx context.Context, userID uuid.UUID) ([]domain.UsageStats, error)
}

// Engine evaluates the rule table against trips.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	store Store
	rules []Rule
	log   *slog.Logger
}

// NewEngine constructs an Engine over the given rules. Pass DefaultRules()
// for the built-in table.
func NewEngine(store Store, rules []Rule, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{store: store, rules: rules, log: log}
}

// Generate returns the prioritized packing suggestions for trip.
// A rule whose category is missing from the store degrades to a bare
// suggestion; only store failures are returned as errors.
func (e *Engine) Generate(ctx context.Context, trip domain.Trip, userID uuid.UUID) ([]domain.Suggestion, error) {
	gear, err := e.store.ListGearByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recommend.Engine.Generate: gear: %w", err)
	}
	byCategory := groupByCategory(gear)

	stats, err := e.store.ListUsageStatsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recommend.Engine.Generate: stats: %w", err)
	}

	suggestions := []domain.Suggestion{}
	for _, rule := range e.rules {
		if !rule.Applies(trip) {
			continue
		}
		s, ok, err := e.evaluate(ctx, rule, trip, byCategory)
		if err != nil {
			return nil, fmt.Errorf("recommend.Engine.Generate: rule %q: %w", rule.Category, err)
		}
		if ok {
			suggestions = append(suggestions, s)
		}
	}

	slices.SortStableFunc(suggestions, func(a, b domain.Suggestion) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})

	personalize(suggestions, stats)

	e.log.InfoContext(ctx, "recommendations generated",
		"trip_id", trip.ID,
		"user_id", userID,
		"gear_count", len(gear),
		"suggestions", len(suggestions),
	)
	return suggestions, nil
}

// evaluate applies one rule whose condition already holds.
// ok is false when the user already owns enough items.
func (e *Engine) evaluate(ctx context.Context, rule Rule, trip domain.Trip, byCategory map[string][]domain.GearItem) (domain.Suggestion, bool, error) {
	quantity := rule.Quantity.For(trip)

	category, err := e.store.GetCategoryByName(ctx, rule.Category)
	if errors.Is(err, domain.ErrNotFound) {
		e.log.WarnContext(ctx, "recommendation category missing", "category", rule.Category)
		return bareSuggestion(rule, trip, quantity), true, nil
	}
	if err != nil {
		return domain.Suggestion{}, false, err
	}

	owned := byCategory[rule.Category]
	switch {
	case len(owned) == 0:
		catalog, err := e.store.TopCatalogByCategory(ctx, category.ID, catalogSuggestionLimit)
		if err != nil {
			return domain.Suggestion{}, false, err
		}
		if len(catalog) == 0 {
			return bareSuggestion(rule, trip, quantity), true, nil
		}
		return catalogSuggestion(rule, trip, category, quantity, catalog), true, nil

	case quantity > len(owned):
		return shortfallSuggestion(rule, category, quantity, owned), true, nil
	}
	return domain.Suggestion{}, false, nil
}

func bareSuggestion(rule Rule, trip domain.Trip, quantity int) domain.Suggestion {
	return domain.Suggestion{
		Category:       rule.Category,
		SuggestedItems: []domain.SuggestedItem{},
		Reason:         Reason(rule, trip),
		Quantity:       quantity,
		Priority:       rule.Priority,
		Source:         domain.SourceSuggestion,
	}
}

func catalogSuggestion(rule Rule, trip domain.Trip, category domain.Category, quantity int, catalog []domain.CatalogItem) domain.Suggestion {
	items := make([]domain.SuggestedItem, len(catalog))
	for i, c := range catalog {
		items[i] = domain.SuggestedItem{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			WeightGrams: c.TypicalWeightGrams,
			Source:      domain.SourceCatalog,
		}
	}
	id := category.ID
	return domain.Suggestion{
		Category:       rule.Category,
		CategoryID:     &id,
		SuggestedItems: items,
		Reason:         Reason(rule, trip),
		Quantity:       quantity,
		Priority:       rule.Priority,
		Source:         domain.SourceCatalog,
	}
}

// shortfallSuggestion lists the owned items; shortfalls are always low priority.
func shortfallSuggestion(rule Rule, category domain.Category, quantity int, owned []domain.GearItem) domain.Suggestion {
	items := make([]domain.SuggestedItem, len(owned))
	for i, g := range owned {
		items[i] = domain.SuggestedItem{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			WeightGrams: g.WeightGrams,
			Source:      domain.SourceUser,
		}
	}
	id := category.ID
	return domain.Suggestion{
		Category:       rule.Category,
		CategoryID:     &id,
		SuggestedItems: items,
		Reason:         shortfallReason(quantity - len(owned)),
		Quantity:       quantity,
		Priority:       domain.PriorityLow,
		Source:         domain.SourceUser,
	}
}

func groupByCategory(gear []domain.GearItem) map[string][]domain.GearItem {
	out := make(map[string][]domain.GearItem)
	for _, g := range gear {
		key := g.CategoryKey()
		out[key] = append(out[key], g)
	}
	return out
}

// personalize attaches usage history to user-sourced items in place.
func personalize(suggestions []domain.Suggestion, stats []domain.UsageStats) {
	byGear := make(map[uuid.UUID]domain.UsageStats, len(stats))
	for _, s := range stats {
		byGear[s.GearID] = s
	}

	for i := range suggestions {
		s := &suggestions[i]
		if s.Source != domain.SourceUser {
			continue
		}
		highlyRated := false
		for j := range s.SuggestedItems {
			item := &s.SuggestedItems[j]
			st, ok := byGear[item.ID]
			if !ok {
				continue
			}
			used := st.TimesUsed
			item.TimesUsed = &used
			item.AvgRating = st.AvgUsefulnessRating
			item.LastUsed = st.LastUsedDate
			if st.AvgUsefulnessRating != nil && *st.AvgUsefulnessRating >= highlyRatedThreshold {
				highlyRated = true
			}
		}
		if highlyRated {
			s.Reason += highlyRatedMarker
		}
	}
}
