package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/repo"
)

// GearService implements business logic for a user's gear inventory.
type GearService struct {
	gear       repo.GearRepo
	categories repo.CategoryRepo
	stats      repo.StatsRepo
}

// NewGearService constructs a GearService backed by the provided repos.
func NewGearService(gear repo.GearRepo, categories repo.CategoryRepo, stats repo.StatsRepo) *GearService {
	return &GearService{gear: gear, categories: categories, stats: stats}
}

// Create validates and persists a new gear item for item.UserID.
func (s *GearService) Create(ctx context.Context, item domain.GearItem) (domain.GearItem, error) {
	if err := s.validate(ctx, item); err != nil {
		return domain.GearItem{}, fmt.Errorf("service.GearService.Create: %w", err)
	}
	item.Name = strings.TrimSpace(item.Name)

	result, err := s.gear.Create(ctx, item)
	if err != nil {
		return domain.GearItem{}, fmt.Errorf("service.GearService.Create: %w", err)
	}
	return result, nil
}

// Get returns one of the user's gear items.
func (s *GearService) Get(ctx context.Context, userID, id uuid.UUID) (domain.GearItem, error) {
	result, err := s.gear.GetByID(ctx, userID, id)
	if err != nil {
		return domain.GearItem{}, fmt.Errorf("service.GearService.Get: %w", err)
	}
	return result, nil
}

// List returns the user's gear, optionally restricted to one category.
// Always returns a non-nil slice.
func (s *GearService) List(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]domain.GearItem, error) {
	items, err := s.gear.List(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("service.GearService.List: %w", err)
	}
	if items == nil {
		return []domain.GearItem{}, nil
	}
	return items, nil
}

// Update validates and persists changes to an existing gear item.
func (s *GearService) Update(ctx context.Context, item domain.GearItem) (domain.GearItem, error) {
	if err := s.validate(ctx, item); err != nil {
		return domain.GearItem{}, fmt.Errorf("service.GearService.Update: %w", err)
	}
	item.Name = strings.TrimSpace(item.Name)

	result, err := s.gear.Update(ctx, item)
	if err != nil {
		return domain.GearItem{}, fmt.Errorf("service.GearService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a gear item together with its trip links and usage stats.
func (s *GearService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.gear.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.GearService.Delete: %w", err)
	}
	return nil
}

// UsageStats returns the usage ledger of one gear item. Returns
// domain.ErrNotFound when the gear is missing or has never been on a
// completed trip.
func (s *GearService) UsageStats(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error) {
	if _, err := s.gear.GetByID(ctx, userID, gearID); err != nil {
		return domain.UsageStats{}, fmt.Errorf("service.GearService.UsageStats: %w", err)
	}
	stats, err := s.stats.GetByGear(ctx, userID, gearID)
	if err != nil {
		return domain.UsageStats{}, fmt.Errorf("service.GearService.UsageStats: %w", err)
	}
	return stats, nil
}

// validate enforces the gear rules shared by Create and Update.
//   - Name must be non-empty.
//   - WeightGrams, if set, must not be negative.
//   - CategoryID, if set, must name an existing category.
func (s *GearService) validate(ctx context.Context, item domain.GearItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if item.WeightGrams != nil && *item.WeightGrams < 0 {
		return fmt.Errorf("%w: weight_grams must not be negative", domain.ErrValidation)
	}
	if item.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *item.CategoryID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: unknown category", domain.ErrValidation)
			}
			return err
		}
	}
	return nil
}
