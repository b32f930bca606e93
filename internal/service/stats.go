package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/repo"
)

// StatsService lists the usage ledgers folded from completed trips.
type StatsService struct {
	stats repo.StatsRepo
}

// NewStatsService constructs a StatsService backed by the provided repo.
func NewStatsService(stats repo.StatsRepo) *StatsService {
	return &StatsService{stats: stats}
}

// List returns every usage stats row owned by userID. Always non-nil.
func (s *StatsService) List(ctx context.Context, userID uuid.UUID) ([]domain.UsageStats, error) {
	stats, err := s.stats.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.List: %w", err)
	}
	if stats == nil {
		return []domain.UsageStats{}, nil
	}
	return stats, nil
}
