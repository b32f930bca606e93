package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/recommend"
)

// RecommendStore adapts the gear, category, catalog and stats repos to the
// read-only store the recommendation engine consumes.
type RecommendStore struct {
	gear       GearRepo
	categories CategoryRepo
	catalog    CatalogRepo
	stats      StatsRepo
}

var _ recommend.Store = (*RecommendStore)(nil)

// NewRecommendStore constructs a RecommendStore backed by the provided db connection.
func NewRecommendStore(db db) *RecommendStore {
	return &RecommendStore{
		gear:       NewGearRepo(db),
		categories: NewCategoryRepo(db),
		catalog:    NewCatalogRepo(db),
		stats:      NewStatsRepo(db),
	}
}

func (s *RecommendStore) ListGearByUser(ctx context.Context, userID uuid.UUID) ([]domain.GearItem, error) {
	return s.gear.List(ctx, userID, nil)
}

func (s *RecommendStore) GetCategoryByName(ctx context.Context, name string) (domain.Category, error) {
	return s.categories.GetByName(ctx, name)
}

func (s *RecommendStore) TopCatalogByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]domain.CatalogItem, error) {
	return s.catalog.TopByCategory(ctx, categoryID, limit)
}

func (s *RecommendStore) ListUsageStatsByUser(ctx context.Context, userID uuid.UUID) ([]domain.UsageStats, error) {
	return s.stats.ListByUser(ctx, userID)
}
