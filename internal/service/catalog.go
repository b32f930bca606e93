package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/repo"
)

// CatalogService exposes the seeded reference data: categories, activity
// types and the gear catalog. All of it is read-only.
type CatalogService struct {
	catalog    repo.CatalogRepo
	categories repo.CategoryRepo
	activities repo.ActivityRepo
}

// NewCatalogService constructs a CatalogService backed by the provided repos.
func NewCatalogService(catalog repo.CatalogRepo, categories repo.CategoryRepo, activities repo.ActivityRepo) *CatalogService {
	return &CatalogService{catalog: catalog, categories: categories, activities: activities}
}

// Categories returns every category ordered by name.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.Categories: %w", err)
	}
	if cats == nil {
		return []domain.Category{}, nil
	}
	return cats, nil
}

// Category returns a single category.
func (s *CatalogService) Category(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CatalogService.Category: %w", err)
	}
	return c, nil
}

// Activities returns activity types whose name starts with prefix
// (case-insensitive); an empty prefix returns all of them.
func (s *CatalogService) Activities(ctx context.Context, prefix string) ([]domain.ActivityType, error) {
	acts, err := s.activities.List(ctx, strings.TrimSpace(prefix))
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.Activities: %w", err)
	}
	if acts == nil {
		return []domain.ActivityType{}, nil
	}
	return acts, nil
}

// Activity returns a single activity type.
func (s *CatalogService) Activity(ctx context.Context, id uuid.UUID) (domain.ActivityType, error) {
	a, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return domain.ActivityType{}, fmt.Errorf("service.CatalogService.Activity: %w", err)
	}
	return a, nil
}

// Items returns one page of catalog items, most popular first.
func (s *CatalogService) Items(ctx context.Context, categoryID *uuid.UUID, p domain.PaginationParams) (domain.Page[domain.CatalogItem], error) {
	page, err := s.catalog.List(ctx, categoryID, p)
	if err != nil {
		return domain.Page[domain.CatalogItem]{}, fmt.Errorf("service.CatalogService.Items: %w", err)
	}
	if page.Items == nil {
		page.Items = []domain.CatalogItem{}
	}
	return page, nil
}

// Item returns a single catalog item.
func (s *CatalogService) Item(ctx context.Context, id uuid.UUID) (domain.CatalogItem, error) {
	item, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("service.CatalogService.Item: %w", err)
	}
	return item, nil
}

// ByActivities returns catalog items whose common activities overlap the
// given list. At least one non-blank activity is required.
func (s *CatalogService) ByActivities(ctx context.Context, activities []string) ([]domain.CatalogItem, error) {
	var names []string
	for _, a := range activities {
		if a = strings.TrimSpace(a); a != "" {
			names = append(names, a)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("service.CatalogService.ByActivities: %w: at least one activity is required", domain.ErrValidation)
	}

	items, err := s.catalog.ByActivities(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.ByActivities: %w", err)
	}
	if items == nil {
		return []domain.CatalogItem{}, nil
	}
	return items, nil
}
