package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/gear-planner/internal/domain"
)

// CatalogRepo reads the curated gear catalog. Every listing is ordered by
// popularity descending, then name.
type CatalogRepo interface {
	// List returns one page of the catalog, optionally restricted to a category.
	List(ctx context.Context, categoryID *uuid.UUID, p domain.PaginationParams) (domain.Page[domain.CatalogItem], error)

	GetByID(ctx context.Context, id uuid.UUID) (domain.CatalogItem, error)

	// TopByCategory returns at most limit items of the category.
	TopByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]domain.CatalogItem, error)

	// ByActivities returns items whose common activities overlap activities.
	ByActivities(ctx context.Context, activities []string) ([]domain.CatalogItem, error)
}

type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

const catalogColumns = `
	ci.id, ci.name, ci.description, ci.category_id, COALESCE(c.name, ''),
	ci.typical_weight_grams, ci.common_activities, ci.weather_conditions, ci.popularity_score`

const catalogFrom = `
	FROM catalog_items ci LEFT JOIN categories c ON c.id = ci.category_id`

const catalogOrder = `
	ORDER BY ci.popularity_score DESC, ci.name, ci.id`

func (r *pgCatalogRepo) List(ctx context.Context, categoryID *uuid.UUID, p domain.PaginationParams) (domain.Page[domain.CatalogItem], error) {
	const where = `
		WHERE (@category_id::uuid IS NULL OR ci.category_id = @category_id::uuid)`
	const countQ = `SELECT count(*)` + catalogFrom + where
	const listQ = `SELECT ` + catalogColumns + catalogFrom + where + catalogOrder + `
		LIMIT @limit OFFSET @offset`

	args := pgx.NamedArgs{"category_id": categoryID, "limit": p.Limit, "offset": p.Offset()}

	page := domain.Page[domain.CatalogItem]{PaginationParams: p}
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("repo.CatalogRepo.List: count: %w", err)
	}
	rows, err := r.db.Query(ctx, listQ, args)
	if err != nil {
		return page, fmt.Errorf("repo.CatalogRepo.List: %w", err)
	}
	page.Items, err = collect(rows, scanCatalogItem)
	if err != nil {
		return page, fmt.Errorf("repo.CatalogRepo.List: %w", err)
	}
	return page, nil
}

func (r *pgCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.CatalogItem, error) {
	const q = `SELECT ` + catalogColumns + catalogFrom + ` WHERE ci.id = @id`

	item, err := scanCatalogItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.CatalogItem{}, fmt.Errorf("repo.CatalogRepo.GetByID: %w", translate(err))
	}
	return item, nil
}

func (r *pgCatalogRepo) TopByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]domain.CatalogItem, error) {
	const q = `SELECT ` + catalogColumns + catalogFrom + `
		WHERE ci.category_id = @category_id` + catalogOrder + `
		LIMIT @limit`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"category_id": categoryID, "limit": limit})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.TopByCategory: %w", err)
	}
	items, err := collect(rows, scanCatalogItem)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.TopByCategory: %w", err)
	}
	return items, nil
}

func (r *pgCatalogRepo) ByActivities(ctx context.Context, activities []string) ([]domain.CatalogItem, error) {
	const q = `SELECT ` + catalogColumns + catalogFrom + `
		WHERE ci.common_activities && @activities::text[]` + catalogOrder

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"activities": nonNilStrings(activities)})
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ByActivities: %w", err)
	}
	items, err := collect(rows, scanCatalogItem)
	if err != nil {
		return nil, fmt.Errorf("repo.CatalogRepo.ByActivities: %w", err)
	}
	return items, nil
}

func scanCatalogItem(s scanner) (domain.CatalogItem, error) {
	var (
		item       domain.CatalogItem
		id         pgtype.UUID
		categoryID pgtype.UUID
	)
	err := s.Scan(
		&id, &item.Name, &item.Description, &categoryID, &item.CategoryName,
		&item.TypicalWeightGrams, &item.CommonActivities, &item.WeatherConditions, &item.PopularityScore,
	)
	if err != nil {
		return domain.CatalogItem{}, err
	}
	item.ID = uuid.UUID(id.Bytes)
	item.CategoryID = optionalUUID(categoryID)
	return item, nil
}
