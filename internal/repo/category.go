package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/gear-planner/internal/domain"
)

// CategoryRepo reads the seeded gear categories.
type CategoryRepo interface {
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]domain.Category, error)

	GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error)

	// GetByName returns domain.ErrNotFound when no category has exactly that name.
	GetByName(ctx context.Context, name string) (domain.Category, error)
}

type pgCategoryRepo struct {
	db db
}

// NewCategoryRepo constructs a CategoryRepo backed by the provided db connection.
func NewCategoryRepo(db db) CategoryRepo {
	return &pgCategoryRepo{db: db}
}

func (r *pgCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `SELECT id, name, description, icon FROM categories ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: %w", err)
	}
	cats, err := collect(rows, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("repo.CategoryRepo.List: %w", err)
	}
	return cats, nil
}

func (r *pgCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	const q = `SELECT id, name, description, icon FROM categories WHERE id = @id`

	c, err := scanCategory(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.GetByID: %w", translate(err))
	}
	return c, nil
}

func (r *pgCategoryRepo) GetByName(ctx context.Context, name string) (domain.Category, error) {
	const q = `SELECT id, name, description, icon FROM categories WHERE name = @name`

	c, err := scanCategory(r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}))
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.GetByName: %w", translate(err))
	}
	return c, nil
}

func scanCategory(s scanner) (domain.Category, error) {
	var (
		c  domain.Category
		id pgtype.UUID
	)
	if err := s.Scan(&id, &c.Name, &c.Description, &c.Icon); err != nil {
		return domain.Category{}, err
	}
	c.ID = uuid.UUID(id.Bytes)
	return c, nil
}
