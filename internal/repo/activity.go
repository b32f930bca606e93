package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/gear-planner/internal/domain"
)

// ActivityRepo reads the seeded activity types.
type ActivityRepo interface {
	// List returns all activity types whose name starts with prefix
	// (case-insensitive), ordered by name. If prefix is empty, all are returned.
	List(ctx context.Context, prefix string) ([]domain.ActivityType, error)

	GetByID(ctx context.Context, id uuid.UUID) (domain.ActivityType, error)
}

type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

func (r *pgActivityRepo) List(ctx context.Context, prefix string) ([]domain.ActivityType, error) {
	const q = `
		SELECT id, name, description, typical_gear_categories
		FROM activity_types
		WHERE lower(name) LIKE lower(@prefix) || '%'
		ORDER BY name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": prefix})
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.List: %w", err)
	}
	acts, err := collect(rows, scanActivity)
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.List: %w", err)
	}
	return acts, nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ActivityType, error) {
	const q = `
		SELECT id, name, description, typical_gear_categories
		FROM activity_types
		WHERE id = @id`

	a, err := scanActivity(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.ActivityType{}, fmt.Errorf("repo.ActivityRepo.GetByID: %w", translate(err))
	}
	return a, nil
}

func scanActivity(s scanner) (domain.ActivityType, error) {
	var (
		a  domain.ActivityType
		id pgtype.UUID
	)
	if err := s.Scan(&id, &a.Name, &a.Description, &a.TypicalGearCategories); err != nil {
		return domain.ActivityType{}, err
	}
	a.ID = uuid.UUID(id.Bytes)
	return a, nil
}
