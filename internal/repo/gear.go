package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/gear-planner/internal/domain"
)

// GearRepo defines the persistence operations for a user's gear inventory.
// All operations are scoped by userID.
type GearRepo interface {
	Create(ctx context.Context, item domain.GearItem) (domain.GearItem, error)

	// GetByID returns domain.ErrNotFound if the item does not exist or is
	// owned by another user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.GearItem, error)

	// List returns the user's gear, newest first. A non-nil categoryID
	// restricts the result to that category.
	List(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]domain.GearItem, error)

	Update(ctx context.Context, item domain.GearItem) (domain.GearItem, error)

	// Delete removes the item together with its trip links and usage stats.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgGearRepo is the Postgres implementation of GearRepo.
type pgGearRepo struct {
	db db
}

// NewGearRepo constructs a GearRepo backed by the provided db connection.
func NewGearRepo(db db) GearRepo {
	return &pgGearRepo{db: db}
}

// gearColumns selects a gear item aliased as g joined to categories as c.
const gearColumns = `
	g.id, g.user_id, g.name, g.description, g.category_id, COALESCE(c.name, ''),
	g.weight_grams, g.purchase_date, g.notes, g.created_at, g.updated_at`

func gearArgs(item domain.GearItem) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":            item.ID,
		"user_id":       item.UserID,
		"name":          item.Name,
		"description":   item.Description,
		"category_id":   item.CategoryID,
		"weight_grams":  item.WeightGrams,
		"purchase_date": item.PurchaseDate,
		"notes":         item.Notes,
	}
}

func (r *pgGearRepo) Create(ctx context.Context, item domain.GearItem) (domain.GearItem, error) {
	const q = `
		WITH g AS (
			INSERT INTO gear_items (user_id, name, description, category_id, weight_grams, purchase_date, notes)
			VALUES (@user_id, @name, @description, @category_id, @weight_grams, @purchase_date, @notes)
			RETURNING *
		)
		SELECT ` + gearColumns + `
		FROM g LEFT JOIN categories c ON c.id = g.category_id`

	result, err := scanGear(r.db.QueryRow(ctx, q, gearArgs(item)))
	if err != nil {
		return domain.GearItem{}, fmt.Errorf("repo.GearRepo.Create: %w", translate(err))
	}
	return result, nil
}

func (r *pgGearRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.GearItem, error) {
	const q = `
		SELECT ` + gearColumns + `
		FROM gear_items g LEFT JOIN categories c ON c.id = g.category_id
		WHERE g.id = @id AND g.user_id = @user_id`

	result, err := scanGear(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.GearItem{}, fmt.Errorf("repo.GearRepo.GetByID: %w", translate(err))
	}
	return result, nil
}

func (r *pgGearRepo) List(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]domain.GearItem, error) {
	const q = `
		SELECT ` + gearColumns + `
		FROM gear_items g LEFT JOIN categories c ON c.id = g.category_id
		WHERE g.user_id = @user_id
		  AND (@category_id::uuid IS NULL OR g.category_id = @category_id::uuid)
		ORDER BY g.created_at DESC, g.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID, "category_id": categoryID})
	if err != nil {
		return nil, fmt.Errorf("repo.GearRepo.List: %w", err)
	}
	items, err := collect(rows, scanGear)
	if err != nil {
		return nil, fmt.Errorf("repo.GearRepo.List: %w", err)
	}
	return items, nil
}

func (r *pgGearRepo) Update(ctx context.Context, item domain.GearItem) (domain.GearItem, error) {
	const q = `
		WITH g AS (
			UPDATE gear_items
			SET name          = @name,
			    description   = @description,
			    category_id   = @category_id,
			    weight_grams  = @weight_grams,
			    purchase_date = @purchase_date,
			    notes         = @notes,
			    updated_at    = now()
			WHERE id = @id AND user_id = @user_id
			RETURNING *
		)
		SELECT ` + gearColumns + `
		FROM g LEFT JOIN categories c ON c.id = g.category_id`

	result, err := scanGear(r.db.QueryRow(ctx, q, gearArgs(item)))
	if err != nil {
		return domain.GearItem{}, fmt.Errorf("repo.GearRepo.Update: %w", translate(err))
	}
	return result, nil
}

func (r *pgGearRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM gear_items WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.GearRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.GearRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanGear(s scanner) (domain.GearItem, error) {
	var (
		g          domain.GearItem
		id         pgtype.UUID
		userID     pgtype.UUID
		categoryID pgtype.UUID
		purchased  pgtype.Date
	)
	err := s.Scan(
		&id, &userID, &g.Name, &g.Description, &categoryID, &g.CategoryName,
		&g.WeightGrams, &purchased, &g.Notes, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return domain.GearItem{}, err
	}
	g.ID = uuid.UUID(id.Bytes)
	g.UserID = uuid.UUID(userID.Bytes)
	g.CategoryID = optionalUUID(categoryID)
	g.PurchaseDate = optionalDate(purchased)
	return g, nil
}
