package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/gear-planner/internal/domain"
)

// TripGearRepo defines the persistence operations for the gear linked to a trip.
// All operations are scoped by tripID; ownership of the trip is checked by
// the caller.
type TripGearRepo interface {
	// Create links a gear item to a trip. Returns domain.ErrConflict if the
	// item is already on the trip.
	Create(ctx context.Context, link domain.TripGearLink) (domain.TripGearLink, error)

	// Get returns the link between tripID and gearID, or domain.ErrNotFound.
	Get(ctx context.Context, tripID, gearID uuid.UUID) (domain.TripGearLink, error)

	// ListByTrip returns every link of a trip ordered by creation time.
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripGearLink, error)

	// Update overwrites packed, used, usefulness_rating and notes.
	Update(ctx context.Context, link domain.TripGearLink) (domain.TripGearLink, error)

	// Delete unlinks gearID from tripID. Returns domain.ErrNotFound if no link exists.
	Delete(ctx context.Context, tripID, gearID uuid.UUID) error
}

type pgTripGearRepo struct {
	db db
}

// NewTripGearRepo constructs a TripGearRepo backed by the provided db connection.
func NewTripGearRepo(db db) TripGearRepo {
	return &pgTripGearRepo{db: db}
}

// linkColumns selects a link aliased as l with its gear (g) and category (c).
const linkColumns = `
	l.id, l.trip_id, l.gear_id, l.origin, l.packed, l.used, l.quantity,
	l.usefulness_rating, l.notes, l.created_at,
	g.name, COALESCE(c.name, ''), g.weight_grams`

const linkJoins = `
	JOIN gear_items g ON g.id = l.gear_id
	LEFT JOIN categories c ON c.id = g.category_id`

func (r *pgTripGearRepo) Create(ctx context.Context, link domain.TripGearLink) (domain.TripGearLink, error) {
	const q = `
		WITH l AS (
			INSERT INTO trip_gear (trip_id, gear_id, origin, packed, used, quantity, usefulness_rating, notes)
			VALUES (@trip_id, @gear_id, @origin, @packed, @used, @quantity, @usefulness_rating, @notes)
			RETURNING *
		)
		SELECT ` + linkColumns + ` FROM l` + linkJoins

	args := pgx.NamedArgs{
		"trip_id":           link.TripID,
		"gear_id":           link.GearID,
		"origin":            string(link.Origin),
		"packed":            link.Packed,
		"used":              link.Used,
		"quantity":          link.Quantity,
		"usefulness_rating": link.UsefulnessRating,
		"notes":             link.Notes,
	}
	result, err := scanLink(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripGearLink{}, fmt.Errorf("repo.TripGearRepo.Create: %w", translate(err))
	}
	return result, nil
}

func (r *pgTripGearRepo) Get(ctx context.Context, tripID, gearID uuid.UUID) (domain.TripGearLink, error) {
	const q = `SELECT ` + linkColumns + ` FROM trip_gear l` + linkJoins + `
		WHERE l.trip_id = @trip_id AND l.gear_id = @gear_id`

	result, err := scanLink(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "gear_id": gearID}))
	if err != nil {
		return domain.TripGearLink{}, fmt.Errorf("repo.TripGearRepo.Get: %w", translate(err))
	}
	return result, nil
}

func (r *pgTripGearRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripGearLink, error) {
	const q = `SELECT ` + linkColumns + ` FROM trip_gear l` + linkJoins + `
		WHERE l.trip_id = @trip_id
		ORDER BY l.created_at, l.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripGearRepo.ListByTrip: %w", err)
	}
	links, err := collect(rows, scanLink)
	if err != nil {
		return nil, fmt.Errorf("repo.TripGearRepo.ListByTrip: %w", err)
	}
	return links, nil
}

func (r *pgTripGearRepo) Update(ctx context.Context, link domain.TripGearLink) (domain.TripGearLink, error) {
	const q = `
		WITH l AS (
			UPDATE trip_gear
			SET packed            = @packed,
			    used              = @used,
			    usefulness_rating = @usefulness_rating,
			    notes             = @notes
			WHERE trip_id = @trip_id AND gear_id = @gear_id
			RETURNING *
		)
		SELECT ` + linkColumns + ` FROM l` + linkJoins

	args := pgx.NamedArgs{
		"trip_id":           link.TripID,
		"gear_id":           link.GearID,
		"packed":            link.Packed,
		"used":              link.Used,
		"usefulness_rating": link.UsefulnessRating,
		"notes":             link.Notes,
	}
	result, err := scanLink(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripGearLink{}, fmt.Errorf("repo.TripGearRepo.Update: %w", translate(err))
	}
	return result, nil
}

func (r *pgTripGearRepo) Delete(ctx context.Context, tripID, gearID uuid.UUID) error {
	const q = `DELETE FROM trip_gear WHERE trip_id = @trip_id AND gear_id = @gear_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "gear_id": gearID})
	if err != nil {
		return fmt.Errorf("repo.TripGearRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripGearRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanLink(s scanner) (domain.TripGearLink, error) {
	var (
		l      domain.TripGearLink
		id     pgtype.UUID
		tripID pgtype.UUID
		gearID pgtype.UUID
		origin string
	)
	err := s.Scan(
		&id, &tripID, &gearID, &origin, &l.Packed, &l.Used, &l.Quantity,
		&l.UsefulnessRating, &l.Notes, &l.CreatedAt,
		&l.GearName, &l.GearCategory, &l.GearWeight,
	)
	if err != nil {
		return domain.TripGearLink{}, err
	}
	l.ID = uuid.UUID(id.Bytes)
	l.TripID = uuid.UUID(tripID.Bytes)
	l.GearID = uuid.UUID(gearID.Bytes)
	l.Origin = domain.LinkOrigin(origin)
	return l, nil
}
