package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/gear-planner/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// Every read and write is scoped by the owning user; a trip owned by someone
// else is indistinguishable from a missing one.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip owned by userID.
	// Returns domain.ErrNotFound if no such trip exists.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)

	// GetForUpdate is GetByID with a row lock held until the surrounding
	// transaction ends. Only meaningful on a pgx.Tx.
	GetForUpdate(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)

	// List returns one page of the user's trips ordered by start_date descending,
	// optionally filtered by status.
	List(ctx context.Context, userID uuid.UUID, status *domain.TripStatus, p domain.PaginationParams) (domain.Page[domain.Trip], error)

	// Update overwrites the mutable fields of an existing trip and returns the
	// updated record. Returns domain.ErrNotFound if no such trip exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip; its gear links go with it.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// tripColumns selects a trip aliased as t plus its link aggregates.
const tripColumns = `
	t.id, t.user_id, t.title, t.description, t.location,
	t.start_date, t.end_date, t.duration_days, t.activities,
	t.expected_temp_min, t.expected_temp_max, t.expected_weather,
	t.status, t.created_at, t.updated_at,
	(SELECT count(*) FROM trip_gear tg WHERE tg.trip_id = t.id),
	(SELECT count(*) FROM trip_gear tg WHERE tg.trip_id = t.id AND tg.packed)`

func tripArgs(trip domain.Trip) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":                trip.ID,
		"user_id":           trip.UserID,
		"title":             trip.Title,
		"description":       trip.Description,
		"location":          trip.Location,
		"start_date":        trip.StartDate,
		"end_date":          trip.EndDate,
		"duration_days":     trip.DurationDays,
		"activities":        nonNilStrings(trip.Activities),
		"expected_temp_min": trip.ExpectedTempMin, // nil becomes NULL
		"expected_temp_max": trip.ExpectedTempMax,
		"expected_weather":  nonNilStrings(trip.ExpectedWeather),
		"status":            string(trip.Status),
	}
}

// Create inserts a new trip row and returns the full persisted record.
func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips AS t (user_id, title, description, location, start_date, end_date,
		                        duration_days, activities, expected_temp_min, expected_temp_max,
		                        expected_weather, status)
		VALUES (@user_id, @title, @description, @location, @start_date, @end_date,
		        @duration_days, @activities, @expected_temp_min, @expected_temp_max,
		        @expected_weather, @status)
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, tripArgs(trip)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", translate(err))
	}
	return result, nil
}

// GetByID retrieves a trip by primary key and owner.
func (r *pgTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + `
		FROM trips t
		WHERE t.id = @id AND t.user_id = @user_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", translate(err))
	}
	return result, nil
}

// GetForUpdate locks the trip row for the rest of the transaction so two
// concurrent completions serialize on it.
func (r *pgTripRepo) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + `
		FROM trips t
		WHERE t.id = @id AND t.user_id = @user_id
		FOR UPDATE OF t`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetForUpdate: %w", translate(err))
	}
	return result, nil
}

// List returns one page of trips, most recent start first.
func (r *pgTripRepo) List(ctx context.Context, userID uuid.UUID, status *domain.TripStatus, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	const where = `
		WHERE t.user_id = @user_id
		  AND (@status::text IS NULL OR t.status = @status::text)`

	const countQ = `SELECT count(*) FROM trips t` + where
	const listQ = `SELECT ` + tripColumns + `
		FROM trips t` + where + `
		ORDER BY t.start_date DESC, t.created_at DESC
		LIMIT @limit OFFSET @offset`

	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}
	args := pgx.NamedArgs{
		"user_id": userID,
		"status":  statusArg,
		"limit":   p.Limit,
		"offset":  p.Offset(),
	}

	page := domain.Page[domain.Trip]{PaginationParams: p}
	if err := r.db.QueryRow(ctx, countQ, args).Scan(&page.Total); err != nil {
		return page, fmt.Errorf("repo.TripRepo.List: count: %w", err)
	}

	rows, err := r.db.Query(ctx, listQ, args)
	if err != nil {
		return page, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	page.Items, err = collect(rows, scanTrip)
	if err != nil {
		return page, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	return page, nil
}

// Update overwrites the mutable fields of a trip and returns the updated record.
func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips AS t
		SET title             = @title,
		    description       = @description,
		    location          = @location,
		    start_date        = @start_date,
		    end_date          = @end_date,
		    duration_days     = @duration_days,
		    activities        = @activities,
		    expected_temp_min = @expected_temp_min,
		    expected_temp_max = @expected_temp_max,
		    expected_weather  = @expected_weather,
		    status            = @status,
		    updated_at        = now()
		WHERE t.id = @id AND t.user_id = @user_id
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, tripArgs(trip)))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", translate(err))
	}
	return result, nil
}

// Delete removes a trip by primary key and owner.
func (r *pgTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id AND user_id = @user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single row selected with tripColumns into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		userID    pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		status    string
	)

	err := s.Scan(
		&id, &userID, &t.Title, &t.Description, &t.Location,
		&startDate, &endDate, &t.DurationDays, &t.Activities,
		&t.ExpectedTempMin, &t.ExpectedTempMax, &t.ExpectedWeather,
		&status, &t.CreatedAt, &t.UpdatedAt,
		&t.GearCount, &t.PackedCount,
	)
	if err != nil {
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.UserID = uuid.UUID(userID.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	t.Status = domain.TripStatus(status)
	return t, nil
}
