package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/gear-planner/internal/domain"
)

// StatsRepo defines the persistence operations for per-gear usage statistics.
// Counters are stored as JSONB objects.
type StatsRepo interface {
	// GetOrCreate returns the stats row for (userID, gearID), inserting a
	// zeroed row first when none exists.
	GetOrCreate(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error)

	// Save overwrites every counter of an existing row.
	Save(ctx context.Context, stats domain.UsageStats) (domain.UsageStats, error)

	// GetByGear returns domain.ErrNotFound when the gear has never been on a
	// completed trip.
	GetByGear(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error)

	// ListByUser returns all of the user's stats ordered by gear name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UsageStats, error)
}

type pgStatsRepo struct {
	db db
}

// NewStatsRepo constructs a StatsRepo backed by the provided db connection.
func NewStatsRepo(db db) StatsRepo {
	return &pgStatsRepo{db: db}
}

// statsColumns selects a stats row aliased as s joined to its gear as g.
const statsColumns = `
	s.id, s.user_id, s.gear_id, g.name,
	s.times_packed, s.times_used, s.times_not_used, s.avg_usefulness_rating,
	s.usage_by_activity, s.usage_by_weather, s.usage_by_duration,
	s.last_used_date, s.updated_at`

// GetOrCreate relies on the (user_id, gear_id) unique constraint. The no-op
// DO UPDATE makes RETURNING yield the existing row on conflict.
func (r *pgStatsRepo) GetOrCreate(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error) {
	const q = `
		WITH s AS (
			INSERT INTO usage_stats (user_id, gear_id)
			VALUES (@user_id, @gear_id)
			ON CONFLICT (user_id, gear_id) DO UPDATE SET user_id = EXCLUDED.user_id
			RETURNING *
		)
		SELECT ` + statsColumns + ` FROM s JOIN gear_items g ON g.id = s.gear_id`

	result, err := scanStats(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID, "gear_id": gearID}))
	if err != nil {
		return domain.UsageStats{}, fmt.Errorf("repo.StatsRepo.GetOrCreate: %w", translate(err))
	}
	return result, nil
}

func (r *pgStatsRepo) Save(ctx context.Context, stats domain.UsageStats) (domain.UsageStats, error) {
	const q = `
		WITH s AS (
			UPDATE usage_stats
			SET times_packed          = @times_packed,
			    times_used            = @times_used,
			    times_not_used        = @times_not_used,
			    avg_usefulness_rating = @avg_usefulness_rating,
			    usage_by_activity     = @usage_by_activity,
			    usage_by_weather      = @usage_by_weather,
			    usage_by_duration     = @usage_by_duration,
			    last_used_date        = @last_used_date,
			    updated_at            = now()
			WHERE id = @id
			RETURNING *
		)
		SELECT ` + statsColumns + ` FROM s JOIN gear_items g ON g.id = s.gear_id`

	args := pgx.NamedArgs{
		"id":                    stats.ID,
		"times_packed":          stats.TimesPacked,
		"times_used":            stats.TimesUsed,
		"times_not_used":        stats.TimesNotUsed,
		"avg_usefulness_rating": stats.AvgUsefulnessRating,
		"usage_by_activity":     nonNilCounter(stats.UsageByActivity),
		"usage_by_weather":      nonNilCounter(stats.UsageByWeather),
		"usage_by_duration":     nonNilCounter(stats.UsageByDuration),
		"last_used_date":        stats.LastUsedDate,
	}
	result, err := scanStats(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.UsageStats{}, fmt.Errorf("repo.StatsRepo.Save: %w", translate(err))
	}
	return result, nil
}

func (r *pgStatsRepo) GetByGear(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error) {
	const q = `SELECT ` + statsColumns + `
		FROM usage_stats s JOIN gear_items g ON g.id = s.gear_id
		WHERE s.user_id = @user_id AND s.gear_id = @gear_id`

	result, err := scanStats(r.db.QueryRow(ctx, q, pgx.NamedArgs{"user_id": userID, "gear_id": gearID}))
	if err != nil {
		return domain.UsageStats{}, fmt.Errorf("repo.StatsRepo.GetByGear: %w", translate(err))
	}
	return result, nil
}

func (r *pgStatsRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UsageStats, error) {
	const q = `SELECT ` + statsColumns + `
		FROM usage_stats s JOIN gear_items g ON g.id = s.gear_id
		WHERE s.user_id = @user_id
		ORDER BY g.name, s.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.ListByUser: %w", err)
	}
	stats, err := collect(rows, scanStats)
	if err != nil {
		return nil, fmt.Errorf("repo.StatsRepo.ListByUser: %w", err)
	}
	return stats, nil
}

func scanStats(sc scanner) (domain.UsageStats, error) {
	var (
		s        domain.UsageStats
		id       pgtype.UUID
		userID   pgtype.UUID
		gearID   pgtype.UUID
		lastUsed pgtype.Date
	)
	err := sc.Scan(
		&id, &userID, &gearID, &s.GearName,
		&s.TimesPacked, &s.TimesUsed, &s.TimesNotUsed, &s.AvgUsefulnessRating,
		&s.UsageByActivity, &s.UsageByWeather, &s.UsageByDuration,
		&lastUsed, &s.UpdatedAt,
	)
	if err != nil {
		return domain.UsageStats{}, err
	}
	s.ID = uuid.UUID(id.Bytes)
	s.UserID = uuid.UUID(userID.Bytes)
	s.GearID = uuid.UUID(gearID.Bytes)
	s.LastUsedDate = optionalDate(lastUsed)
	return s, nil
}

func nonNilCounter(c domain.Counter) domain.Counter {
	if c == nil {
		return domain.Counter{}
	}
	return c
}
