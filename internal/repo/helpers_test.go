package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/repo"
	"github.com/pkordes/gear-planner/testutil"
)

func newTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

func createUser(t *testing.T, tx pgx.Tx) domain.User {
	t.Helper()
	u, err := repo.NewUserRepo(tx).Create(context.Background(), domain.User{
		Username:     "user-" + uuid.NewString()[:8],
		Email:        "hiker@example.com",
		PasswordHash: []byte("$2a$10$hash"),
	})
	require.NoError(t, err)
	return u
}

func category(t *testing.T, tx pgx.Tx, name string) domain.Category {
	t.Helper()
	c, err := repo.NewCategoryRepo(tx).GetByName(context.Background(), name)
	require.NoError(t, err, "seeded category %q", name)
	return c
}

func createGear(t *testing.T, tx pgx.Tx, userID uuid.UUID, name string, categoryID *uuid.UUID) domain.GearItem {
	t.Helper()
	g, err := repo.NewGearRepo(tx).Create(context.Background(), domain.GearItem{
		UserID:     userID,
		Name:       name,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return g
}

func tripFixture(userID uuid.UUID) domain.Trip {
	trip := domain.Trip{
		UserID:          userID,
		Title:           "Rainy Ridge",
		Location:        "Snowdonia",
		StartDate:       time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC),
		Activities:      []string{"Hiking"},
		ExpectedWeather: []string{"Rainy"},
		Status:          domain.TripPlanned,
	}
	trip.ComputeDuration()
	return trip
}

func createTrip(t *testing.T, tx pgx.Tx, userID uuid.UUID) domain.Trip {
	t.Helper()
	trip, err := repo.NewTripRepo(tx).Create(context.Background(), tripFixture(userID))
	require.NoError(t, err)
	return trip
}

func ptr[T any](v T) *T { return &v }
