package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/repo"
)

func TestTripRepo_Create(t *testing.T) {
	tx := newTx(t)
	user := createUser(t, tx)
	r := repo.NewTripRepo(tx)

	input := tripFixture(user.ID)
	input.ExpectedTempMin = ptr(4)
	got, err := r.Create(context.Background(), input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, input.Title, got.Title)
	assert.True(t, got.StartDate.Equal(input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(input.EndDate), "EndDate mismatch")
	assert.Equal(t, 3, got.DurationDays)
	assert.Equal(t, []string{"Hiking"}, got.Activities)
	assert.Equal(t, []string{"Rainy"}, got.ExpectedWeather)
	require.NotNil(t, got.ExpectedTempMin)
	assert.Equal(t, 4, *got.ExpectedTempMin)
	assert.Nil(t, got.ExpectedTempMax)
	assert.Equal(t, domain.TripPlanned, got.Status)
	assert.Zero(t, got.GearCount)
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestTripRepo_GetByID_OtherUser(t *testing.T) {
	tx := newTx(t)
	owner := createUser(t, tx)
	other := createUser(t, tx)
	trip := createTrip(t, tx, owner.ID)

	_, err := repo.NewTripRepo(tx).GetByID(context.Background(), other.ID, trip.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_GetByID_Counts(t *testing.T) {
	tx := newTx(t)
	ctx := context.Background()
	user := createUser(t, tx)
	trip := createTrip(t, tx, user.ID)
	links := repo.NewTripGearRepo(tx)

	for i, packed := range []bool{true, false, true} {
		g := createGear(t, tx, user.ID, "item"+string(rune('A'+i)), nil)
		_, err := links.Create(ctx, domain.TripGearLink{
			TripID: trip.ID, GearID: g.ID, Origin: domain.OriginUserAdded, Quantity: 1, Packed: packed,
		})
		require.NoError(t, err)
	}

	got, err := repo.NewTripRepo(tx).GetByID(ctx, user.ID, trip.ID)

	require.NoError(t, err)
	assert.Equal(t, 3, got.GearCount)
	assert.Equal(t, 2, got.PackedCount)
}

func TestTripRepo_List_FilterAndPage(t *testing.T) {
	tx := newTx(t)
	ctx := context.Background()
	user := createUser(t, tx)
	r := repo.NewTripRepo(tx)

	for i := range 3 {
		trip := tripFixture(user.ID)
		trip.StartDate = trip.StartDate.AddDate(0, i, 0)
		trip.EndDate = trip.EndDate.AddDate(0, i, 0)
		if i == 2 {
			trip.Status = domain.TripInProgress
		}
		_, err := r.Create(ctx, trip)
		require.NoError(t, err)
	}

	all, err := r.List(ctx, user.ID, nil, domain.PaginationParams{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
	require.Len(t, all.Items, 2)
	assert.True(t, all.Items[0].StartDate.After(all.Items[1].StartDate), "newest first")

	planned := domain.TripPlanned
	filtered, err := r.List(ctx, user.ID, &planned, domain.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, filtered.Total)
	for _, trip := range filtered.Items {
		assert.Equal(t, domain.TripPlanned, trip.Status)
	}

	beyond, err := r.List(ctx, user.ID, nil, domain.PaginationParams{Page: 5, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, beyond.Total)
	assert.NotNil(t, beyond.Items)
	assert.Empty(t, beyond.Items)
}

func TestTripRepo_Update(t *testing.T) {
	tx := newTx(t)
	ctx := context.Background()
	user := createUser(t, tx)
	created := createTrip(t, tx, user.ID)

	created.Title = "Dry Ridge"
	created.EndDate = created.StartDate
	created.ComputeDuration()
	created.ExpectedWeather = nil
	created.Status = domain.TripInProgress

	updated, err := repo.NewTripRepo(tx).Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, "Dry Ridge", updated.Title)
	assert.Equal(t, 1, updated.DurationDays)
	assert.Empty(t, updated.ExpectedWeather)
	assert.Equal(t, domain.TripInProgress, updated.Status)
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	tx := newTx(t)
	user := createUser(t, tx)

	ghost := tripFixture(user.ID)
	ghost.ID = uuid.New()

	_, err := repo.NewTripRepo(tx).Update(context.Background(), ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete_CascadesLinksKeepsStatsAndGear(t *testing.T) {
	tx := newTx(t)
	ctx := context.Background()
	user := createUser(t, tx)
	trip := createTrip(t, tx, user.ID)
	gear := createGear(t, tx, user.ID, "Rain jacket", nil)

	_, err := repo.NewTripGearRepo(tx).Create(ctx, domain.TripGearLink{
		TripID: trip.ID, GearID: gear.ID, Origin: domain.OriginUserAdded, Quantity: 1,
	})
	require.NoError(t, err)
	_, err = repo.NewStatsRepo(tx).GetOrCreate(ctx, user.ID, gear.ID)
	require.NoError(t, err)

	require.NoError(t, repo.NewTripRepo(tx).Delete(ctx, user.ID, trip.ID))

	links, err := repo.NewTripGearRepo(tx).ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Empty(t, links)

	_, err = repo.NewGearRepo(tx).GetByID(ctx, user.ID, gear.ID)
	assert.NoError(t, err, "gear survives trip deletion")
	_, err = repo.NewStatsRepo(tx).GetByGear(ctx, user.ID, gear.ID)
	assert.NoError(t, err, "stats survive trip deletion")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	tx := newTx(t)
	user := createUser(t, tx)

	err := repo.NewTripRepo(tx).Delete(context.Background(), user.ID, uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
