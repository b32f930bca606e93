package repo_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/repo"
)

// seedPopularityCategory inserts a fresh category with five catalog items
// scored 50..90 and returns its name.
func seedPopularityCategory(t *testing.T, tx pgx.Tx) domain.Category {
	t.Helper()
	ctx := context.Background()

	_, err := tx.Exec(ctx, `INSERT INTO categories (name) VALUES ('Popularity Test')`)
	require.NoError(t, err)
	c := category(t, tx, "Popularity Test")

	for name, score := range map[string]int{"Seventy": 70, "Ninety": 90, "Fifty": 50, "Eighty": 80, "Sixty": 60} {
		_, err := tx.Exec(ctx, `
			INSERT INTO catalog_items (name, category_id, popularity_score, common_activities)
			VALUES (@name, @category_id, @score, ARRAY['Test Activity'])`,
			pgx.NamedArgs{"name": name, "category_id": c.ID, "score": score})
		require.NoError(t, err)
	}
	return c
}

func TestCatalogRepo_TopByCategory(t *testing.T) {
	tx := newTx(t)
	c := seedPopularityCategory(t, tx)

	got, err := repo.NewCatalogRepo(tx).TopByCategory(context.Background(), c.ID, 2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ninety", got[0].Name)
	assert.Equal(t, 90, got[0].PopularityScore)
	assert.Equal(t, "Eighty", got[1].Name)
	assert.Equal(t, "Popularity Test", got[0].CategoryName)
}

func TestCatalogRepo_ByActivities(t *testing.T) {
	tx := newTx(t)
	seedPopularityCategory(t, tx)

	got, err := repo.NewCatalogRepo(tx).ByActivities(context.Background(), []string{"Test Activity", "Nothing"})

	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "Ninety", got[0].Name)
	assert.Equal(t, "Fifty", got[4].Name)
}

func TestCatalogRepo_List_Paged(t *testing.T) {
	tx := newTx(t)
	c := seedPopularityCategory(t, tx)

	page, err := repo.NewCatalogRepo(tx).List(context.Background(), &c.ID, domain.PaginationParams{Page: 2, Limit: 2})

	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Seventy", page.Items[0].Name)
}

func TestCatalogRepo_Seeded(t *testing.T) {
	tx := newTx(t)
	ctx := context.Background()
	shelter := category(t, tx, "Shelter")

	got, err := repo.NewCatalogRepo(tx).TopByCategory(ctx, shelter.ID, 2)

	require.NoError(t, err)
	require.Len(t, got, 2)
	// Three common activities score 30.
	assert.Equal(t, "Backpacking Tent (2-person)", got[0].Name)
	assert.Equal(t, 30, got[0].PopularityScore)

	item, err := repo.NewCatalogRepo(tx).GetByID(ctx, got[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Backpacking", "Camping", "Wild Camping"}, item.CommonActivities)
}

func TestCategoryAndActivityRepos(t *testing.T) {
	tx := newTx(t)
	ctx := context.Background()

	cats, err := repo.NewCategoryRepo(tx).List(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(cats), 35)

	_, err = repo.NewCategoryRepo(tx).GetByName(ctx, "No Such Category")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	acts, err := repo.NewActivityRepo(tx).List(ctx, "hik")
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "Hiking", acts[0].Name)
	assert.Contains(t, acts[0].TypicalGearCategories, "Footwear")

	got, err := repo.NewActivityRepo(tx).GetByID(ctx, acts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Hiking", got.Name)
}

func TestUserRepo_DuplicateUsername(t *testing.T) {
	tx := newTx(t)
	ctx := context.Background()
	u := createUser(t, tx)
	r := repo.NewUserRepo(tx)

	_, err := r.Create(ctx, domain.User{Username: u.Username, PasswordHash: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := r.GetByUsername(ctx, u.Username)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
}
