package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/dentplan/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepo_UpsertAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCategoryRepo(db)
	ctx := context.Background()

	cat := testutil.NewTestCategory("rct",
		testutil.WithCategoryName("Root Canal Treatment"),
		testutil.WithBaseCost("6000.50"),
		testutil.WithDescription("Endodontic treatment per tooth"))
	require.NoError(t, repo.Upsert(ctx, cat))

	fetched, err := repo.GetByID(ctx, "rct")
	require.NoError(t, err)
	assert.Equal(t, "Root Canal Treatment", fetched.Name)
	assert.True(t, decimal.RequireFromString("6000.50").Equal(fetched.BaseCost))
	assert.Equal(t, "Endodontic treatment per tooth", fetched.Description)
}

func TestCategoryRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCategoryRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRepo_ListKeepsInsertionOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCategoryRepo(db)
	ctx := context.Background()

	for _, id := range []string{"xray", "consultation", "braces"} {
		require.NoError(t, repo.Upsert(ctx, testutil.NewTestCategory(id)))
	}

	cats, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "xray", cats[0].ID)
	assert.Equal(t, "consultation", cats[1].ID)
	assert.Equal(t, "braces", cats[2].ID)
}

func TestCategoryRepo_UpsertUpdatesInPlace(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCategoryRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestCategory("filling", testutil.WithBaseCost("1500"))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestCategory("scaling")))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestCategory("filling", testutil.WithBaseCost("1750"))))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	cats, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "filling", cats[0].ID, "update keeps the original position")
	assert.True(t, decimal.NewFromInt(1750).Equal(cats[0].BaseCost))
}

func TestCategoryRepo_CountEmpty(t *testing.T) {
	db := testutil.NewTestDB(t)
	n, err := NewSQLiteCategoryRepo(db).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
