//go:build integration_test || all_tests

package groceries

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/vaadhorim/portal/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteAll(ctx context.Context, repo *Repo) error {
	if _, err := repo.db.Exec(ctx, `DELETE FROM grocery_item`); err != nil {
		return err
	}
	_, err := repo.db.Exec(ctx, `DELETE FROM grocery_list`)
	return err
}

func testRepoSetup(t *testing.T) (*Repo, func()) {
	t.Helper()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	t.Logf("using postgres host: %s", host)

	dbPool, err := db.NewDBPool(timeoutCtx, db.NewDBPoolParams{
		DBHost:         host,
		DBPort:         "5432",
		DBName:         "vaad_horim",
		TracingEnabled: false,
	})
	require.NoError(t, err)

	return NewRepo(dbPool), func() {
		dbPool.Close()
	}
}

func TestRepo_ListsAndItems(t *testing.T) {
	repo, shutdown := testRepoSetup(t)
	defer shutdown()

	ctx := context.Background()
	require.NoError(t, deleteAll(ctx, repo))

	list, err := repo.AddList(ctx, &List{
		Name:      "קניות למסיבת פורים",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NotZero(t, list.ID)

	item1, err := repo.AddItem(ctx, &Item{ListID: list.ID, Name: "אוזני המן", Quantity: "100"})
	require.NoError(t, err)
	item2, err := repo.AddItem(ctx, &Item{ListID: list.ID, Name: "Соки", Quantity: "20"})
	require.NoError(t, err)

	fetched, err := repo.GetList(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 2)
	assert.Equal(t, item1.Name, fetched.Items[0].Name)

	item2.Purchased = true
	require.NoError(t, repo.UpdateItem(ctx, item2))
	fetched, err = repo.GetList(ctx, list.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Items[1].Purchased)

	require.NoError(t, repo.DeleteItem(ctx, item1.ID))
	assert.ErrorIs(t, repo.DeleteItem(ctx, item1.ID), ErrItemNotFound)

	lists, err := repo.Lists(ctx)
	require.NoError(t, err)
	assert.Len(t, lists, 1)

	require.NoError(t, repo.DeleteList(ctx, list.ID))
	_, err = repo.GetList(ctx, list.ID)
	assert.ErrorIs(t, err, ErrListNotFound)
}
