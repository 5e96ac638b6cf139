//go:build integration_test || all_tests

package events

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/vaadhorim/portal/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteAll(ctx context.Context, repo *Repo) (int64, error) {
	tag, err := repo.db.Exec(ctx, `DELETE FROM event`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
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

func TestRepo_BasicCRUD(t *testing.T) {
	repo, shutdown := testRepoSetup(t)
	defer shutdown()

	ctx := context.Background()
	deleted, err := deleteAll(ctx, repo)
	require.NoError(t, err)
	t.Logf("test setup, deleted events: %d", deleted)

	now := time.Now()
	event1 := &Event{
		TitleHe:      "אספת הורים",
		TitleRu:      "Родительское собрание",
		Description:  "first",
		Location:     "בית הספר",
		StartsAt:     now.Add(24 * time.Hour),
		BudgetAgorot: 0,
		CreatedAt:    now,
	}
	event2 := &Event{
		TitleHe:      "טיול שכבתי",
		Description:  "second",
		StartsAt:     now.Add(-24 * time.Hour),
		BudgetAgorot: 120000,
		CreatedAt:    now,
	}

	added1, err := repo.Add(ctx, event1)
	require.NoError(t, err)
	require.NotZero(t, added1.ID)
	added2, err := repo.Add(ctx, event2)
	require.NoError(t, err)
	require.NotZero(t, added2.ID)

	gotEvent, err := repo.Get(ctx, added1.ID)
	require.NoError(t, err)
	assert.Equal(t, event1.TitleHe, gotEvent.TitleHe)
	assert.Equal(t, event1.TitleRu, gotEvent.TitleRu)

	gotEvent.Location = "החצר האחורית"
	require.NoError(t, repo.Update(ctx, gotEvent))
	gotEvent, err = repo.Get(ctx, added1.ID)
	require.NoError(t, err)
	assert.Equal(t, "החצר האחורית", gotEvent.Location)

	events, total, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, events, 2)

	upcoming, err := repo.Upcoming(ctx, now)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, added1.ID, upcoming[0].ID)

	require.NoError(t, repo.Delete(ctx, added1.ID))
	_, err = repo.Get(ctx, added1.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, added1.ID), ErrEventNotFound)
}
