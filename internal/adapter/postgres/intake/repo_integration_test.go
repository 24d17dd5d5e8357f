//go:build integration

package intake_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/intakelog/internal/adapter/postgres/intake"
	"github.com/heartmarshall/intakelog/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/intakelog/internal/domain"
)

// The tests below share one database, so they do not run in parallel.

func newIntegrationRepo(t *testing.T) *intake.Repo {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)

	repo := intake.New(pool, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func TestIntegration_InsertListClear(t *testing.T) {
	repo := newIntegrationRepo(t)
	ctx := context.Background()

	tea := "tea"
	first, err := repo.Insert(ctx, domain.IntakeRecord{Date: "2024-05-01", Time: "09:05 AM", Amount: 8, DrinkType: &tea})
	require.NoError(t, err)
	second, err := repo.Insert(ctx, domain.IntakeRecord{Date: "2024-05-02", Time: "10:00 AM", Amount: 4})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "tea", *all[0].DrinkType)
	assert.Nil(t, all[1].DrinkType)

	byDate, err := repo.ListByDate(ctx, "2024-05-02")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, second.ID, byDate[0].ID)

	n, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	next, err := repo.Insert(ctx, domain.IntakeRecord{Date: "2024-05-03", Time: "08:00 AM", Amount: 1})
	require.NoError(t, err)
	assert.Greater(t, next.ID, second.ID)
}

func TestIntegration_MigrateTwice(t *testing.T) {
	repo := newIntegrationRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Migrate(ctx))
	require.NoError(t, repo.Ping(ctx))
}
