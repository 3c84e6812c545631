//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/routine/internal/domain"
)

func TestRepositoryRespectsUserIsolation(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("tracker"),
		postgrescontainer.WithUsername("tracker"),
		postgrescontainer.WithPassword("tracker"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))

	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	repo := NewRepository(pool)

	now := time.Now().UTC()
	activity := domain.Activity{
		ID:        uuid.NewString(),
		UserID:    uuid.NewString(),
		Category:  domain.CategoryCoding,
		StartTime: now.Add(-time.Hour),
		EndTime:   now,
		CreatedAt: now,
	}

	require.NoError(t, repo.CreateActivity(ctx, activity))

	from := now.AddDate(0, 0, -1)
	to := now.Add(time.Hour)

	stored, _, err := repo.ListActivities(ctx, activity.UserID, from, to, nil, 10)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, activity.ID, stored[0].ID)

	otherUser := uuid.NewString()
	storedOther, _, err := repo.ListActivities(ctx, otherUser, from, to, nil, 10)
	require.NoError(t, err)
	require.Empty(t, storedOther, "RLS should prevent cross-user access")

	var outboxCount int
	err = pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM outbox WHERE aggregate_id = $1 AND event_type = 'activity.created'`,
		activity.ID,
	).Scan(&outboxCount)
	require.NoError(t, err)
	require.Equal(t, 1, outboxCount)
}

func TestRepositoryHabitLogUpsertKeepsOneRowPerDay(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("tracker"),
		postgrescontainer.WithUsername("tracker"),
		postgrescontainer.WithPassword("tracker"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))

	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	repo := NewRepository(pool)

	userID := uuid.NewString()
	habit := domain.Habit{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        "Morning run",
		Frequency:   domain.FrequencyDaily,
		TargetCount: 1,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.CreateHabit(ctx, habit))

	day := domain.DateOf(time.Now().UTC())
	first := domain.HabitLog{
		ID:        uuid.NewString(),
		HabitID:   habit.ID,
		UserID:    userID,
		Date:      day,
		Completed: true,
		Count:     1,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := repo.UpsertHabitLog(ctx, first)
	require.NoError(t, err)
	require.Equal(t, first.ID, stored.ID)

	second := first
	second.ID = uuid.NewString()
	second.Count = 2
	stored, err = repo.UpsertHabitLog(ctx, second)
	require.NoError(t, err)
	require.Equal(t, first.ID, stored.ID, "upsert should keep the original row")
	require.Equal(t, 2, stored.Count)

	logs, err := repo.ListHabitLogs(ctx, userID, habit.ID, nil, nil)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	files := []string{
		"../../../db/postgres/migrations/0001_init.up.sql",
		"../../../db/postgres/migrations/0002_outbox_dlq_retry.up.sql",
	}

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	for _, rel := range files {
		path := resolvePath(t, rel)
		contents, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		_, execErr := pool.Exec(ctx, string(contents))
		require.NoError(t, execErr)
	}
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
