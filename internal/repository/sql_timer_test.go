package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerRepo_InsertAndGetActive(t *testing.T) {
	repo := NewSQLTimerRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	s := testutil.NewTestTimer("u1", "p1", "t1", start)
	require.NoError(t, repo.Insert(ctx, s))

	got, err := repo.GetActive(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.True(t, got.Active)
	assert.True(t, start.Equal(got.StartTime))
	assert.True(t, start.Equal(got.LastHeartbeat))
	assert.Equal(t, "2025-06-10", got.Date)
}

func TestTimerRepo_GetActive_NotFound(t *testing.T) {
	repo := NewSQLTimerRepo(testutil.NewTestDB(t))

	_, err := repo.GetActive(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimerRepo_SecondActiveInsert_Duplicate(t *testing.T) {
	repo := NewSQLTimerRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testutil.NewTestTimer("u1", "p1", "t1", time.Now())))
	err := repo.Insert(ctx, testutil.NewTestTimer("u1", "p2", "t2", time.Now()))
	assert.ErrorIs(t, err, ErrDuplicate)

	// Another user is unaffected.
	require.NoError(t, repo.Insert(ctx, testutil.NewTestTimer("u2", "p1", "t1", time.Now())))
}

func TestTimerRepo_Heartbeat(t *testing.T) {
	repo := NewSQLTimerRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, testutil.NewTestTimer("u1", "p1", "t1", start)))

	beat := start.Add(90 * time.Second)
	require.NoError(t, repo.Heartbeat(ctx, "u1", beat))

	got, err := repo.GetActive(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, beat.Equal(got.LastHeartbeat))
	assert.True(t, start.Equal(got.StartTime), "heartbeat must not move start time")

	assert.ErrorIs(t, repo.Heartbeat(ctx, "u2", beat), ErrNotFound)
}

func TestTimerRepo_Deactivate_OnlyOnce(t *testing.T) {
	repo := NewSQLTimerRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	s := testutil.NewTestTimer("u1", "p1", "t1", time.Now())
	require.NoError(t, repo.Insert(ctx, s))

	require.NoError(t, repo.Deactivate(ctx, s.ID))
	assert.ErrorIs(t, repo.Deactivate(ctx, s.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Heartbeat(ctx, "u1", time.Now()), ErrNotFound)

	_, err := repo.GetActive(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Inactive rows do not block a new active session.
	require.NoError(t, repo.Insert(ctx, testutil.NewTestTimer("u1", "p1", "t1", time.Now())))
}

func TestTimerRepo_ListAndCountActive(t *testing.T) {
	repo := NewSQLTimerRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	a := testutil.NewTestTimer("u1", "p1", "t1", base.Add(time.Hour))
	b := testutil.NewTestTimer("u2", "p1", "t1", base)
	c := testutil.NewTestTimer("u3", "p1", "t1", base)
	require.NoError(t, repo.Insert(ctx, a))
	require.NoError(t, repo.Insert(ctx, b))
	require.NoError(t, repo.Insert(ctx, c))
	require.NoError(t, repo.Deactivate(ctx, c.ID))

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)

	n, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
