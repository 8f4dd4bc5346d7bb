package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateManual_ComputesDurationAndDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// 23:00 at UTC-5 is 04:00 UTC on the next day.
	loc := time.FixedZone("EST", -5*3600)
	start := time.Date(2025, 6, 9, 23, 0, 0, 0, loc)
	end := start.Add(2 * time.Hour)

	entry, err := env.entries.CreateManual(ctx, "u1", domain.ManualEntryInput{
		ProjectID: "p1",
		TaskID:    "t1",
		StartTime: start,
		EndTime:   &end,
		Notes:     strPtr("review"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7200), entry.Duration)
	assert.Equal(t, "2025-06-10", entry.Date)
	assert.Equal(t, domain.EntryManual, entry.Kind)

	stored, err := env.entriesRepo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Date, stored.Date)
}

func TestCreateManual_SuppliedDurationWins(t *testing.T) {
	env := newTestEnv(t)

	end := testNow.Add(time.Hour)
	d := int64(1800)
	entry, err := env.entries.CreateManual(context.Background(), "u1", domain.ManualEntryInput{
		ProjectID: "p1", TaskID: "t1", StartTime: testNow, EndTime: &end, Duration: &d,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1800), entry.Duration)
}

func TestCreateManual_NegativeSpanIsKept(t *testing.T) {
	env := newTestEnv(t)

	end := testNow.Add(-30 * time.Minute)
	entry, err := env.entries.CreateManual(context.Background(), "u1", domain.ManualEntryInput{
		ProjectID: "p1", TaskID: "t1", StartTime: testNow, EndTime: &end,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-1800), entry.Duration)
}

func TestCreateManual_RequiresEndTime(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.entries.CreateManual(context.Background(), "u1", domain.ManualEntryInput{
		ProjectID: "p1", TaskID: "t1", StartTime: testNow,
	})
	requireKind(t, err, domain.KindValidation)
}

func TestDeleteEntry_Authorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.addUser(t, testutil.NewTestUser("Owner"))
	other := env.addUser(t, testutil.NewTestUser("Other"))
	admin := env.addUser(t, testutil.NewTestAdmin("Admin"))

	e1 := env.addEntry(t, owner.UserID, testNow, 3600)
	e2 := env.addEntry(t, owner.UserID, testNow, 3600)

	requireKind(t, env.entries.Delete(ctx, other, e1.ID), domain.KindForbidden)
	_, err := env.entriesRepo.GetByID(ctx, e1.ID)
	require.NoError(t, err, "forbidden delete must leave the entry")

	require.NoError(t, env.entries.Delete(ctx, owner, e1.ID))
	require.NoError(t, env.entries.Delete(ctx, admin, e2.ID))

	requireKind(t, env.entries.Delete(ctx, owner, e1.ID), domain.KindNotFound)
}

func TestListEntries_Scoping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ana := env.addUser(t, testutil.NewTestUser("Ana"))
	bo := env.addUser(t, testutil.NewTestUser("Bo"))
	admin := env.addUser(t, testutil.NewTestAdmin("Admin"))

	env.addEntry(t, ana.UserID, testNow.AddDate(0, 0, -1), 600)
	env.addEntry(t, ana.UserID, testNow, 600)
	env.addEntry(t, bo.UserID, testNow, 600)

	// Employees cannot widen the filter to someone else.
	mine, err := env.entries.List(ctx, ana, EntryFilter{UserID: bo.UserID})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, e := range mine {
		assert.Equal(t, ana.UserID, e.UserID)
	}
	assert.True(t, mine[0].StartTime.After(mine[1].StartTime), "newest first")

	all, err := env.entries.List(ctx, admin, EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bos, err := env.entries.List(ctx, admin, EntryFilter{UserID: bo.UserID})
	require.NoError(t, err)
	assert.Len(t, bos, 1)

	today, err := env.entries.List(ctx, admin, EntryFilter{StartDate: "2025-06-10", EndDate: "2025-06-10"})
	require.NoError(t, err)
	assert.Len(t, today, 2)

	_, err = env.entries.List(ctx, admin, EntryFilter{StartDate: "10/06/2025"})
	requireKind(t, err, domain.KindValidation)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1000, clampLimit(0, 1000))
	assert.Equal(t, 1000, clampLimit(-3, 1000))
	assert.Equal(t, 1000, clampLimit(5000, 1000))
	assert.Equal(t, 25, clampLimit(25, 1000))
}
