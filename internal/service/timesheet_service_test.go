package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewFixture struct {
	env    *testEnv
	emp    auth.Identity
	admin1 auth.Identity
	admin2 auth.Identity
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	env := newTestEnv(t)
	return &reviewFixture{
		env:    env,
		emp:    env.addUser(t, testutil.NewTestUser("Ana")),
		admin1: env.addUser(t, testutil.NewTestAdmin("Root")),
		admin2: env.addUser(t, testutil.NewTestAdmin("Boss")),
	}
}

func (f *reviewFixture) notifications(t *testing.T, userID string) []*domain.Notification {
	t.Helper()
	list, err := f.env.notesRepo.ListByUser(context.Background(), userID, 100)
	require.NoError(t, err)
	return list
}

func TestSubmit_TotalsWeekAndNotifiesAdmins(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	f.env.addEntry(t, f.emp.UserID, time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC), 3600)
	f.env.addEntry(t, f.emp.UserID, time.Date(2025, 6, 12, 9, 0, 0, 0, time.UTC), 1800)
	f.env.addEntry(t, f.emp.UserID, time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC), 1234)
	// Outside the week and another user's entry.
	f.env.addEntry(t, f.emp.UserID, time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC), 7200)
	f.env.addEntry(t, f.admin1.UserID, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), 7200)

	id, err := f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)

	sheet, err := f.env.sheetsRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetSubmitted, sheet.Status)
	assert.Equal(t, 1.84, sheet.TotalHours)
	require.NotNil(t, sheet.SubmittedAt)
	assert.True(t, testNow.Equal(*sheet.SubmittedAt))

	for _, admin := range []auth.Identity{f.admin1, f.admin2} {
		notes := f.notifications(t, admin.UserID)
		require.Len(t, notes, 1)
		assert.Equal(t, domain.NotifyTimesheetSubmitted, notes[0].Type)
		assert.Equal(t, "New Timesheet Submission", notes[0].Title)
		assert.Equal(t, "Ana submitted a timesheet for 2025-06-09", notes[0].Message)
		require.NotNil(t, notes[0].RelatedTimesheetID)
		assert.Equal(t, id, *notes[0].RelatedTimesheetID)
	}
	assert.Empty(t, f.notifications(t, f.emp.UserID))
}

func TestSubmit_EmptyWeekTotalsZero(t *testing.T) {
	f := newReviewFixture(t)

	id, err := f.env.timesheets.Submit(context.Background(), f.emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)

	sheet, err := f.env.sheetsRepo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0.0, sheet.TotalHours)
}

func TestSubmit_InvalidWeek(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	_, err := f.env.timesheets.Submit(ctx, f.emp, "2025-13-01", "2025-06-15")
	requireKind(t, err, domain.KindValidation)

	_, err = f.env.timesheets.Submit(ctx, f.emp, "2025-06-15", "2025-06-09")
	requireKind(t, err, domain.KindValidation)
}

func TestSubmit_LockedStatusesConflict(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	id, err := f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)

	_, err = f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	requireKind(t, err, domain.KindConflict)

	require.NoError(t, f.env.timesheets.Review(ctx, f.admin1, id, domain.TimesheetApproved, nil))
	_, err = f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	requireKind(t, err, domain.KindConflict)

	sheets, err := f.env.sheetsRepo.List(ctx, repository.TimesheetQuery{UserID: f.emp.UserID})
	require.NoError(t, err)
	assert.Len(t, sheets, 1)
}

func TestSubmit_ResubmitAfterDenialUpdatesInPlace(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	f.env.addEntry(t, f.emp.UserID, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), 3600)
	id, err := f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)

	require.NoError(t, f.env.timesheets.Review(ctx, f.admin1, id, domain.TimesheetDenied, strPtr("missing friday")))

	f.env.addEntry(t, f.emp.UserID, time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC), 5400)
	f.env.clock.Advance(24 * time.Hour)
	again, err := f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)
	assert.Equal(t, id, again, "resubmission keeps the record id")

	sheet, err := f.env.sheetsRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetSubmitted, sheet.Status)
	assert.Equal(t, 2.5, sheet.TotalHours)
	assert.True(t, testNow.Add(24*time.Hour).Equal(*sheet.SubmittedAt))

	assert.Len(t, f.notifications(t, f.admin1.UserID), 2)
}

func TestSubmit_RollbackWhenNotificationFails(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	// ExecContext #1 = timesheet insert, #2 = first admin notification.
	f.env.rewire(&testutil.FailOnNthExecUoW{
		DB:     f.env.db,
		FailOn: 2,
		Err:    fmt.Errorf("injected notification failure"),
	})

	_, err := f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	require.Error(t, err)

	_, err = f.env.sheetsRepo.GetByWeek(ctx, f.emp.UserID, testWeek)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, f.notifications(t, f.admin1.UserID))
}

func TestReview_ApproveNotifiesOwnerOnce(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	id, err := f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)

	f.env.clock.Advance(time.Hour)
	require.NoError(t, f.env.timesheets.Review(ctx, f.admin1, id, domain.TimesheetApproved, nil))

	sheet, err := f.env.sheetsRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetApproved, sheet.Status)
	require.NotNil(t, sheet.ReviewedBy)
	assert.Equal(t, f.admin1.UserID, *sheet.ReviewedBy)
	require.NotNil(t, sheet.ReviewedAt)
	assert.True(t, testNow.Add(time.Hour).Equal(*sheet.ReviewedAt))

	notes := f.notifications(t, f.emp.UserID)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotifyTimesheetApproved, notes[0].Type)
	assert.Equal(t, "Timesheet Approved", notes[0].Title)
	assert.Equal(t, "Your timesheet for 2025-06-09 has been approved", notes[0].Message)
}

func TestReview_DenyWithComment(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	id, err := f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)

	require.NoError(t, f.env.timesheets.Review(ctx, f.admin2, id, domain.TimesheetDenied, strPtr("missing friday")))

	sheet, err := f.env.sheetsRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetDenied, sheet.Status)
	require.NotNil(t, sheet.AdminComment)
	assert.Equal(t, "missing friday", *sheet.AdminComment)

	notes := f.notifications(t, f.emp.UserID)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotifyTimesheetDenied, notes[0].Type)
	assert.Equal(t, "Timesheet Denied", notes[0].Title)
	assert.Equal(t, "Your timesheet for 2025-06-09 has been denied: missing friday", notes[0].Message)
}

func TestReview_DenyWithoutCommentWritesNothing(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	id, err := f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)

	for _, comment := range []*string{nil, strPtr(""), strPtr("   ")} {
		err = f.env.timesheets.Review(ctx, f.admin1, id, domain.TimesheetDenied, comment)
		requireKind(t, err, domain.KindValidation)
	}

	sheet, err := f.env.sheetsRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetSubmitted, sheet.Status)
	assert.Nil(t, sheet.ReviewedAt)
	assert.Empty(t, f.notifications(t, f.emp.UserID))
}

func TestReview_Guards(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	id, err := f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)

	err = f.env.timesheets.Review(ctx, f.emp, id, domain.TimesheetApproved, nil)
	requireKind(t, err, domain.KindForbidden)

	err = f.env.timesheets.Review(ctx, f.admin1, id, domain.TimesheetSubmitted, nil)
	requireKind(t, err, domain.KindValidation)

	err = f.env.timesheets.Review(ctx, f.admin1, id, domain.TimesheetDraft, nil)
	requireKind(t, err, domain.KindValidation)

	err = f.env.timesheets.Review(ctx, f.admin1, "missing", domain.TimesheetApproved, nil)
	requireKind(t, err, domain.KindNotFound)

	assert.Empty(t, f.notifications(t, f.emp.UserID))
}

func TestReview_ReReviewIsAllowed(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	id, err := f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)

	require.NoError(t, f.env.timesheets.Review(ctx, f.admin1, id, domain.TimesheetApproved, nil))
	require.NoError(t, f.env.timesheets.Review(ctx, f.admin2, id, domain.TimesheetDenied, strPtr("second look")))

	sheet, err := f.env.sheetsRepo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.TimesheetDenied, sheet.Status)
	assert.Equal(t, f.admin2.UserID, *sheet.ReviewedBy)
	assert.Len(t, f.notifications(t, f.emp.UserID), 2)
}

func TestTimesheetListAndGet_Visibility(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()
	other := f.env.addUser(t, testutil.NewTestUser("Bo"))

	anaID, err := f.env.timesheets.Submit(ctx, f.emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)
	boID, err := f.env.timesheets.Submit(ctx, other, testWeek.Start, testWeek.End)
	require.NoError(t, err)
	require.NoError(t, f.env.timesheets.Review(ctx, f.admin1, boID, domain.TimesheetApproved, nil))

	mine, err := f.env.timesheets.List(ctx, f.emp, TimesheetFilter{UserID: other.UserID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, anaID, mine[0].ID)

	all, err := f.env.timesheets.List(ctx, f.admin1, TimesheetFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := f.env.timesheets.List(ctx, f.admin1, TimesheetFilter{Status: domain.TimesheetSubmitted})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, anaID, pending[0].ID)

	_, err = f.env.timesheets.List(ctx, f.admin1, TimesheetFilter{Status: "bogus"})
	requireKind(t, err, domain.KindValidation)

	_, err = f.env.timesheets.Get(ctx, f.emp, boID)
	requireKind(t, err, domain.KindNotFound)

	got, err := f.env.timesheets.Get(ctx, f.admin2, boID)
	require.NoError(t, err)
	assert.Equal(t, other.UserID, got.UserID)
}

func TestSubmit_ConcurrentSameWeekCreatesOneRow(t *testing.T) {
	env := newTestEnvWithDB(t, testutil.NewFileTestDB(t))
	ctx := context.Background()
	emp := env.addUser(t, testutil.NewTestUser("Ana"))
	env.addUser(t, testutil.NewTestAdmin("Root"))

	const workers = 6
	var wg sync.WaitGroup
	var ok, conflicts atomic.Int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.timesheets.Submit(ctx, emp, testWeek.Start, testWeek.End)
			switch {
			case err == nil:
				ok.Add(1)
			case domain.IsKind(err, domain.KindConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected submit error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())

	sheets, err := env.sheetsRepo.List(ctx, repository.TimesheetQuery{UserID: emp.UserID})
	require.NoError(t, err)
	assert.Len(t, sheets, 1)
}

func TestSubmit_ConcurrentResubmitAppliesOnce(t *testing.T) {
	env := newTestEnvWithDB(t, testutil.NewFileTestDB(t))
	ctx := context.Background()
	emp := env.addUser(t, testutil.NewTestUser("Ana"))
	admin := env.addUser(t, testutil.NewTestAdmin("Root"))

	id, err := env.timesheets.Submit(ctx, emp, testWeek.Start, testWeek.End)
	require.NoError(t, err)
	require.NoError(t, env.timesheets.Review(ctx, admin, id, domain.TimesheetDenied, strPtr("missing friday")))

	const workers = 6
	var wg sync.WaitGroup
	var ok, conflicts atomic.Int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.timesheets.Submit(ctx, emp, testWeek.Start, testWeek.End)
			switch {
			case err == nil:
				ok.Add(1)
			case domain.IsKind(err, domain.KindConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected resubmit error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())

	// One notice for the first submission and one for the winning resubmission.
	notes, err := env.notesRepo.ListByUser(ctx, admin.UserID, 50)
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}
