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

func TestTimeReport_GroupByProjectWithUnknownLabel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.addUser(t, testutil.NewTestAdmin("Root"))

	proj := testutil.NewTestProject("Website", admin.UserID)
	require.NoError(t, env.projectsRepo.Create(ctx, proj))

	mk := func(projectID string, day int, secs int64) {
		start := time.Date(2025, 6, day, 9, 0, 0, 0, time.UTC)
		e := testutil.NewTestEntry("u1", projectID, "t1", testutil.WithStart(start), testutil.WithDuration(secs))
		require.NoError(t, env.entriesRepo.Create(ctx, e))
	}
	mk(proj.ID, 9, 3600)
	mk(proj.ID, 10, 1800)
	mk("deleted-project", 11, 900)
	mk(proj.ID, 20, 3600) // outside range

	report, err := env.reports.TimeReport(ctx, admin, ReportQuery{
		StartDate: "2025-06-09", EndDate: "2025-06-15", GroupBy: GroupByProject,
	})
	require.NoError(t, err)
	require.Len(t, report.Groups, 2)

	byID := map[string]ReportGroup{}
	for _, g := range report.Groups {
		byID[g.ID] = g
	}
	assert.Equal(t, "Website", byID[proj.ID].Label)
	assert.Equal(t, int64(5400), byID[proj.ID].TotalSeconds)
	assert.Equal(t, 1.5, byID[proj.ID].TotalHours)
	assert.Equal(t, 2, byID[proj.ID].EntryCount)
	assert.Equal(t, unknownLabel, byID["deleted-project"].Label)
	assert.Equal(t, 0.25, byID["deleted-project"].TotalHours)

	assert.Equal(t, int64(6300), report.Summary.TotalSeconds)
	assert.Equal(t, 1.75, report.Summary.TotalHours)
	assert.Equal(t, 3, report.Summary.TotalEntries)
}

func TestTimeReport_GroupingModes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.addUser(t, testutil.NewTestAdmin("Root"))
	ana := env.addUser(t, testutil.NewTestUser("Ana"))
	bo := env.addUser(t, testutil.NewTestUser("Bo"))

	env.addEntry(t, ana.UserID, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), 3600)
	env.addEntry(t, ana.UserID, time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC), 3600)
	env.addEntry(t, bo.UserID, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), 1800)

	q := ReportQuery{StartDate: "2025-06-09", EndDate: "2025-06-15"}

	q.GroupBy = GroupByUser
	byUser, err := env.reports.TimeReport(ctx, admin, q)
	require.NoError(t, err)
	require.Len(t, byUser.Groups, 2)
	labels := []string{byUser.Groups[0].Label, byUser.Groups[1].Label}
	assert.ElementsMatch(t, []string{"Ana", "Bo"}, labels)

	q.GroupBy = GroupByDate
	byDate, err := env.reports.TimeReport(ctx, admin, q)
	require.NoError(t, err)
	require.Len(t, byDate.Groups, 2)
	assert.Equal(t, "2025-06-09", byDate.Groups[0].ID)
	assert.Equal(t, "2025-06-10", byDate.Groups[1].Label)
	assert.Equal(t, 1.5, byDate.Groups[1].TotalHours)

	q.GroupBy = "whatever"
	flat, err := env.reports.TimeReport(ctx, admin, q)
	require.NoError(t, err)
	require.Len(t, flat.Groups, 1)
	assert.Equal(t, "all", flat.Groups[0].ID)
	assert.Equal(t, 2.5, flat.Groups[0].TotalHours)

	// Employees only ever see themselves.
	q.GroupBy = GroupByUser
	q.UserID = bo.UserID
	scoped, err := env.reports.TimeReport(ctx, ana, q)
	require.NoError(t, err)
	require.Len(t, scoped.Groups, 1)
	assert.Equal(t, ana.UserID, scoped.Groups[0].ID)
	assert.Equal(t, 2, scoped.Summary.TotalEntries)
}

func TestTimeReport_RequiresValidRange(t *testing.T) {
	env := newTestEnv(t)
	admin := env.addUser(t, testutil.NewTestAdmin("Root"))

	_, err := env.reports.TimeReport(context.Background(), admin, ReportQuery{StartDate: "2025-06-09"})
	requireKind(t, err, domain.KindValidation)

	_, err = env.reports.TimeReport(context.Background(), admin, ReportQuery{StartDate: "2025-06-15", EndDate: "2025-06-09"})
	requireKind(t, err, domain.KindValidation)
}

func TestDashboard_Admin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.addUser(t, testutil.NewTestAdmin("Root"))
	ana := env.addUser(t, testutil.NewTestUser("Ana"))
	env.addUser(t, testutil.NewTestUser("Gone", testutil.WithUserStatus(domain.UserInactive)))

	require.NoError(t, env.projectsRepo.Create(ctx, testutil.NewTestProject("P", admin.UserID)))
	_, err := env.timers.Start(ctx, ana.UserID, "p1", "t1")
	require.NoError(t, err)
	_, err = env.timesheets.Submit(ctx, ana, testWeek.Start, testWeek.End)
	require.NoError(t, err)

	stats, err := env.reports.Dashboard(ctx, admin)
	require.NoError(t, err)
	require.NotNil(t, stats.Admin)
	assert.Nil(t, stats.Employee)
	assert.Equal(t, AdminStats{
		TotalEmployees:    2,
		ActiveEmployees:   1,
		PendingTimesheets: 1,
		TotalProjects:     1,
		ActiveTimers:      1,
	}, *stats.Admin)
}

func TestDashboard_EmployeeUsesMondayWeek(t *testing.T) {
	env := newTestEnv(t)
	ana := env.addUser(t, testutil.NewTestUser("Ana"))

	// testNow is Tuesday 2025-06-10.
	env.addEntry(t, ana.UserID, time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC), 3600)
	env.addEntry(t, ana.UserID, time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC), 5400)
	env.addEntry(t, ana.UserID, time.Date(2025, 6, 8, 8, 0, 0, 0, time.UTC), 7200) // previous Sunday

	stats, err := env.reports.Dashboard(context.Background(), ana)
	require.NoError(t, err)
	require.NotNil(t, stats.Employee)
	assert.Nil(t, stats.Admin)
	assert.Equal(t, 1.0, stats.Employee.TodayHours)
	assert.Equal(t, 2.5, stats.Employee.WeekHours)
	assert.Equal(t, 2, stats.Employee.TotalEntries)
}
