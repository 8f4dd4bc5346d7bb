package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testNow is a Tuesday.
var testNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

var testWeek = domain.WeekKey{Start: "2025-06-09", End: "2025-06-15"}

// testEnv wires every service against one database.
type testEnv struct {
	db            *sql.DB
	clock         *testutil.FakeClock
	users         *repository.SQLUserRepo
	projectsRepo  *repository.SQLProjectRepo
	tasksRepo     *repository.SQLTaskRepo
	entriesRepo   *repository.SQLTimeEntryRepo
	timersRepo    *repository.SQLTimerRepo
	sheetsRepo    *repository.SQLTimesheetRepo
	notesRepo     *repository.SQLNotificationRepo
	uow           db.UnitOfWork
	timers        TimerService
	entries       EntryService
	timesheets    TimesheetService
	notifications NotificationService
	reports       ReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithDB(t, testutil.NewTestDB(t))
}

func newTestEnvWithDB(t *testing.T, database *sql.DB) *testEnv {
	t.Helper()
	env := &testEnv{
		db:           database,
		clock:        testutil.NewFakeClock(testNow),
		users:        repository.NewSQLUserRepo(database),
		projectsRepo: repository.NewSQLProjectRepo(database),
		tasksRepo:    repository.NewSQLTaskRepo(database),
		entriesRepo:  repository.NewSQLTimeEntryRepo(database),
		timersRepo:   repository.NewSQLTimerRepo(database),
		sheetsRepo:   repository.NewSQLTimesheetRepo(database),
		notesRepo:    repository.NewSQLNotificationRepo(database),
		uow:          testutil.NewTestUoW(database),
	}
	env.rewire(env.uow)
	return env
}

// rewire rebuilds the transactional services on top of uow.
func (e *testEnv) rewire(uow db.UnitOfWork) {
	ids := UUIDGenerator{}
	e.timers = NewTimerService(e.timersRepo, e.users, uow, e.clock, ids, 10*time.Minute)
	e.entries = NewEntryService(e.entriesRepo, e.clock, ids)
	e.timesheets = NewTimesheetService(e.sheetsRepo, uow, e.clock, ids)
	e.notifications = NewNotificationService(e.notesRepo)
	e.reports = NewReportService(e.entriesRepo, e.users, e.projectsRepo, e.tasksRepo, e.timersRepo, e.sheetsRepo, e.clock)
}

func (e *testEnv) addUser(t *testing.T, u *domain.User) auth.Identity {
	t.Helper()
	require.NoError(t, e.users.Create(context.Background(), u))
	return auth.IdentityOf(u)
}

func (e *testEnv) addEntry(t *testing.T, userID string, start time.Time, seconds int64) *domain.TimeEntry {
	t.Helper()
	entry := testutil.NewTestEntry(userID, "p1", "t1", testutil.WithStart(start), testutil.WithDuration(seconds))
	require.NoError(t, e.entriesRepo.Create(context.Background(), entry))
	return entry
}

func requireKind(t *testing.T, err error, kind domain.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	got, ok := domain.KindOf(err)
	require.Truef(t, ok, "expected a domain error of kind %s, got %v", kind, err)
	require.Equal(t, kind, got, "error: %v", err)
}

func strPtr(s string) *string { return &s }
