// Package app wires repositories and services over one database.
package app

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/repository"
	"github.com/alexanderramin/punchclock/internal/service"
)

// DefaultStaleAfter is used when Options.StaleAfter is nil.
const DefaultStaleAfter = 10 * time.Minute

type Options struct {
	Clock      service.Clock
	IDs        service.IDGenerator
	// StaleAfter is the heartbeat age that marks a running timer stale.
	// Zero turns the flag off.
	StaleAfter *time.Duration
	// Logger receives use-case events; nil disables them.
	Logger *slog.Logger
}

// App is the set of services shared by the HTTP API and the CLI.
type App struct {
	DB      *sql.DB
	Dialect db.Dialect
	Clock   service.Clock

	Users         service.UserService
	Projects      service.ProjectService
	Timers        service.TimerService
	Entries       service.EntryService
	Timesheets    service.TimesheetService
	Notifications service.NotificationService
	Reports       service.ReportService
}

func New(database *sql.DB, dialect db.Dialect, opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = service.SystemClock{}
	}
	if opts.IDs == nil {
		opts.IDs = service.UUIDGenerator{}
	}
	staleAfter := DefaultStaleAfter
	if opts.StaleAfter != nil {
		staleAfter = *opts.StaleAfter
	}
	observer := service.NewSlogUseCaseObserver(opts.Logger)

	conn := db.Bind(database, dialect)
	users := repository.NewSQLUserRepo(conn)
	projects := repository.NewSQLProjectRepo(conn)
	tasks := repository.NewSQLTaskRepo(conn)
	entries := repository.NewSQLTimeEntryRepo(conn)
	timers := repository.NewSQLTimerRepo(conn)
	timesheets := repository.NewSQLTimesheetRepo(conn)
	notifications := repository.NewSQLNotificationRepo(conn)
	uow := db.NewSQLUnitOfWork(database, dialect)

	return &App{
		DB:            database,
		Dialect:       dialect,
		Clock:         opts.Clock,
		Users:         service.NewUserService(users, opts.Clock, opts.IDs, observer),
		Projects:      service.NewProjectService(projects, tasks, opts.Clock, opts.IDs, observer),
		Timers:        service.NewTimerService(timers, users, uow, opts.Clock, opts.IDs, staleAfter, observer),
		Entries:       service.NewEntryService(entries, opts.Clock, opts.IDs, observer),
		Timesheets:    service.NewTimesheetService(timesheets, uow, opts.Clock, opts.IDs, observer),
		Notifications: service.NewNotificationService(notifications, observer),
		Reports:       service.NewReportService(entries, users, projects, tasks, timers, timesheets, opts.Clock),
	}
}
