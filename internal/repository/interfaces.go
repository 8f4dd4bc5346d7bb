package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// EntryQuery filters time entries. Empty fields are not applied; dates are
// inclusive bounds on the entry's calendar date.
type EntryQuery struct {
	UserID    string
	ProjectID string
	FromDate  string
	ToDate    string
	Limit     int
}

// TimesheetQuery filters timesheets. Empty fields are not applied.
type TimesheetQuery struct {
	UserID string
	Status domain.TimesheetStatus
	Limit  int
}

// UserCount filters a user count. Nil fields are not applied.
type UserCount struct {
	Role   *domain.Role
	Status *domain.UserStatus
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Count(ctx context.Context, filter UserCount) (int, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Count(ctx context.Context) (int, error)
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
}

type TimeEntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	List(ctx context.Context, q EntryQuery) ([]*domain.TimeEntry, error)
	Delete(ctx context.Context, id string) error
}

type TimerRepo interface {
	// Insert fails with ErrDuplicate when the user already has an active session.
	Insert(ctx context.Context, s *domain.TimerSession) error
	GetActive(ctx context.Context, userID string) (*domain.TimerSession, error)
	// Heartbeat touches the user's active session; ErrNotFound when none.
	Heartbeat(ctx context.Context, userID string, at time.Time) error
	// Deactivate clears the active flag only if still set; ErrNotFound otherwise.
	Deactivate(ctx context.Context, sessionID string) error
	ListActive(ctx context.Context) ([]*domain.TimerSession, error)
	CountActive(ctx context.Context) (int, error)
}

type TimesheetRepo interface {
	// Create fails with ErrDuplicate when the week key already has a record.
	Create(ctx context.Context, t *domain.Timesheet) error
	GetByID(ctx context.Context, id string) (*domain.Timesheet, error)
	GetByWeek(ctx context.Context, userID string, key domain.WeekKey) (*domain.Timesheet, error)
	// UpdateSubmission and UpdateReview only write while the stored status is
	// still from, and fail with ErrNotFound otherwise.
	UpdateSubmission(ctx context.Context, t *domain.Timesheet, from domain.TimesheetStatus) error
	UpdateReview(ctx context.Context, t *domain.Timesheet, from domain.TimesheetStatus) error
	List(ctx context.Context, q TimesheetQuery) ([]*domain.Timesheet, error)
	CountByStatus(ctx context.Context, status domain.TimesheetStatus) (int, error)
}

type NotificationRepo interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	// MarkRead flags one notification owned by userID; ErrNotFound otherwise.
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}
