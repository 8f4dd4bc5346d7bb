package service

import (
	"context"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/domain"
)

// EntryListLimit caps every list of entries or timesheets returned to callers.
const EntryListLimit = 1000

// DefaultNotificationLimit applies when List is called without a limit.
const DefaultNotificationLimit = 50

// ActiveTimer is one running session as shown to admins.
type ActiveTimer struct {
	Session        *domain.TimerSession
	UserName       string
	ElapsedSeconds int64
	Stale          bool
}

type TimerService interface {
	Start(ctx context.Context, userID, projectID, taskID string) (*domain.TimerSession, error)
	Heartbeat(ctx context.Context, userID string) (time.Time, error)
	Stop(ctx context.Context, userID string, notes *string) (*domain.TimeEntry, error)
	// GetActive returns nil, nil when the user has no running timer.
	GetActive(ctx context.Context, userID string) (*domain.TimerSession, error)
	ListActive(ctx context.Context) ([]ActiveTimer, error)
}

// EntryFilter narrows an entry listing. Dates are inclusive YYYY-MM-DD bounds.
type EntryFilter struct {
	UserID    string
	ProjectID string
	StartDate string
	EndDate   string
	Limit     int
}

type EntryService interface {
	CreateManual(ctx context.Context, userID string, in domain.ManualEntryInput) (*domain.TimeEntry, error)
	Delete(ctx context.Context, requester auth.Identity, id string) error
	List(ctx context.Context, requester auth.Identity, filter EntryFilter) ([]*domain.TimeEntry, error)
}

type TimesheetFilter struct {
	UserID string
	Status domain.TimesheetStatus
	Limit  int
}

type TimesheetService interface {
	Submit(ctx context.Context, submitter auth.Identity, weekStart, weekEnd string) (string, error)
	Review(ctx context.Context, admin auth.Identity, id string, status domain.TimesheetStatus, comment *string) error
	List(ctx context.Context, requester auth.Identity, filter TimesheetFilter) ([]*domain.Timesheet, error)
	Get(ctx context.Context, requester auth.Identity, id string) (*domain.Timesheet, error)
}

type NotificationService interface {
	List(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// Report grouping keys.
const (
	GroupByUser    = "user"
	GroupByProject = "project"
	GroupByTask    = "task"
	GroupByDate    = "date"
)

type ReportQuery struct {
	StartDate string
	EndDate   string
	GroupBy   string
	UserID    string
	ProjectID string
}

type ReportGroup struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	TotalSeconds int64   `json:"total_seconds"`
	TotalHours   float64 `json:"total_hours"`
	EntryCount   int     `json:"entry_count"`
}

type ReportSummary struct {
	TotalSeconds int64   `json:"total_seconds"`
	TotalHours   float64 `json:"total_hours"`
	TotalEntries int     `json:"total_entries"`
}

type TimeReport struct {
	Groups  []ReportGroup `json:"data"`
	Summary ReportSummary `json:"summary"`
}

// DashboardStats holds the admin figures or the employee figures, never both.
type DashboardStats struct {
	Admin    *AdminStats    `json:"admin,omitempty"`
	Employee *EmployeeStats `json:"employee,omitempty"`
}

type AdminStats struct {
	TotalEmployees    int `json:"total_employees"`
	ActiveEmployees   int `json:"active_employees"`
	PendingTimesheets int `json:"pending_timesheets"`
	TotalProjects     int `json:"total_projects"`
	ActiveTimers      int `json:"active_timers"`
}

type EmployeeStats struct {
	TodayHours   float64 `json:"today_hours"`
	WeekHours    float64 `json:"week_hours"`
	TotalEntries int     `json:"total_entries"`
}

type ReportService interface {
	TimeReport(ctx context.Context, requester auth.Identity, q ReportQuery) (*TimeReport, error)
	Dashboard(ctx context.Context, requester auth.Identity) (*DashboardStats, error)
}

type CreateUserInput struct {
	Email          string
	Name           string
	Password       string
	Role           domain.Role
	Status         domain.UserStatus
	DefaultProject *string
	DefaultTask    *string
}

// UpdateUserInput applies only the non-nil fields.
type UpdateUserInput struct {
	Email          *string
	Name           *string
	Password       *string
	Role           *domain.Role
	Status         *domain.UserStatus
	DefaultProject *string
	DefaultTask    *string
}

type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	// EnsureDefaultAdmin creates an admin when none exists and reports whether it did.
	EnsureDefaultAdmin(ctx context.Context, email, password string) (bool, error)
}

type ProjectInput struct {
	Name        string
	Description *string
}

type TaskInput struct {
	Name        string
	Description *string
	ProjectID   string
}

type ProjectService interface {
	CreateProject(ctx context.Context, createdBy string, in ProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, id string, in ProjectInput) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	CreateTask(ctx context.Context, in TaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, in TaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, projectID string) ([]*domain.Task, error)
}
