package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/google/uuid"
)

var testEmailCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithUserStatus(s domain.UserStatus) UserOption {
	return func(u *domain.User) {
		u.Status = s
	}
}

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func WithPasswordHash(h string) UserOption {
	return func(u *domain.User) {
		u.PasswordHash = h
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	n := testEmailCounter.Add(1)
	u := &domain.User{
		ID:        uuid.New().String(),
		Email:     fmt.Sprintf("user%d@example.com", n),
		Name:      name,
		Role:      domain.RoleEmployee,
		Status:    domain.UserActive,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func NewTestAdmin(name string, opts ...UserOption) *domain.User {
	return NewTestUser(name, append([]UserOption{WithRole(domain.RoleAdmin)}, opts...)...)
}

func NewTestProject(name, createdBy string) *domain.Project {
	return &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedBy: createdBy,
		Status:    domain.ProjectActive,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestTask(projectID, name string) *domain.Task {
	return &domain.Task{
		ID:        uuid.New().String(),
		Name:      name,
		ProjectID: projectID,
		Status:    domain.ProjectActive,
		CreatedAt: time.Now().UTC(),
	}
}

// TimeEntry options
type EntryOption func(*domain.TimeEntry)

func WithStart(t time.Time) EntryOption {
	return func(e *domain.TimeEntry) {
		e.StartTime = t.UTC()
		e.Date = domain.DateOf(t)
		end := t.UTC().Add(time.Duration(e.Duration) * time.Second)
		e.EndTime = &end
	}
}

func WithDuration(seconds int64) EntryOption {
	return func(e *domain.TimeEntry) {
		e.Duration = seconds
		end := e.StartTime.Add(time.Duration(seconds) * time.Second)
		e.EndTime = &end
	}
}

func WithKind(k domain.EntryKind) EntryOption {
	return func(e *domain.TimeEntry) {
		e.Kind = k
	}
}

func WithNotes(n string) EntryOption {
	return func(e *domain.TimeEntry) {
		e.Notes = &n
	}
}

// NewTestEntry builds a one-hour manual entry starting now.
func NewTestEntry(userID, projectID, taskID string, opts ...EntryOption) *domain.TimeEntry {
	now := time.Now().UTC()
	end := now.Add(time.Hour)
	e := &domain.TimeEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProjectID: projectID,
		TaskID:    taskID,
		StartTime: now,
		EndTime:   &end,
		Duration:  3600,
		Kind:      domain.EntryManual,
		Date:      domain.DateOf(now),
		CreatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NewTestTimer(userID, projectID, taskID string, start time.Time) *domain.TimerSession {
	s, err := domain.NewTimerSession(uuid.New().String(), userID, projectID, taskID, start)
	if err != nil {
		panic(err)
	}
	return s
}

// Timesheet options
type TimesheetOption func(*domain.Timesheet)

func WithTimesheetStatus(s domain.TimesheetStatus) TimesheetOption {
	return func(t *domain.Timesheet) {
		t.Status = s
	}
}

func WithTotalHours(h float64) TimesheetOption {
	return func(t *domain.Timesheet) {
		t.TotalHours = h
	}
}

func NewTestTimesheet(userID string, key domain.WeekKey, opts ...TimesheetOption) *domain.Timesheet {
	t := domain.NewSubmittedTimesheet(uuid.New().String(), userID, key, 0, time.Now())
	for _, opt := range opts {
		opt(t)
	}
	return t
}
