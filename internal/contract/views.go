// Package contract defines the JSON shapes exchanged over the HTTP API.
package contract

import (
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

// TimeLayout is used for every timestamp on the wire.
const TimeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

type User struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Status         string  `json:"status"`
	DefaultProject *string `json:"default_project,omitempty"`
	DefaultTask    *string `json:"default_task,omitempty"`
	CreatedAt      string  `json:"created_at"`
}

// UserOf never carries the password hash.
func UserOf(u *domain.User) User {
	return User{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		Role:           string(u.Role),
		Status:         string(u.Status),
		DefaultProject: u.DefaultProject,
		DefaultTask:    u.DefaultTask,
		CreatedAt:      formatTime(u.CreatedAt),
	}
}

type Project struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedBy   string  `json:"created_by"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

func ProjectOf(p *domain.Project) Project {
	return Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		Status:      string(p.Status),
		CreatedAt:   formatTime(p.CreatedAt),
	}
}

type Task struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ProjectID   string  `json:"project_id"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

func TaskOf(t *domain.Task) Task {
	return Task{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		ProjectID:   t.ProjectID,
		Status:      string(t.Status),
		CreatedAt:   formatTime(t.CreatedAt),
	}
}

type TimerSession struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	ProjectID     string `json:"project_id"`
	TaskID        string `json:"task_id"`
	StartTime     string `json:"start_time"`
	LastHeartbeat string `json:"last_heartbeat"`
	Date          string `json:"date"`
}

func TimerSessionOf(s *domain.TimerSession) TimerSession {
	return TimerSession{
		ID:            s.ID,
		UserID:        s.UserID,
		ProjectID:     s.ProjectID,
		TaskID:        s.TaskID,
		StartTime:     formatTime(s.StartTime),
		LastHeartbeat: formatTime(s.LastHeartbeat),
		Date:          s.Date,
	}
}

// ActiveTimer is the admin view of a running session.
type ActiveTimer struct {
	TimerSession
	UserName       string `json:"user_name"`
	ElapsedSeconds int64  `json:"elapsed_seconds"`
	Stale          bool   `json:"stale"`
}

type TimeEntry struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	ProjectID string  `json:"project_id"`
	TaskID    string  `json:"task_id"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time,omitempty"`
	Duration  int64   `json:"duration"`
	EntryType string  `json:"entry_type"`
	Date      string  `json:"date"`
	Notes     *string `json:"notes,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func TimeEntryOf(e *domain.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:        e.ID,
		UserID:    e.UserID,
		ProjectID: e.ProjectID,
		TaskID:    e.TaskID,
		StartTime: formatTime(e.StartTime),
		EndTime:   formatTimePtr(e.EndTime),
		Duration:  e.Duration,
		EntryType: string(e.Kind),
		Date:      e.Date,
		Notes:     e.Notes,
		CreatedAt: formatTime(e.CreatedAt),
	}
}

type Timesheet struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	WeekStart    string  `json:"week_start"`
	WeekEnd      string  `json:"week_end"`
	TotalHours   float64 `json:"total_hours"`
	Status       string  `json:"status"`
	SubmittedAt  *string `json:"submitted_at,omitempty"`
	ReviewedAt   *string `json:"reviewed_at,omitempty"`
	ReviewedBy   *string `json:"reviewed_by,omitempty"`
	AdminComment *string `json:"admin_comment,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func TimesheetOf(t *domain.Timesheet) Timesheet {
	return Timesheet{
		ID:           t.ID,
		UserID:       t.UserID,
		WeekStart:    t.WeekStart,
		WeekEnd:      t.WeekEnd,
		TotalHours:   t.TotalHours,
		Status:       string(t.Status),
		SubmittedAt:  formatTimePtr(t.SubmittedAt),
		ReviewedAt:   formatTimePtr(t.ReviewedAt),
		ReviewedBy:   t.ReviewedBy,
		AdminComment: t.AdminComment,
		CreatedAt:    formatTime(t.CreatedAt),
	}
}

type Notification struct {
	ID                 string  `json:"id"`
	UserID             string  `json:"user_id"`
	Type               string  `json:"type"`
	Title              string  `json:"title"`
	Message            string  `json:"message"`
	Read               bool    `json:"read"`
	RelatedTimesheetID *string `json:"related_timesheet_id,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

func NotificationOf(n *domain.Notification) Notification {
	return Notification{
		ID:                 n.ID,
		UserID:             n.UserID,
		Type:               string(n.Type),
		Title:              n.Title,
		Message:            n.Message,
		Read:               n.Read,
		RelatedTimesheetID: n.RelatedTimesheetID,
		CreatedAt:          formatTime(n.CreatedAt),
	}
}

// Map converts a slice with fn, returning an empty (not nil) slice.
func Map[T, V any](in []T, fn func(T) V) []V {
	out := make([]V, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
