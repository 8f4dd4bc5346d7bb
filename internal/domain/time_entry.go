package domain

import (
	"time"
)

// DateLayout is the calendar-date format used for entry dates and week keys.
const DateLayout = "2006-01-02"

type TimeEntry struct {
	ID        string
	UserID    string
	ProjectID string
	TaskID    string
	StartTime time.Time
	EndTime   *time.Time
	Duration  int64 // seconds
	Kind      EntryKind
	Date      string
	Notes     *string
	CreatedAt time.Time
}

// DateOf returns the UTC calendar date of t.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ManualEntryInput carries a user-supplied interval. Duration is optional and
// overrides the computed end-start span when present.
type ManualEntryInput struct {
	ProjectID string
	TaskID    string
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int64
	Notes     *string
}

// NewManualEntry builds a manual entry. A negative span is kept as given.
func NewManualEntry(id, userID string, in ManualEntryInput, now time.Time) (*TimeEntry, error) {
	if in.EndTime == nil {
		return nil, Validationf("end time required for manual entry")
	}
	if in.ProjectID == "" || in.TaskID == "" {
		return nil, Validationf("project and task are required")
	}

	duration := int64(in.EndTime.Sub(in.StartTime) / time.Second)
	if in.Duration != nil {
		duration = *in.Duration
	}

	start := in.StartTime.UTC()
	end := in.EndTime.UTC()
	return &TimeEntry{
		ID:        id,
		UserID:    userID,
		ProjectID: in.ProjectID,
		TaskID:    in.TaskID,
		StartTime: start,
		EndTime:   &end,
		Duration:  duration,
		Kind:      EntryManual,
		Date:      DateOf(start),
		Notes:     NonEmptyPtr(in.Notes),
		CreatedAt: now.UTC(),
	}, nil
}
