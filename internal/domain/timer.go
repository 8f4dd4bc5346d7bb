package domain

import "time"

type TimerSession struct {
	ID            string
	UserID        string
	ProjectID     string
	TaskID        string
	StartTime     time.Time
	LastHeartbeat time.Time
	Active        bool
	Date          string
}

// NewTimerSession starts an active session at now.
func NewTimerSession(id, userID, projectID, taskID string, now time.Time) (*TimerSession, error) {
	if projectID == "" || taskID == "" {
		return nil, Validationf("project and task are required to start a timer")
	}
	now = now.UTC()
	return &TimerSession{
		ID:            id,
		UserID:        userID,
		ProjectID:     projectID,
		TaskID:        taskID,
		StartTime:     now,
		LastHeartbeat: now,
		Active:        true,
		Date:          DateOf(now),
	}, nil
}

// Elapsed returns whole seconds since start, never negative.
func (s *TimerSession) Elapsed(now time.Time) int64 {
	secs := int64(now.Sub(s.StartTime) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// IsStale reports whether no heartbeat arrived within after.
func (s *TimerSession) IsStale(now time.Time, after time.Duration) bool {
	if after <= 0 {
		return false
	}
	return now.Sub(s.LastHeartbeat) > after
}

// ToEntry converts the session into the timer entry recorded on stop.
// The session itself is not modified.
func (s *TimerSession) ToEntry(entryID string, now time.Time, notes *string) *TimeEntry {
	end := now.UTC()
	return &TimeEntry{
		ID:        entryID,
		UserID:    s.UserID,
		ProjectID: s.ProjectID,
		TaskID:    s.TaskID,
		StartTime: s.StartTime,
		EndTime:   &end,
		Duration:  s.Elapsed(now),
		Kind:      EntryTimer,
		Date:      s.Date,
		Notes:     NonEmptyPtr(notes),
		CreatedAt: end,
	}
}
