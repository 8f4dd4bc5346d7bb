package domain

import (
	"strings"
	"time"
)

type Timesheet struct {
	ID           string
	UserID       string
	WeekStart    string
	WeekEnd      string
	TotalHours   float64
	Status       TimesheetStatus
	SubmittedAt  *time.Time
	ReviewedAt   *time.Time
	ReviewedBy   *string
	AdminComment *string
	CreatedAt    time.Time
}

// WeekKey identifies one reporting period for a user.
type WeekKey struct {
	Start string
	End   string
}

// ParseWeekKey validates both dates and their order.
func ParseWeekKey(start, end string) (WeekKey, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return WeekKey{}, Validationf("week_start %q must be YYYY-MM-DD", start)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return WeekKey{}, Validationf("week_end %q must be YYYY-MM-DD", end)
	}
	if e.Before(s) {
		return WeekKey{}, Validationf("week_end %s is before week_start %s", end, start)
	}
	return WeekKey{Start: start, End: end}, nil
}

// WeekOf returns the Monday-to-Sunday key containing t (UTC).
func WeekOf(t time.Time) WeekKey {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
	return WeekKey{
		Start: monday.Format(DateLayout),
		End:   monday.AddDate(0, 0, 6).Format(DateLayout),
	}
}

// NewSubmittedTimesheet creates the first record for a week key.
func NewSubmittedTimesheet(id, userID string, key WeekKey, totalHours float64, now time.Time) *Timesheet {
	now = now.UTC()
	return &Timesheet{
		ID:          id,
		UserID:      userID,
		WeekStart:   key.Start,
		WeekEnd:     key.End,
		TotalHours:  totalHours,
		Status:      TimesheetSubmitted,
		SubmittedAt: &now,
		CreatedAt:   now,
	}
}

// Resubmit moves an existing record back to submitted with a fresh total.
// Submitted and approved timesheets are locked.
func (t *Timesheet) Resubmit(totalHours float64, now time.Time) error {
	if t.Status.Locked() {
		return Conflictf("timesheet already %s for %s to %s", t.Status, t.WeekStart, t.WeekEnd)
	}
	now = now.UTC()
	t.TotalHours = totalHours
	t.Status = TimesheetSubmitted
	t.SubmittedAt = &now
	return nil
}

// ApplyReview records an admin decision. Any current status may be reviewed
// again; denial requires a comment.
func (t *Timesheet) ApplyReview(status TimesheetStatus, reviewerID string, comment *string, now time.Time) error {
	if err := ValidateReview(status, comment); err != nil {
		return err
	}
	now = now.UTC()
	t.Status = status
	t.ReviewedAt = &now
	t.ReviewedBy = &reviewerID
	t.AdminComment = NonEmptyPtr(comment)
	return nil
}

// ValidateReview checks a review request without touching any record.
func ValidateReview(status TimesheetStatus, comment *string) error {
	if !status.IsReviewOutcome() {
		return Validationf("review status must be %q or %q, got %q", TimesheetApproved, TimesheetDenied, status)
	}
	if status == TimesheetDenied && (comment == nil || strings.TrimSpace(*comment) == "") {
		return Validationf("comment required when denying timesheet")
	}
	return nil
}
