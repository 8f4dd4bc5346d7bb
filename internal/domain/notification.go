package domain

import (
	"fmt"
	"time"
)

type Notification struct {
	ID                 string
	UserID             string
	Type               NotificationType
	Title              string
	Message            string
	Read               bool
	RelatedTimesheetID *string
	CreatedAt          time.Time
}

// Notice is the content of a notification before it is addressed.
type Notice struct {
	Type    NotificationType
	Title   string
	Message string
}

// SubmittedNotice is sent to every admin when a timesheet is submitted.
func SubmittedNotice(submitterName, weekStart string) Notice {
	return Notice{
		Type:    NotifyTimesheetSubmitted,
		Title:   "New Timesheet Submission",
		Message: fmt.Sprintf("%s submitted a timesheet for %s", submitterName, weekStart),
	}
}

// ReviewNotice is sent to the owner of a reviewed timesheet.
func ReviewNotice(status TimesheetStatus, weekStart string, comment *string) (Notice, error) {
	switch status {
	case TimesheetApproved:
		return Notice{
			Type:    NotifyTimesheetApproved,
			Title:   "Timesheet Approved",
			Message: fmt.Sprintf("Your timesheet for %s has been approved", weekStart),
		}, nil
	case TimesheetDenied:
		msg := fmt.Sprintf("Your timesheet for %s has been denied", weekStart)
		if comment != nil && *comment != "" {
			msg += ": " + *comment
		}
		return Notice{
			Type:    NotifyTimesheetDenied,
			Title:   "Timesheet Denied",
			Message: msg,
		}, nil
	case TimesheetDraft, TimesheetSubmitted:
		return Notice{}, Validationf("no review notice for status %q", status)
	default:
		return Notice{}, Validationf("unknown timesheet status %q", status)
	}
}

// Address turns a notice into a notification for one recipient.
func (n Notice) Address(id, userID string, timesheetID *string, now time.Time) *Notification {
	return &Notification{
		ID:                 id,
		UserID:             userID,
		Type:               n.Type,
		Title:              n.Title,
		Message:            n.Message,
		RelatedTimesheetID: timesheetID,
		CreatedAt:          now.UTC(),
	}
}
