package domain

import "fmt"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee:
		return true
	default:
		return false
	}
}

type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserInactive:
		return true
	default:
		return false
	}
}

type EntryKind string

const (
	EntryTimer  EntryKind = "timer"
	EntryManual EntryKind = "manual"
)

func (k EntryKind) Valid() bool {
	switch k {
	case EntryTimer, EntryManual:
		return true
	default:
		return false
	}
}

// TimesheetStatus is the review state of a weekly timesheet. Draft is never
// persisted; it describes a week key with no stored record yet.
type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
	TimesheetDenied    TimesheetStatus = "denied"
)

// ParseTimesheetStatus converts a raw string into a TimesheetStatus.
func ParseTimesheetStatus(s string) (TimesheetStatus, error) {
	st := TimesheetStatus(s)
	switch st {
	case TimesheetDraft, TimesheetSubmitted, TimesheetApproved, TimesheetDenied:
		return st, nil
	default:
		return "", Validationf("unknown timesheet status %q", s)
	}
}

// Locked reports whether a timesheet in this status refuses resubmission.
func (s TimesheetStatus) Locked() bool {
	switch s {
	case TimesheetSubmitted, TimesheetApproved:
		return true
	case TimesheetDraft, TimesheetDenied:
		return false
	default:
		panic(fmt.Sprintf("unhandled timesheet status %q", string(s)))
	}
}

// IsReviewOutcome reports whether an admin may set this status through review.
func (s TimesheetStatus) IsReviewOutcome() bool {
	switch s {
	case TimesheetApproved, TimesheetDenied:
		return true
	case TimesheetDraft, TimesheetSubmitted:
		return false
	default:
		return false
	}
}

type NotificationType string

const (
	NotifyTimesheetSubmitted NotificationType = "timesheet_submitted"
	NotifyTimesheetApproved  NotificationType = "timesheet_approved"
	NotifyTimesheetDenied    NotificationType = "timesheet_denied"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotifyTimesheetSubmitted, NotifyTimesheetApproved, NotifyTimesheetDenied:
		return true
	default:
		return false
	}
}

// ProjectActive is the only status projects and tasks are created with.
const ProjectActive = "active"
