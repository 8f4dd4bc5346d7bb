package contract

import (
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type StartTimerRequest struct {
	ProjectID string `json:"project_id"`
	TaskID    string `json:"task_id"`
}

type StopTimerRequest struct {
	Notes *string `json:"notes"`
}

type ManualEntryRequest struct {
	ProjectID string  `json:"project_id"`
	TaskID    string  `json:"task_id"`
	StartTime string  `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Duration  *int64  `json:"duration"`
	Notes     *string `json:"notes"`
}

// Input parses the timestamps. Offsets are honored and converted to UTC later.
func (r ManualEntryRequest) Input() (domain.ManualEntryInput, error) {
	start, err := parseTimestamp("start_time", r.StartTime)
	if err != nil {
		return domain.ManualEntryInput{}, err
	}
	in := domain.ManualEntryInput{
		ProjectID: r.ProjectID,
		TaskID:    r.TaskID,
		StartTime: start,
		Duration:  r.Duration,
		Notes:     r.Notes,
	}
	if r.EndTime != nil && *r.EndTime != "" {
		end, err := parseTimestamp("end_time", *r.EndTime)
		if err != nil {
			return domain.ManualEntryInput{}, err
		}
		in.EndTime = &end
	}
	return in, nil
}

func parseTimestamp(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, domain.Validationf("%s is required", field)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.Validationf("%s %q must be an RFC 3339 timestamp", field, raw)
	}
	return t, nil
}

type SubmitTimesheetRequest struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`
}

type ReviewTimesheetRequest struct {
	Status       string  `json:"status"`
	AdminComment *string `json:"admin_comment"`
}

type CreateUserRequest struct {
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	Password       string  `json:"password"`
	Role           string  `json:"role"`
	Status         string  `json:"status"`
	DefaultProject *string `json:"default_project"`
	DefaultTask    *string `json:"default_task"`
}

type UpdateUserRequest struct {
	Email          *string `json:"email"`
	Name           *string `json:"name"`
	Password       *string `json:"password"`
	Role           *string `json:"role"`
	Status         *string `json:"status"`
	DefaultProject *string `json:"default_project"`
	DefaultTask    *string `json:"default_task"`
}

type ProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type TaskRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ProjectID   string  `json:"project_id"`
}

// ErrorBody is the error member of a failed response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
