package domain

import (
	"strings"
	"time"
)

type Project struct {
	ID          string
	Name        string
	Description *string
	CreatedBy   string
	Status      string
	CreatedAt   time.Time
}

type Task struct {
	ID          string
	Name        string
	Description *string
	ProjectID   string
	Status      string
	CreatedAt   time.Time
}

// ValidateName checks that a project or task name carries visible text.
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return Validationf("%s name is required", kind)
	}
	return nil
}
