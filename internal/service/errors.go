package service

import (
	"errors"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
)

// notFoundAs replaces a repository ErrNotFound with a domain not-found error.
// Other errors pass through unchanged.
func notFoundAs(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFoundf(format, args...)
	}
	return err
}

// duplicateAs replaces a repository ErrDuplicate with a domain conflict error.
func duplicateAs(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return domain.Conflictf(format, args...)
	}
	return err
}

// conflictAs replaces a repository ErrNotFound from a status-guarded write with
// a domain conflict error: the row exists but moved on since it was read.
func conflictAs(err error, format string, args ...any) error {
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Conflictf(format, args...)
	}
	return err
}

func requireAdmin(isAdmin bool) error {
	if !isAdmin {
		return domain.Forbiddenf("admin access required")
	}
	return nil
}
