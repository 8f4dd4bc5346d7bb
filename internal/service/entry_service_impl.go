package service

import (
	"context"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
)

type entryService struct {
	entries  repository.TimeEntryRepo
	clock    Clock
	ids      IDGenerator
	observer UseCaseObserver
}

func NewEntryService(entries repository.TimeEntryRepo, clock Clock, ids IDGenerator, observers ...UseCaseObserver) EntryService {
	return &entryService{
		entries:  entries,
		clock:    clock,
		ids:      ids,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *entryService) CreateManual(ctx context.Context, userID string, in domain.ManualEntryInput) (entry *domain.TimeEntry, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID, "project_id": in.ProjectID}
	defer func() { observe(ctx, s.observer, "entry-create-manual", startedAt, fields, &err) }()

	entry, err = domain.NewManualEntry(s.ids.NewID(), userID, in, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err = s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	fields["entry_id"] = entry.ID
	fields["duration"] = entry.Duration
	return entry, nil
}

func (s *entryService) Delete(ctx context.Context, requester auth.Identity, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": requester.UserID, "entry_id": id}
	defer func() { observe(ctx, s.observer, "entry-delete", startedAt, fields, &err) }()

	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return notFoundAs(err, "entry not found")
	}
	if !requester.CanSee(entry.UserID) {
		return domain.Forbiddenf("not authorized to delete this entry")
	}
	if err = s.entries.Delete(ctx, id); err != nil {
		return notFoundAs(err, "entry not found")
	}
	return nil
}

func (s *entryService) List(ctx context.Context, requester auth.Identity, filter EntryFilter) ([]*domain.TimeEntry, error) {
	if !requester.IsAdmin() {
		filter.UserID = requester.UserID
	}
	if err := validateOptionalDate("start_date", filter.StartDate); err != nil {
		return nil, err
	}
	if err := validateOptionalDate("end_date", filter.EndDate); err != nil {
		return nil, err
	}
	return s.entries.List(ctx, repository.EntryQuery{
		UserID:    filter.UserID,
		ProjectID: filter.ProjectID,
		FromDate:  filter.StartDate,
		ToDate:    filter.EndDate,
		Limit:     clampLimit(filter.Limit, EntryListLimit),
	})
}

// clampLimit returns limit bounded to (0, max]; non-positive means max.
func clampLimit(limit, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}

func validateOptionalDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, value); err != nil {
		return domain.Validationf("%s %q must be YYYY-MM-DD", field, value)
	}
	return nil
}
