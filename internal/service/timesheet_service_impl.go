package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
)

// aggregateLimit bounds the entries read when totalling one week.
const aggregateLimit = 100_000

type timesheetService struct {
	timesheets repository.TimesheetRepo
	uow        db.UnitOfWork
	clock      Clock
	ids        IDGenerator
	observer   UseCaseObserver
}

func NewTimesheetService(
	timesheets repository.TimesheetRepo,
	uow db.UnitOfWork,
	clock Clock,
	ids IDGenerator,
	observers ...UseCaseObserver,
) TimesheetService {
	return &timesheetService{
		timesheets: timesheets,
		uow:        uow,
		clock:      clock,
		ids:        ids,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *timesheetService) Submit(ctx context.Context, submitter auth.Identity, weekStart, weekEnd string) (id string, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": submitter.UserID, "week_start": weekStart, "week_end": weekEnd}
	defer func() { observe(ctx, s.observer, "timesheet-submit", startedAt, fields, &err) }()

	key, err := domain.ParseWeekKey(weekStart, weekEnd)
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSheets := repository.NewSQLTimesheetRepo(tx)
		txEntries := repository.NewSQLTimeEntryRepo(tx)
		txUsers := repository.NewSQLUserRepo(tx)
		txNotes := repository.NewSQLNotificationRepo(tx)

		existing, err := txSheets.GetByWeek(ctx, submitter.UserID, key)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		if existing != nil && existing.Status.Locked() {
			return domain.Conflictf("timesheet already %s for %s to %s", existing.Status, key.Start, key.End)
		}

		entries, err := txEntries.List(ctx, repository.EntryQuery{
			UserID:   submitter.UserID,
			FromDate: key.Start,
			ToDate:   key.End,
			Limit:    aggregateLimit,
		})
		if err != nil {
			return err
		}
		total := domain.ComputeTotalHours(entries)
		fields["total_hours"] = total

		if existing != nil {
			from := existing.Status
			if err := existing.Resubmit(total, now); err != nil {
				return err
			}
			if err := txSheets.UpdateSubmission(ctx, existing, from); err != nil {
				return conflictAs(err, "timesheet already submitted for %s to %s", key.Start, key.End)
			}
			id = existing.ID
		} else {
			sheet := domain.NewSubmittedTimesheet(s.ids.NewID(), submitter.UserID, key, total, now)
			if err := txSheets.Create(ctx, sheet); err != nil {
				return duplicateAs(err, "timesheet already submitted for %s to %s", key.Start, key.End)
			}
			id = sheet.ID
		}

		admins, err := txUsers.ListByRole(ctx, domain.RoleAdmin)
		if err != nil {
			return err
		}
		notice := domain.SubmittedNotice(submitter.Name, key.Start)
		for _, admin := range admins {
			if err := notify(ctx, txNotes, notice.Address(s.ids.NewID(), admin.ID, &id, now)); err != nil {
				return err
			}
		}
		fields["notified"] = len(admins)
		return nil
	})
	if err != nil {
		return "", err
	}
	fields["timesheet_id"] = id
	return id, nil
}

func (s *timesheetService) Review(ctx context.Context, admin auth.Identity, id string, status domain.TimesheetStatus, comment *string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"reviewer_id": admin.UserID, "timesheet_id": id, "status": string(status)}
	defer func() { observe(ctx, s.observer, "timesheet-review", startedAt, fields, &err) }()

	if err = requireAdmin(admin.IsAdmin()); err != nil {
		return err
	}
	if !status.IsReviewOutcome() {
		return domain.Validationf("review status must be %q or %q, got %q", domain.TimesheetApproved, domain.TimesheetDenied, status)
	}

	now := s.clock.Now()
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSheets := repository.NewSQLTimesheetRepo(tx)
		txNotes := repository.NewSQLNotificationRepo(tx)

		sheet, err := txSheets.GetByID(ctx, id)
		if err != nil {
			return notFoundAs(err, "timesheet not found")
		}
		from := sheet.Status
		fields["previous_status"] = string(from)

		if err := sheet.ApplyReview(status, admin.UserID, comment, now); err != nil {
			return err
		}
		notice, err := domain.ReviewNotice(status, sheet.WeekStart, sheet.AdminComment)
		if err != nil {
			return err
		}
		if err := txSheets.UpdateReview(ctx, sheet, from); err != nil {
			return conflictAs(err, "timesheet changed while it was being reviewed")
		}
		return notify(ctx, txNotes, notice.Address(s.ids.NewID(), sheet.UserID, &sheet.ID, now))
	})
}

func (s *timesheetService) List(ctx context.Context, requester auth.Identity, filter TimesheetFilter) ([]*domain.Timesheet, error) {
	if !requester.IsAdmin() {
		filter.UserID = requester.UserID
	}
	if filter.Status != "" {
		if _, err := domain.ParseTimesheetStatus(string(filter.Status)); err != nil {
			return nil, err
		}
	}
	return s.timesheets.List(ctx, repository.TimesheetQuery{
		UserID: filter.UserID,
		Status: filter.Status,
		Limit:  clampLimit(filter.Limit, EntryListLimit),
	})
}

// Get hides other users' timesheets from employees behind not-found.
func (s *timesheetService) Get(ctx context.Context, requester auth.Identity, id string) (*domain.Timesheet, error) {
	sheet, err := s.timesheets.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "timesheet not found")
	}
	if !requester.CanSee(sheet.UserID) {
		return nil, domain.NotFoundf("timesheet not found")
	}
	return sheet, nil
}
