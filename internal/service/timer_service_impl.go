package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
)

type timerService struct {
	timers     repository.TimerRepo
	users      repository.UserRepo
	uow        db.UnitOfWork
	clock      Clock
	ids        IDGenerator
	staleAfter time.Duration
	observer   UseCaseObserver
}

// NewTimerService builds the timer engine. staleAfter only affects the Stale
// flag reported by ListActive; zero disables it.
func NewTimerService(
	timers repository.TimerRepo,
	users repository.UserRepo,
	uow db.UnitOfWork,
	clock Clock,
	ids IDGenerator,
	staleAfter time.Duration,
	observers ...UseCaseObserver,
) TimerService {
	return &timerService{
		timers:     timers,
		users:      users,
		uow:        uow,
		clock:      clock,
		ids:        ids,
		staleAfter: staleAfter,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *timerService) Start(ctx context.Context, userID, projectID, taskID string) (sess *domain.TimerSession, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID, "project_id": projectID, "task_id": taskID}
	defer func() { observe(ctx, s.observer, "timer-start", startedAt, fields, &err) }()

	existing, err := s.timers.GetActive(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflictf("timer already running, stop current timer first")
	}

	sess, err = domain.NewTimerSession(s.ids.NewID(), userID, projectID, taskID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	// A concurrent start for the same user loses on the one-active index.
	if err = s.timers.Insert(ctx, sess); err != nil {
		return nil, duplicateAs(err, "timer already running, stop current timer first")
	}
	fields["session_id"] = sess.ID
	return sess, nil
}

func (s *timerService) Heartbeat(ctx context.Context, userID string) (_ time.Time, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "timer-heartbeat", startedAt, fields, &err) }()

	now := s.clock.Now()
	if err = s.timers.Heartbeat(ctx, userID, now); err != nil {
		return time.Time{}, notFoundAs(err, "no active timer found")
	}
	return now, nil
}

func (s *timerService) Stop(ctx context.Context, userID string, notes *string) (entry *domain.TimeEntry, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "timer-stop", startedAt, fields, &err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTimers := repository.NewSQLTimerRepo(tx)
		txEntries := repository.NewSQLTimeEntryRepo(tx)

		sess, err := txTimers.GetActive(ctx, userID)
		if err != nil {
			return notFoundAs(err, "no active timer found")
		}

		entry = sess.ToEntry(s.ids.NewID(), s.clock.Now(), notes)
		if err := txEntries.Create(ctx, entry); err != nil {
			return err
		}
		// Only the caller that flips the flag keeps its entry.
		if err := txTimers.Deactivate(ctx, sess.ID); err != nil {
			return notFoundAs(err, "no active timer found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["entry_id"] = entry.ID
	fields["duration"] = entry.Duration
	return entry, nil
}

func (s *timerService) GetActive(ctx context.Context, userID string) (*domain.TimerSession, error) {
	sess, err := s.timers.GetActive(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *timerService) ListActive(ctx context.Context) ([]ActiveTimer, error) {
	sessions, err := s.timers.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	names := make(map[string]string)
	out := make([]ActiveTimer, 0, len(sessions))
	for _, sess := range sessions {
		name, ok := names[sess.UserID]
		if !ok {
			name = unknownLabel
			if u, err := s.users.GetByID(ctx, sess.UserID); err == nil {
				name = u.Name
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			names[sess.UserID] = name
		}
		out = append(out, ActiveTimer{
			Session:        sess,
			UserName:       name,
			ElapsedSeconds: sess.Elapsed(now),
			Stale:          sess.IsStale(now, s.staleAfter),
		})
	}
	return out, nil
}
