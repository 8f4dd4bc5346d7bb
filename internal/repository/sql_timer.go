package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
)

// SQLTimerRepo implements TimerRepo.
type SQLTimerRepo struct {
	db db.DBTX
}

// NewSQLTimerRepo creates a new SQLTimerRepo.
func NewSQLTimerRepo(conn db.DBTX) *SQLTimerRepo {
	return &SQLTimerRepo{db: conn}
}

const timerColumns = `id, user_id, project_id, task_id, start_time, last_heartbeat, is_active, date`

func (r *SQLTimerRepo) Insert(ctx context.Context, s *domain.TimerSession) error {
	query := `INSERT INTO timer_sessions (` + timerColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.ProjectID,
		s.TaskID,
		formatTime(s.StartTime),
		formatTime(s.LastHeartbeat),
		boolToInt(s.Active),
		s.Date,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("active timer for user %s: %w", s.UserID, ErrDuplicate)
		}
		return fmt.Errorf("inserting timer session: %w", err)
	}
	return nil
}

func (r *SQLTimerRepo) GetActive(ctx context.Context, userID string) (*domain.TimerSession, error) {
	query := `SELECT ` + timerColumns + ` FROM timer_sessions WHERE user_id = ? AND is_active = 1`
	return scanTimer(r.db.QueryRowContext(ctx, query, userID))
}

func (r *SQLTimerRepo) Heartbeat(ctx context.Context, userID string, at time.Time) error {
	query := `UPDATE timer_sessions SET last_heartbeat = ? WHERE user_id = ? AND is_active = 1`
	res, err := r.db.ExecContext(ctx, query, formatTime(at), userID)
	if err != nil {
		return fmt.Errorf("updating heartbeat: %w", err)
	}
	return expectOneRow(res, "active timer")
}

func (r *SQLTimerRepo) Deactivate(ctx context.Context, sessionID string) error {
	query := `UPDATE timer_sessions SET is_active = 0 WHERE id = ? AND is_active = 1`
	res, err := r.db.ExecContext(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("deactivating timer: %w", err)
	}
	return expectOneRow(res, "active timer")
}

func (r *SQLTimerRepo) ListActive(ctx context.Context) ([]*domain.TimerSession, error) {
	query := `SELECT ` + timerColumns + ` FROM timer_sessions WHERE is_active = 1
		ORDER BY start_time ASC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, listCap)
	if err != nil {
		return nil, fmt.Errorf("listing active timers: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.TimerSession
	for rows.Next() {
		s, err := scanTimer(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timers: %w", err)
	}
	return sessions, nil
}

func (r *SQLTimerRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM timer_sessions WHERE is_active = 1`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting active timers: %w", err)
	}
	return n, nil
}

func scanTimer(row rowScanner) (*domain.TimerSession, error) {
	var s domain.TimerSession
	var startTime, heartbeat string
	var active int
	err := row.Scan(&s.ID, &s.UserID, &s.ProjectID, &s.TaskID, &startTime, &heartbeat, &active, &s.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active timer: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning timer session: %w", err)
	}
	s.Active = intToBool(active)
	if s.StartTime, err = parseTime(startTime); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if s.LastHeartbeat, err = parseTime(heartbeat); err != nil {
		return nil, fmt.Errorf("parsing last_heartbeat: %w", err)
	}
	return &s, nil
}
