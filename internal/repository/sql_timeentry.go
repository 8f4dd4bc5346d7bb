package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
)

// SQLTimeEntryRepo implements TimeEntryRepo.
type SQLTimeEntryRepo struct {
	db db.DBTX
}

// NewSQLTimeEntryRepo creates a new SQLTimeEntryRepo.
func NewSQLTimeEntryRepo(conn db.DBTX) *SQLTimeEntryRepo {
	return &SQLTimeEntryRepo{db: conn}
}

const entryColumns = `id, user_id, project_id, task_id, start_time, end_time, duration,
	entry_type, date, notes, created_at`

func (r *SQLTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `INSERT INTO time_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.ProjectID,
		e.TaskID,
		formatTime(e.StartTime),
		nullableTimeToString(e.EndTime),
		e.Duration,
		string(e.Kind),
		e.Date,
		nullableString(e.Notes),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return nil
}

func (r *SQLTimeEntryRepo) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE id = ?`
	return scanEntry(r.db.QueryRowContext(ctx, query, id))
}

// List returns entries matching q, newest start first.
func (r *SQLTimeEntryRepo) List(ctx context.Context, q EntryQuery) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE 1 = 1`
	var args []any
	if q.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, q.UserID)
	}
	if q.ProjectID != "" {
		query += ` AND project_id = ?`
		args = append(args, q.ProjectID)
	}
	if q.FromDate != "" {
		query += ` AND date >= ?`
		args = append(args, q.FromDate)
	}
	if q.ToDate != "" {
		query += ` AND date <= ?`
		args = append(args, q.ToDate)
	}
	query += ` ORDER BY start_time DESC, id ASC LIMIT ?`
	args = append(args, limitOrCap(q.Limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()

	var entries []*domain.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}

func (r *SQLTimeEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return expectOneRow(res, "time entry")
}

func scanEntry(row rowScanner) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var startTime, kind, createdAt string
	var endTime, notes sql.NullString
	err := row.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.TaskID, &startTime, &endTime,
		&e.Duration, &kind, &e.Date, &notes, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("time entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}
	e.Kind = domain.EntryKind(kind)
	e.Notes = stringPtr(notes)
	if e.StartTime, err = parseTime(startTime); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if e.EndTime, err = parseNullableTime(endTime, "end_time"); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}
