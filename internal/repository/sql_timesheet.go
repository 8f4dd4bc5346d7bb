package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
)

// SQLTimesheetRepo implements TimesheetRepo.
type SQLTimesheetRepo struct {
	db db.DBTX
}

// NewSQLTimesheetRepo creates a new SQLTimesheetRepo.
func NewSQLTimesheetRepo(conn db.DBTX) *SQLTimesheetRepo {
	return &SQLTimesheetRepo{db: conn}
}

const timesheetColumns = `id, user_id, week_start, week_end, total_hours, status,
	submitted_at, reviewed_at, reviewed_by, admin_comment, created_at`

func (r *SQLTimesheetRepo) Create(ctx context.Context, t *domain.Timesheet) error {
	query := `INSERT INTO timesheets (` + timesheetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.WeekStart,
		t.WeekEnd,
		t.TotalHours,
		string(t.Status),
		nullableTimeToString(t.SubmittedAt),
		nullableTimeToString(t.ReviewedAt),
		nullableString(t.ReviewedBy),
		nullableString(t.AdminComment),
		formatTime(t.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("timesheet %s..%s: %w", t.WeekStart, t.WeekEnd, ErrDuplicate)
		}
		return fmt.Errorf("inserting timesheet: %w", err)
	}
	return nil
}

func (r *SQLTimesheetRepo) GetByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE id = ?`
	return scanTimesheet(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLTimesheetRepo) GetByWeek(ctx context.Context, userID string, key domain.WeekKey) (*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets
		WHERE user_id = ? AND week_start = ? AND week_end = ?`
	return scanTimesheet(r.db.QueryRowContext(ctx, query, userID, key.Start, key.End))
}

// UpdateSubmission writes the fields a resubmission changes. The row must
// still carry status from, so of two racing resubmissions only one applies.
func (r *SQLTimesheetRepo) UpdateSubmission(ctx context.Context, t *domain.Timesheet, from domain.TimesheetStatus) error {
	query := `UPDATE timesheets SET total_hours = ?, status = ?, submitted_at = ?
		WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.TotalHours,
		string(t.Status),
		nullableTimeToString(t.SubmittedAt),
		t.ID,
		string(from),
	)
	if err != nil {
		return fmt.Errorf("updating timesheet submission: %w", err)
	}
	return expectOneRow(res, "timesheet")
}

// UpdateReview writes the fields a review changes, guarded on status from
// like UpdateSubmission.
func (r *SQLTimesheetRepo) UpdateReview(ctx context.Context, t *domain.Timesheet, from domain.TimesheetStatus) error {
	query := `UPDATE timesheets SET status = ?, reviewed_at = ?, reviewed_by = ?, admin_comment = ?
		WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(t.Status),
		nullableTimeToString(t.ReviewedAt),
		nullableString(t.ReviewedBy),
		nullableString(t.AdminComment),
		t.ID,
		string(from),
	)
	if err != nil {
		return fmt.Errorf("updating timesheet review: %w", err)
	}
	return expectOneRow(res, "timesheet")
}

func (r *SQLTimesheetRepo) List(ctx context.Context, q TimesheetQuery) ([]*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE 1 = 1`
	var args []any
	if q.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, q.UserID)
	}
	if q.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(q.Status))
	}
	query += ` ORDER BY created_at DESC, id ASC LIMIT ?`
	args = append(args, limitOrCap(q.Limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []*domain.Timesheet
	for rows.Next() {
		t, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timesheets: %w", err)
	}
	return sheets, nil
}

func (r *SQLTimesheetRepo) CountByStatus(ctx context.Context, status domain.TimesheetStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM timesheets WHERE status = ?`, string(status)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting timesheets: %w", err)
	}
	return n, nil
}

func scanTimesheet(row rowScanner) (*domain.Timesheet, error) {
	var t domain.Timesheet
	var status, createdAt string
	var submittedAt, reviewedAt, reviewedBy, comment sql.NullString
	err := row.Scan(&t.ID, &t.UserID, &t.WeekStart, &t.WeekEnd, &t.TotalHours, &status,
		&submittedAt, &reviewedAt, &reviewedBy, &comment, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("timesheet: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning timesheet: %w", err)
	}
	t.Status = domain.TimesheetStatus(status)
	t.ReviewedBy = stringPtr(reviewedBy)
	t.AdminComment = stringPtr(comment)
	if t.SubmittedAt, err = parseNullableTime(submittedAt, "submitted_at"); err != nil {
		return nil, err
	}
	if t.ReviewedAt, err = parseNullableTime(reviewedAt, "reviewed_at"); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &t, nil
}
