package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/alexanderramin/punchclock/internal/domain"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// SQLUserRepo implements UserRepo.
type SQLUserRepo struct {
	db db.DBTX
}

// NewSQLUserRepo creates a new SQLUserRepo.
func NewSQLUserRepo(conn db.DBTX) *SQLUserRepo {
	return &SQLUserRepo{db: conn}
}

const userColumns = `id, email, name, role, status, password_hash, default_project, default_task, created_at`

func (r *SQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Email,
		u.Name,
		string(u.Role),
		string(u.Status),
		u.PasswordHash,
		nullableString(u.DefaultProject),
		nullableString(u.DefaultTask),
		formatTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user email %s: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(email))
	return scanUser(row)
}

func (r *SQLUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, listCap)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *SQLUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = ? ORDER BY created_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, string(role), listCap)
	if err != nil {
		return nil, fmt.Errorf("listing users by role: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *SQLUserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email = ?, name = ?, role = ?, status = ?, password_hash = ?,
		default_project = ?, default_task = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.Email,
		u.Name,
		string(u.Role),
		string(u.Status),
		u.PasswordHash,
		nullableString(u.DefaultProject),
		nullableString(u.DefaultTask),
		u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user email %s: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("updating user: %w", err)
	}
	return expectOneRow(res, "user")
}

func (r *SQLUserRepo) Count(ctx context.Context, filter UserCount) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE 1 = 1`
	var args []any
	if filter.Role != nil {
		query += ` AND role = ?`
		args = append(args, string(*filter.Role))
	}
	if filter.Status != nil {
		query += ` AND status = ?`
		args = append(args, string(*filter.Status))
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var role, status, createdAt string
	var defProject, defTask sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.Name, &role, &status, &u.PasswordHash, &defProject, &defTask, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Role = domain.Role(role)
	u.Status = domain.UserStatus(status)
	u.DefaultProject = stringPtr(defProject)
	u.DefaultTask = stringPtr(defTask)
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &u, nil
}

func scanUsers(rows *sql.Rows) ([]*domain.User, error) {
	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}
