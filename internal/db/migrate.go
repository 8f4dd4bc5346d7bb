package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent and valid
// in both supported dialects.
func Migrate(db *sql.DB, dialect Dialect) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("migration %d (%s): %w", i, dialect, err)
		}
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate column name") ||
		(strings.Contains(msg, "column") && strings.Contains(msg, "already exists"))
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              TEXT PRIMARY KEY,
		email           TEXT NOT NULL,
		name            TEXT NOT NULL,
		role            TEXT NOT NULL CHECK(role IN ('admin','employee')),
		status          TEXT NOT NULL DEFAULT 'active'
		                CHECK(status IN ('active','inactive')),
		password_hash   TEXT NOT NULL DEFAULT '',
		default_project TEXT,
		default_task    TEXT,
		created_at      TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
	`CREATE INDEX IF NOT EXISTS idx_users_role ON users(role)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		created_by  TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		status      TEXT NOT NULL DEFAULT 'active',
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE TABLE IF NOT EXISTS time_entries (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		project_id  TEXT NOT NULL,
		task_id     TEXT NOT NULL,
		start_time  TEXT NOT NULL,
		end_time    TEXT,
		duration    BIGINT NOT NULL DEFAULT 0,
		entry_type  TEXT NOT NULL CHECK(entry_type IN ('timer','manual')),
		date        TEXT NOT NULL,
		notes       TEXT,
		created_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_time_entries_user_date ON time_entries(user_id, date)`,
	`CREATE INDEX IF NOT EXISTS idx_time_entries_start ON time_entries(start_time)`,

	`CREATE TABLE IF NOT EXISTS timer_sessions (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		project_id     TEXT NOT NULL,
		task_id        TEXT NOT NULL,
		start_time     TEXT NOT NULL,
		last_heartbeat TEXT NOT NULL,
		is_active      INTEGER NOT NULL DEFAULT 1 CHECK(is_active IN (0,1)),
		date           TEXT NOT NULL
	)`,

	// At most one active timer per user, enforced by the store.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_timer_sessions_one_active
		ON timer_sessions(user_id) WHERE is_active = 1`,

	`CREATE TABLE IF NOT EXISTS timesheets (
		id            TEXT PRIMARY KEY,
		user_id       TEXT NOT NULL,
		week_start    TEXT NOT NULL,
		week_end      TEXT NOT NULL,
		total_hours   DOUBLE PRECISION NOT NULL DEFAULT 0,
		status        TEXT NOT NULL
		              CHECK(status IN ('draft','submitted','approved','denied')),
		submitted_at  TEXT,
		reviewed_at   TEXT,
		reviewed_by   TEXT,
		admin_comment TEXT,
		created_at    TEXT NOT NULL
	)`,

	// One timesheet per user and week key.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_timesheets_week_key
		ON timesheets(user_id, week_start, week_end)`,
	`CREATE INDEX IF NOT EXISTS idx_timesheets_status ON timesheets(status)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id                   TEXT PRIMARY KEY,
		user_id              TEXT NOT NULL,
		type                 TEXT NOT NULL
		                     CHECK(type IN ('timesheet_submitted','timesheet_approved','timesheet_denied')),
		title                TEXT NOT NULL,
		message              TEXT NOT NULL,
		is_read              INTEGER NOT NULL DEFAULT 0 CHECK(is_read IN (0,1)),
		related_timesheet_id TEXT,
		created_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, is_read)`,
}
