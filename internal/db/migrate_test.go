package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// A second run is a no-op.
	err := Migrate(db, SQLite)
	require.NoError(t, err)

	// Third time for good measure.
	err = Migrate(db, SQLite)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"users", "projects", "tasks", "time_entries", "timer_sessions", "timesheets", "notifications"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_users_email",
		"idx_tasks_project",
		"idx_time_entries_user_date",
		"idx_timer_sessions_one_active",
		"idx_timesheets_week_key",
		"idx_notifications_user",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_OneActiveTimerPerUser(t *testing.T) {
	db := openTestDB(t)

	insert := `INSERT INTO timer_sessions (id, user_id, project_id, task_id, start_time, last_heartbeat, is_active, date)
		VALUES (?, 'u1', 'p', 't', '2025-06-15T10:00:00Z', '2025-06-15T10:00:00Z', ?, '2025-06-15')`

	_, err := db.Exec(insert, "s1", 1)
	require.NoError(t, err)
	_, err = db.Exec(insert, "s2", 1)
	assert.Error(t, err, "second active session for the same user must be rejected")

	// Inactive sessions do not count against the constraint.
	_, err = db.Exec(insert, "s3", 0)
	require.NoError(t, err)
	_, err = db.Exec(insert, "s4", 0)
	require.NoError(t, err)
}

func TestMigrate_TimesheetWeekKeyUnique(t *testing.T) {
	db := openTestDB(t)

	insert := `INSERT INTO timesheets (id, user_id, week_start, week_end, total_hours, status, created_at)
		VALUES (?, 'u1', '2025-06-09', '2025-06-15', 0, 'submitted', '2025-06-15T10:00:00Z')`
	_, err := db.Exec(insert, "ts1")
	require.NoError(t, err)
	_, err = db.Exec(insert, "ts2")
	assert.Error(t, err)
}
