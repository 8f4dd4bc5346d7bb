package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_RecordsOutcome(t *testing.T) {
	env := newTestEnv(t)
	var buf bytes.Buffer
	entries := NewEntryService(env.entriesRepo, env.clock, UUIDGenerator{}, NewLogUseCaseObserver(&buf))

	ana := env.addUser(t, testutil.NewTestUser("Ana"))
	entry := env.addEntry(t, ana.UserID, testNow, 600)

	require.NoError(t, entries.Delete(context.Background(), ana, entry.ID))
	assert.Contains(t, buf.String(), "use_case=entry-delete")
	assert.Contains(t, buf.String(), "success=true")

	buf.Reset()
	err := entries.Delete(context.Background(), ana, entry.ID)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "success=false")
	assert.Contains(t, buf.String(), "entry not found")
}

func TestObserverConstructors_NilFallsBackToNoop(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, NewSlogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))

	obs := NewSlogUseCaseObserver(slog.New(slog.DiscardHandler))
	assert.Same(t, obs, useCaseObserverOrNoop([]UseCaseObserver{nil, obs}))
}

func TestLogUseCaseObserver_CoversHeartbeatAndCatalog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	timers := NewTimerService(env.timersRepo, env.users, env.uow, env.clock, UUIDGenerator{}, 10*time.Minute, obs)
	_, err := timers.Heartbeat(ctx, "u1")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "use_case=timer-heartbeat")
	assert.Contains(t, buf.String(), "success=false")

	buf.Reset()
	_, err = timers.Start(ctx, "u1", "p1", "t1")
	require.NoError(t, err)
	_, err = timers.Heartbeat(ctx, "u1")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "use_case=timer-heartbeat")
	assert.Contains(t, buf.String(), "success=true")

	buf.Reset()
	projects := NewProjectService(env.projectsRepo, env.tasksRepo, env.clock, UUIDGenerator{}, obs)
	p, err := projects.CreateProject(ctx, "admin1", ProjectInput{Name: "Website"})
	require.NoError(t, err)
	_, err = projects.CreateTask(ctx, TaskInput{ProjectID: p.ID, Name: "Design"})
	require.NoError(t, err)
	_, err = projects.UpdateProject(ctx, "missing", ProjectInput{Name: "X"})
	require.Error(t, err)
	out := buf.String()
	assert.Contains(t, out, "use_case=project-create")
	assert.Contains(t, out, "project_id="+p.ID)
	assert.Contains(t, out, "use_case=task-create")
	assert.Contains(t, out, "use_case=project-update")
	assert.Contains(t, out, "project not found")

	buf.Reset()
	seedNotifications(t, env, "u1", 2)
	notes := NewNotificationService(env.notesRepo, obs)
	n, err := notes.MarkAllRead(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.Error(t, notes.MarkRead(ctx, "u1", "missing"))
	out = buf.String()
	assert.Contains(t, out, "use_case=notification-mark-all-read")
	assert.Contains(t, out, "marked=2")
	assert.Contains(t, out, "use_case=notification-mark-read")
	assert.Contains(t, out, "notification not found")
}
