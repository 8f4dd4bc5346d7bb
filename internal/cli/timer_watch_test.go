package cli

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatch(t *testing.T, env *cliEnv) *teatest.Driver {
	t.Helper()
	ctx := context.Background()
	session, err := env.state.App.Timers.Start(ctx, env.ana.ID, env.project.ID, env.task.ID)
	require.NoError(t, err)

	env.clock.Advance(10 * time.Minute)
	m := newWatchModel(ctx, env.state.App.Timers, session, env.clock)
	d := teatest.New(t, m, teatest.WithSize(80, 24))
	d.DrainInit()
	return d
}

func watchState(t *testing.T, d *teatest.Driver) watchModel {
	t.Helper()
	m, ok := d.Model.(watchModel)
	require.True(t, ok, "model is %T", d.Model)
	return m
}

func TestWatchModel_ShowsElapsedSinceStart(t *testing.T) {
	env := newCLIEnv(t)
	d := startWatch(t, env)

	m := watchState(t, d)
	assert.GreaterOrEqual(t, m.Elapsed(), 10*time.Minute)
	assert.Contains(t, d.View(), "0:10:")
	assert.Contains(t, d.View(), "stop & record")
	assert.False(t, d.Quitting)
}

func TestWatchModel_HeartbeatUpdatesLastBeat(t *testing.T) {
	env := newCLIEnv(t)
	d := startWatch(t, env)

	env.clock.Advance(time.Minute)
	d.Send(heartbeatDueMsg{})

	m := watchState(t, d)
	assert.True(t, env.clock.Now().Equal(m.lastBeat))
	assert.NoError(t, m.beatErr)
	assert.False(t, d.Quitting)

	active, err := env.state.App.Timers.GetActive(context.Background(), env.ana.ID)
	require.NoError(t, err)
	assert.True(t, env.clock.Now().Equal(active.LastHeartbeat), "last heartbeat %s", active.LastHeartbeat)
}

func TestWatchModel_StopRecordsEntry(t *testing.T) {
	env := newCLIEnv(t)
	d := startWatch(t, env)

	env.clock.Advance(10 * time.Minute)
	d.PressKey('s')

	require.True(t, d.Quitting)
	m := watchState(t, d)
	require.NoError(t, m.err)
	require.NotNil(t, m.entry)
	assert.Equal(t, int64(1200), m.entry.Duration)
	assert.Equal(t, domain.EntryTimer, m.entry.Kind)
	assert.Empty(t, d.View())

	active, err := env.state.App.Timers.GetActive(context.Background(), env.ana.ID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestWatchModel_EnterAlsoStops(t *testing.T) {
	env := newCLIEnv(t)
	d := startWatch(t, env)

	d.PressEnter()

	require.True(t, d.Quitting)
	m := watchState(t, d)
	require.NotNil(t, m.entry)
	assert.Equal(t, int64(600), m.entry.Duration)
}

func TestWatchModel_DetachLeavesTimerRunning(t *testing.T) {
	tests := []struct {
		name  string
		press func(d *teatest.Driver)
	}{
		{"q", func(d *teatest.Driver) { d.PressKey('q') }},
		{"esc", func(d *teatest.Driver) { d.PressEsc() }},
		{"ctrl+c", func(d *teatest.Driver) { d.PressCtrlC() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			d := startWatch(t, env)

			tt.press(d)

			require.True(t, d.Quitting)
			assert.Nil(t, watchState(t, d).entry)
			assert.Empty(t, d.View())

			active, err := env.state.App.Timers.GetActive(context.Background(), env.ana.ID)
			require.NoError(t, err)
			assert.NotNil(t, active)
		})
	}
}

func TestWatchModel_QuitsWhenStoppedElsewhere(t *testing.T) {
	env := newCLIEnv(t)
	d := startWatch(t, env)

	_, err := env.state.App.Timers.Stop(context.Background(), env.ana.ID, nil)
	require.NoError(t, err)

	d.Send(heartbeatDueMsg{})

	require.True(t, d.Quitting)
	m := watchState(t, d)
	assert.True(t, domain.IsKind(m.err, domain.KindNotFound))
}
