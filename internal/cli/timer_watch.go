package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
)

// heartbeatInterval is how often the watch view reports liveness.
const heartbeatInterval = 30 * time.Second

type (
	heartbeatDueMsg struct{}
	heartbeatMsg    struct {
		at  time.Time
		err error
	}
	stoppedMsg struct {
		entry *domain.TimeEntry
		err   error
	}
)

type watchKeys struct {
	Stop   key.Binding
	Detach key.Binding
}

func (k watchKeys) ShortHelp() []key.Binding  { return []key.Binding{k.Stop, k.Detach} }
func (k watchKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultWatchKeys() watchKeys {
	return watchKeys{
		Stop:   key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "stop & record")),
		Detach: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "detach (timer keeps running)")),
	}
}

// watchModel shows a running timer and sends heartbeats while open.
type watchModel struct {
	ctx       context.Context
	timers    service.TimerService
	session   *domain.TimerSession
	offset    time.Duration
	stopwatch stopwatch.Model
	keys      watchKeys
	help      help.Model
	interval  time.Duration

	lastBeat time.Time
	beatErr  error
	entry    *domain.TimeEntry
	err      error
	done     bool
}

func newWatchModel(ctx context.Context, timers service.TimerService, session *domain.TimerSession, clock service.Clock) watchModel {
	offset := clock.Now().Sub(session.StartTime)
	if offset < 0 {
		offset = 0
	}
	return watchModel{
		ctx:       ctx,
		timers:    timers,
		session:   session,
		offset:    offset,
		stopwatch: stopwatch.NewWithInterval(time.Second),
		keys:      defaultWatchKeys(),
		help:      help.New(),
		interval:  heartbeatInterval,
		lastBeat:  session.LastHeartbeat,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(m.stopwatch.Init(), m.scheduleHeartbeat())
}

func (m watchModel) scheduleHeartbeat() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return heartbeatDueMsg{} })
}

func (m watchModel) sendHeartbeat() tea.Cmd {
	return func() tea.Msg {
		at, err := m.timers.Heartbeat(m.ctx, m.session.UserID)
		return heartbeatMsg{at: at, err: err}
	}
}

func (m watchModel) stop() tea.Cmd {
	return func() tea.Msg {
		entry, err := m.timers.Stop(m.ctx, m.session.UserID, nil)
		return stoppedMsg{entry: entry, err: err}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.done {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Stop):
			return m, m.stop()
		case key.Matches(msg, m.keys.Detach):
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case heartbeatDueMsg:
		return m, m.sendHeartbeat()

	case heartbeatMsg:
		if msg.err != nil {
			// The timer was stopped somewhere else.
			if domain.IsKind(msg.err, domain.KindNotFound) {
				m.err = msg.err
				m.done = true
				return m, tea.Quit
			}
			m.beatErr = msg.err
			return m, m.scheduleHeartbeat()
		}
		m.lastBeat = msg.at
		m.beatErr = nil
		return m, m.scheduleHeartbeat()

	case stoppedMsg:
		m.entry, m.err = msg.entry, msg.err
		m.done = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.stopwatch, cmd = m.stopwatch.Update(msg)
	return m, cmd
}

// Elapsed is the total running time shown to the user.
func (m watchModel) Elapsed() time.Duration {
	return m.offset + m.stopwatch.Elapsed()
}

func (m watchModel) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", formatter.Bold(formatter.Clock(int64(m.Elapsed()/time.Second))))
	fmt.Fprintf(&b, "Project    %s\n", formatter.ShortID(m.session.ProjectID))
	fmt.Fprintf(&b, "Task       %s\n", formatter.ShortID(m.session.TaskID))
	fmt.Fprintf(&b, "Heartbeat  %s", formatter.Timestamp(m.lastBeat))
	if m.beatErr != nil {
		fmt.Fprintf(&b, "  %s", formatter.StyleRed.Render(m.beatErr.Error()))
	}
	return formatter.RenderBox("timer", b.String()) + "\n" + m.help.View(m.keys) + "\n"
}
