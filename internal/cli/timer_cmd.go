package cli

import (
	"fmt"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTimerCmd(s *State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Start, stop and watch the running timer",
	}
	cmd.AddCommand(
		newTimerStartCmd(s),
		newTimerStopCmd(s),
		newTimerStatusCmd(s),
		newTimerHeartbeatCmd(s),
		newTimerListCmd(s),
		newTimerWatchCmd(s),
	)
	return cmd
}

func newTimerStartCmd(s *State) *cobra.Command {
	var project, task string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			projectID, taskID, err := resolveProjectTask(cmd, s, project, task)
			if err != nil {
				return err
			}
			session, err := s.App.Timers.Start(ctx, id.UserID, projectID, taskID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Timer started at %s\n", formatter.Timestamp(session.StartTime.In(s.Location)))
			return nil
		},
	}

	addProjectTaskFlags(cmd, &project, &task)
	return cmd
}

func newTimerStopCmd(s *State) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer and record the entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			entry, err := s.App.Timers.Stop(ctx, id.UserID, optionalFlag(cmd.Flags(), "notes", notes))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s on %s\n", formatter.Clock(entry.Duration), entry.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Notes for the recorded entry")
	return cmd
}

func newTimerStatusCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			session, err := s.App.Timers.GetActive(ctx, id.UserID)
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No timer running.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Running since %s (project %s, task %s)\n",
				formatter.Timestamp(session.StartTime.In(s.Location)),
				formatter.ShortID(session.ProjectID), formatter.ShortID(session.TaskID))
			return nil
		},
	}
}

func newTimerHeartbeatCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "heartbeat",
		Short: "Mark the running timer as still alive",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			at, err := s.App.Timers.Heartbeat(ctx, id.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Heartbeat at %s\n", formatter.Timestamp(at.In(s.Location)))
			return nil
		},
	}
}

func newTimerListCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every running timer (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := s.adminIdentity(ctx); err != nil {
				return err
			}
			active, err := s.App.Timers.ListActive(ctx)
			if err != nil {
				return err
			}
			if len(active) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No timers running.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActiveTimers(active))
			return nil
		},
	}
}

func newTimerWatchCmd(s *State) *cobra.Command {
	var project, task string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live timer that sends heartbeats until stopped",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			session, err := s.App.Timers.GetActive(ctx, id.UserID)
			if err != nil {
				return err
			}
			if session == nil {
				if project == "" && task == "" {
					return fmt.Errorf("no timer running: pass --project and --task to start one")
				}
				projectID, taskID, err := resolveProjectTask(cmd, s, project, task)
				if err != nil {
					return err
				}
				if session, err = s.App.Timers.Start(ctx, id.UserID, projectID, taskID); err != nil {
					return err
				}
			}

			model := newWatchModel(ctx, s.App.Timers, session, s.App.Clock)
			final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(watchModel); ok {
				if m.err != nil {
					return m.err
				}
				if m.entry != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s on %s\n", formatter.Clock(m.entry.Duration), m.entry.Date)
				}
			}
			return nil
		},
	}

	addProjectTaskFlags(cmd, &project, &task)
	return cmd
}

func addProjectTaskFlags(cmd *cobra.Command, project, task *string) {
	cmd.Flags().StringVar(project, "project", "", "Project ID")
	cmd.Flags().StringVar(task, "task", "", "Task ID")
}

// resolveProjectTask falls back to the acting user's default project and task.
func resolveProjectTask(cmd *cobra.Command, s *State, project, task string) (string, string, error) {
	ctx := cmd.Context()
	if project == "" || task == "" {
		id, err := s.identity(ctx)
		if err != nil {
			return "", "", err
		}
		u, err := s.App.Users.GetByID(ctx, id.UserID)
		if err != nil {
			return "", "", err
		}
		if project == "" && u.DefaultProject != nil {
			project = *u.DefaultProject
		}
		if task == "" && u.DefaultTask != nil {
			task = *u.DefaultTask
		}
	}
	projectID, err := resolveProjectID(ctx, s, project)
	if err != nil {
		return "", "", err
	}
	taskID, err := resolveTaskID(ctx, s, task)
	if err != nil {
		return "", "", err
	}
	return projectID, taskID, nil
}
