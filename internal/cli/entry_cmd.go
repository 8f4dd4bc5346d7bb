package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newEntryCmd(s *State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Record and review time entries",
	}
	cmd.AddCommand(newEntryAddCmd(s), newEntryListCmd(s), newEntryDeleteCmd(s))
	return cmd
}

// entryValues is what the manual entry form and flags collect.
type entryValues struct {
	Project string
	Task    string
	Start   string
	End     string
	Minutes string
	Notes   string
}

// input converts collected values. Minutes, when given, overrides the span.
func (v entryValues) input(loc *time.Location) (domain.ManualEntryInput, error) {
	start, err := parseClockTime(v.Start, loc)
	if err != nil {
		return domain.ManualEntryInput{}, err
	}
	in := domain.ManualEntryInput{ProjectID: v.Project, TaskID: v.Task, StartTime: start}
	if strings.TrimSpace(v.End) != "" {
		end, err := parseClockTime(v.End, loc)
		if err != nil {
			return domain.ManualEntryInput{}, err
		}
		in.EndTime = &end
	}
	if v.Minutes != "" {
		if err := validateOptionalMinutes(v.Minutes); err != nil {
			return domain.ManualEntryInput{}, err
		}
		mins, _ := strconv.Atoi(v.Minutes)
		secs := int64(mins) * 60
		in.Duration = &secs
	}
	if notes := strings.TrimSpace(v.Notes); notes != "" {
		in.Notes = &notes
	}
	return in, nil
}

// entryForm asks for a manual entry. Task options are labeled with their project.
func entryForm(projects []*domain.Project, tasks []*domain.Task, v *entryValues, loc *time.Location) *huh.Form {
	projectOpts := make([]huh.Option[string], 0, len(projects))
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		projectOpts = append(projectOpts, huh.NewOption(p.Name, p.ID))
		names[p.ID] = p.Name
	}
	taskOpts := make([]huh.Option[string], 0, len(tasks))
	for _, t := range tasks {
		taskOpts = append(taskOpts, huh.NewOption(names[t.ProjectID]+" / "+t.Name, t.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Project").Options(projectOpts...).Value(&v.Project),
			huh.NewSelect[string]().Title("Task").Options(taskOpts...).Value(&v.Task),
		),
		huh.NewGroup(
			huh.NewInput().Title("Start").Placeholder("2025-06-09 09:00").Value(&v.Start).Validate(validateClockTime(loc)),
			huh.NewInput().Title("End").Placeholder("2025-06-09 17:00").Value(&v.End).Validate(validateClockTime(loc)),
			huh.NewInput().Title("Minutes (blank to use start and end)").Value(&v.Minutes).Validate(validateOptionalMinutes),
			huh.NewText().Title("Notes").Value(&v.Notes),
		),
	).WithTheme(punchclockHuhTheme()).WithShowHelp(false)
}

func newEntryAddCmd(s *State) *cobra.Command {
	var v entryValues

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a manual entry (prompts when --start is omitted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			if v.Start == "" {
				if !s.IsInteractive() {
					return fmt.Errorf("--start is required when not running in a terminal")
				}
				projects, err := s.App.Projects.ListProjects(ctx)
				if err != nil {
					return err
				}
				tasks, err := s.App.Projects.ListTasks(ctx, "")
				if err != nil {
					return err
				}
				if err := entryForm(projects, tasks, &v, s.Location).Run(); err != nil {
					return err
				}
			} else if v.Project, v.Task, err = resolveProjectTask(cmd, s, v.Project, v.Task); err != nil {
				return err
			}

			in, err := v.input(s.Location)
			if err != nil {
				return err
			}
			entry, err := s.App.Entries.CreateManual(ctx, id.UserID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s on %s [%s]\n",
				formatter.Clock(entry.Duration), entry.Date, formatter.ShortID(entry.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&v.Project, "project", "", "Project ID")
	cmd.Flags().StringVar(&v.Task, "task", "", "Task ID")
	cmd.Flags().StringVar(&v.Start, "start", "", "Start time (YYYY-MM-DD HH:MM or RFC 3339)")
	cmd.Flags().StringVar(&v.End, "end", "", "End time")
	cmd.Flags().StringVar(&v.Minutes, "minutes", "", "Duration in minutes, overrides start/end span")
	cmd.Flags().StringVar(&v.Notes, "notes", "", "Notes")
	return cmd
}

func newEntryListCmd(s *State) *cobra.Command {
	var user, project, from, to string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			filter := service.EntryFilter{StartDate: from, EndDate: to, Limit: limit}
			if user != "" {
				if filter.UserID, err = resolveUserID(ctx, s, user); err != nil {
					return err
				}
			}
			if project != "" {
				if filter.ProjectID, err = resolveProjectID(ctx, s, project); err != nil {
					return err
				}
			}
			entries, err := s.App.Entries.List(ctx, id, filter)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatEntryList(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User ID or email (admins only)")
	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	cmd.Flags().StringVar(&from, "from", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum entries to show")
	return cmd
}

func newEntryDeleteCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			entryID, err := resolveEntryID(ctx, s, id, args[0])
			if err != nil {
				return err
			}
			if err := s.App.Entries.Delete(ctx, id, entryID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Entry deleted.")
			return nil
		},
	}
}

// resolveEntryID searches the entries visible to the caller; a full id that is
// not visible is passed through so the service reports the right error.
func resolveEntryID(ctx context.Context, s *State, requester auth.Identity, input string) (string, error) {
	entries, err := s.App.Entries.List(ctx, requester, service.EntryFilter{Limit: service.EntryListLimit})
	if err != nil {
		return "", err
	}
	id, err := resolveID("entry", input, entries, func(e *domain.TimeEntry) string { return e.ID })
	if err != nil && len(input) == 36 {
		return input, nil
	}
	return id, err
}
