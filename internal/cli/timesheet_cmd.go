package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newTimesheetCmd(s *State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "timesheet",
		Aliases: []string{"ts"},
		Short:   "Submit and review weekly timesheets",
	}
	cmd.AddCommand(
		newTimesheetSubmitCmd(s),
		newTimesheetListCmd(s),
		newTimesheetShowCmd(s),
		newTimesheetReviewCmd(s),
	)
	return cmd
}

// submitWeek picks the reporting period: explicit bounds, the week holding
// --week, or the current week.
func submitWeek(week, start, end string, now time.Time) (domain.WeekKey, error) {
	if start != "" || end != "" {
		return domain.ParseWeekKey(start, end)
	}
	if week == "" {
		return domain.WeekOf(now), nil
	}
	day, err := time.Parse(domain.DateLayout, week)
	if err != nil {
		return domain.WeekKey{}, fmt.Errorf("--week must be YYYY-MM-DD")
	}
	return domain.WeekOf(day), nil
}

func newTimesheetSubmitCmd(s *State) *cobra.Command {
	var week, start, end string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a week for approval",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			key, err := submitWeek(week, start, end, s.App.Clock.Now())
			if err != nil {
				return err
			}
			sheetID, err := s.App.Timesheets.Submit(ctx, id, key.Start, key.End)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Timesheet for %s to %s submitted [%s]\n",
				key.Start, key.End, formatter.ShortID(sheetID))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date inside the week (default: this week)")
	cmd.Flags().StringVar(&start, "start", "", "Explicit week start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Explicit week end (YYYY-MM-DD)")
	return cmd
}

func newTimesheetListCmd(s *State) *cobra.Command {
	var status, user string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List timesheets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			filter := service.TimesheetFilter{}
			if status != "" {
				if filter.Status, err = domain.ParseTimesheetStatus(status); err != nil {
					return err
				}
			}
			if user != "" {
				if filter.UserID, err = resolveUserID(ctx, s, user); err != nil {
					return err
				}
			}
			sheets, err := s.App.Timesheets.List(ctx, id, filter)
			if err != nil {
				return err
			}
			if len(sheets) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No timesheets found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTimesheetList(sheets))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (submitted, approved, denied)")
	cmd.Flags().StringVar(&user, "user", "", "User ID or email (admins only)")
	return cmd
}

func newTimesheetShowCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one timesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			sheetID, err := resolveTimesheetID(ctx, s, id, args[0])
			if err != nil {
				return err
			}
			sheet, err := s.App.Timesheets.Get(ctx, id, sheetID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTimesheet(sheet))
			return nil
		},
	}
}

// reviewValues is what the review form and flags collect.
type reviewValues struct {
	Status  string
	Comment string
}

func reviewForm(sheet *domain.Timesheet, v *reviewValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("Week %s → %s", sheet.WeekStart, sheet.WeekEnd)).
				Description(formatter.Hours(sheet.TotalHours)+" submitted"),
			huh.NewSelect[string]().
				Title("Decision").
				Options(
					huh.NewOption("Approve", string(domain.TimesheetApproved)),
					huh.NewOption("Deny", string(domain.TimesheetDenied)),
				).
				Value(&v.Status),
			huh.NewText().
				Title("Comment (required when denying)").
				Value(&v.Comment),
		),
	).WithTheme(punchclockHuhTheme()).WithShowHelp(false)
}

func newTimesheetReviewCmd(s *State) *cobra.Command {
	var approve, deny bool
	var comment string

	cmd := &cobra.Command{
		Use:   "review ID",
		Short: "Approve or deny a submitted timesheet (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.adminIdentity(ctx)
			if err != nil {
				return err
			}
			sheetID, err := resolveTimesheetID(ctx, s, id, args[0])
			if err != nil {
				return err
			}

			v := reviewValues{Comment: comment}
			switch {
			case approve && deny:
				return fmt.Errorf("--approve and --deny are mutually exclusive")
			case approve:
				v.Status = string(domain.TimesheetApproved)
			case deny:
				v.Status = string(domain.TimesheetDenied)
			case s.IsInteractive():
				sheet, err := s.App.Timesheets.Get(ctx, id, sheetID)
				if err != nil {
					return err
				}
				if err := reviewForm(sheet, &v).Run(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("pass --approve or --deny")
			}

			var note *string
			if c := strings.TrimSpace(v.Comment); c != "" {
				note = &c
			}
			status := domain.TimesheetStatus(v.Status)
			if err := s.App.Timesheets.Review(ctx, id, sheetID, status, note); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Timesheet %s %s.\n", formatter.ShortID(sheetID), status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&approve, "approve", false, "Approve the timesheet")
	cmd.Flags().BoolVar(&deny, "deny", false, "Deny the timesheet")
	cmd.Flags().StringVar(&comment, "comment", "", "Reviewer comment")
	return cmd
}

func resolveTimesheetID(ctx context.Context, s *State, requester auth.Identity, input string) (string, error) {
	sheets, err := s.App.Timesheets.List(ctx, requester, service.TimesheetFilter{Limit: service.EntryListLimit})
	if err != nil {
		return "", err
	}
	id, err := resolveID("timesheet", input, sheets, func(t *domain.Timesheet) string { return t.ID })
	if err != nil && len(input) == 36 {
		return input, nil
	}
	return id, err
}
