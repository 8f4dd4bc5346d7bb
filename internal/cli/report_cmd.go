package cli

import (
	"fmt"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/spf13/cobra"
)

func newReportCmd(s *State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize recorded time",
	}
	cmd.AddCommand(newReportTimeCmd(s), newReportDashboardCmd(s))
	return cmd
}

func newReportTimeCmd(s *State) *cobra.Command {
	var q service.ReportQuery
	var user, project string

	cmd := &cobra.Command{
		Use:   "time",
		Short: "Total time over a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			if err := validateOptionalDate(q.StartDate); err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			if err := validateOptionalDate(q.EndDate); err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			if user != "" {
				if q.UserID, err = resolveUserID(ctx, s, user); err != nil {
					return err
				}
			}
			if project != "" {
				if q.ProjectID, err = resolveProjectID(ctx, s, project); err != nil {
					return err
				}
			}
			report, err := s.App.Reports.TimeReport(ctx, id, q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(report))
			return nil
		},
	}

	cmd.Flags().StringVar(&q.StartDate, "from", "", "First date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.EndDate, "to", "", "Last date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.GroupBy, "group-by", service.GroupByUser, "Group by user, project, task or date")
	cmd.Flags().StringVar(&user, "user", "", "User ID or email")
	cmd.Flags().StringVar(&project, "project", "", "Project ID")
	return cmd
}

func newReportDashboardCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline figures",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			stats, err := s.App.Reports.Dashboard(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(stats))
			return nil
		},
	}
}
