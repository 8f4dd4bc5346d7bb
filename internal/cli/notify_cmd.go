package cli

import (
	"fmt"

	"github.com/alexanderramin/punchclock/internal/cli/formatter"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/spf13/cobra"
)

func newNotifyCmd(s *State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notify",
		Aliases: []string{"inbox"},
		Short:   "Read notifications",
	}
	cmd.AddCommand(
		newNotifyListCmd(s),
		newNotifyCountCmd(s),
		newNotifyReadCmd(s),
		newNotifyReadAllCmd(s),
	)
	return cmd
}

func newNotifyListCmd(s *State) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			notes, err := s.App.Notifications.List(ctx, id.UserID, limit)
			if err != nil {
				return err
			}
			if len(notes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No notifications.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNotificationList(notes))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", service.DefaultNotificationLimit, "Maximum notifications to show")
	return cmd
}

func newNotifyCountCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of unread notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			n, err := s.App.Notifications.UnreadCount(ctx, id.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", n)
			return nil
		},
	}
}

func newNotifyReadCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "read ID",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			notes, err := s.App.Notifications.List(ctx, id.UserID, service.EntryListLimit)
			if err != nil {
				return err
			}
			noteID, err := resolveID("notification", args[0], notes, func(n *domain.Notification) string { return n.ID })
			if err != nil {
				return err
			}
			if err := s.App.Notifications.MarkRead(ctx, id.UserID, noteID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Marked as read.")
			return nil
		},
	}
}

func newNotifyReadAllCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := s.identity(ctx)
			if err != nil {
				return err
			}
			n, err := s.App.Notifications.MarkAllRead(ctx, id.UserID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d notification(s) as read.\n", n)
			return nil
		},
	}
}
