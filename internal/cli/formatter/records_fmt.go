package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
)

func FormatUserList(users []*domain.User) string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{ShortID(u.ID), u.Name, u.Email, RoleBadge(u.Role), UserStatusPill(u.Status)})
	}
	return RenderTable([]string{"ID", "NAME", "EMAIL", "ROLE", "STATUS"}, rows)
}

func FormatProjectList(projects []*domain.Project) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{ShortID(p.ID), p.Name, Optional(p.Description), p.Status})
	}
	return RenderTable([]string{"ID", "NAME", "DESCRIPTION", "STATUS"}, rows)
}

func FormatTaskList(tasks []*domain.Task) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{ShortID(t.ID), t.Name, ShortID(t.ProjectID), Optional(t.Description)})
	}
	return RenderTable([]string{"ID", "NAME", "PROJECT", "DESCRIPTION"}, rows)
}

// FormatEntryList renders entries with a total line in hours.
func FormatEntryList(entries []*domain.TimeEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			ShortID(e.ID), e.Date, Timestamp(e.StartTime), Clock(e.Duration),
			string(e.Kind), ShortID(e.ProjectID), Optional(e.Notes),
		})
	}
	table := RenderTable([]string{"ID", "DATE", "START", "DURATION", "KIND", "PROJECT", "NOTES"}, rows)
	return table + fmt.Sprintf("\n%s %s\n", Dim("total"), Bold(Hours(domain.ComputeTotalHours(entries))))
}

func FormatTimesheetList(sheets []*domain.Timesheet) string {
	rows := make([][]string, 0, len(sheets))
	for _, t := range sheets {
		rows = append(rows, []string{
			ShortID(t.ID), ShortID(t.UserID), t.WeekStart + " → " + t.WeekEnd,
			Hours(t.TotalHours), TimesheetPill(t.Status), Optional(t.AdminComment),
		})
	}
	return RenderTable([]string{"ID", "USER", "WEEK", "HOURS", "STATUS", "COMMENT"}, rows)
}

func FormatTimesheet(t *domain.Timesheet) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week        %s → %s\n", t.WeekStart, t.WeekEnd)
	fmt.Fprintf(&b, "Status      %s\n", TimesheetPill(t.Status))
	fmt.Fprintf(&b, "Hours       %s\n", Hours(t.TotalHours))
	fmt.Fprintf(&b, "Submitted   %s\n", OptionalTimestamp(t.SubmittedAt))
	fmt.Fprintf(&b, "Reviewed    %s\n", OptionalTimestamp(t.ReviewedAt))
	fmt.Fprintf(&b, "Comment     %s", Optional(t.AdminComment))
	return RenderBox("timesheet "+ShortID(t.ID), b.String())
}

func FormatNotificationList(notes []*domain.Notification) string {
	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		mark := StyleYellow.Render("●")
		if n.Read {
			mark = Dim("○")
		}
		rows = append(rows, []string{mark, ShortID(n.ID), Timestamp(n.CreatedAt), n.Title, n.Message})
	}
	return RenderTable([]string{"", "ID", "WHEN", "TITLE", "MESSAGE"}, rows)
}

func FormatActiveTimers(timers []service.ActiveTimer) string {
	rows := make([][]string, 0, len(timers))
	for _, a := range timers {
		state := StyleGreen.Render("live")
		if a.Stale {
			state = StyleRed.Render("stale")
		}
		rows = append(rows, []string{
			a.UserName, ShortID(a.Session.ProjectID), Timestamp(a.Session.StartTime),
			Clock(a.ElapsedSeconds), Timestamp(a.Session.LastHeartbeat), state,
		})
	}
	return RenderTable([]string{"USER", "PROJECT", "STARTED", "ELAPSED", "HEARTBEAT", "STATE"}, rows)
}

func FormatReport(r *service.TimeReport) string {
	rows := make([][]string, 0, len(r.Groups)+1)
	for _, g := range r.Groups {
		rows = append(rows, []string{g.Label, fmt.Sprint(g.EntryCount), Clock(g.TotalSeconds), Hours(g.TotalHours)})
	}
	rows = append(rows, []string{
		Bold("TOTAL"), fmt.Sprint(r.Summary.TotalEntries), Clock(r.Summary.TotalSeconds), Bold(Hours(r.Summary.TotalHours)),
	})
	return RenderTable([]string{"GROUP", "ENTRIES", "TIME", "HOURS"}, rows)
}

func FormatDashboard(stats *service.DashboardStats) string {
	var b strings.Builder
	if a := stats.Admin; a != nil {
		fmt.Fprintf(&b, "Employees          %d (%d active)\n", a.TotalEmployees, a.ActiveEmployees)
		fmt.Fprintf(&b, "Pending timesheets %d\n", a.PendingTimesheets)
		fmt.Fprintf(&b, "Projects           %d\n", a.TotalProjects)
		fmt.Fprintf(&b, "Running timers     %d", a.ActiveTimers)
		return RenderBox("dashboard", b.String())
	}
	if e := stats.Employee; e != nil {
		fmt.Fprintf(&b, "Today      %s\n", Hours(e.TodayHours))
		fmt.Fprintf(&b, "This week  %s\n", Hours(e.WeekHours))
		fmt.Fprintf(&b, "Entries    %d", e.TotalEntries)
	}
	return RenderBox("dashboard", b.String())
}
