package service

import (
	"context"
	"errors"
	"sort"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/repository"
)

const unknownLabel = "Unknown"

// reportLimit bounds the entries read for one report.
const reportLimit = 10_000

type reportService struct {
	entries    repository.TimeEntryRepo
	users      repository.UserRepo
	projects   repository.ProjectRepo
	tasks      repository.TaskRepo
	timers     repository.TimerRepo
	timesheets repository.TimesheetRepo
	clock      Clock
}

func NewReportService(
	entries repository.TimeEntryRepo,
	users repository.UserRepo,
	projects repository.ProjectRepo,
	tasks repository.TaskRepo,
	timers repository.TimerRepo,
	timesheets repository.TimesheetRepo,
	clock Clock,
) ReportService {
	return &reportService{
		entries:    entries,
		users:      users,
		projects:   projects,
		tasks:      tasks,
		timers:     timers,
		timesheets: timesheets,
		clock:      clock,
	}
}

// TimeReport groups entries in [StartDate, EndDate] and totals each group.
// Groups keep the order in which their first entry was seen.
func (s *reportService) TimeReport(ctx context.Context, requester auth.Identity, q ReportQuery) (*TimeReport, error) {
	if q.StartDate == "" || q.EndDate == "" {
		return nil, domain.Validationf("start_date and end_date are required")
	}
	if _, err := domain.ParseWeekKey(q.StartDate, q.EndDate); err != nil {
		return nil, err
	}
	if !requester.IsAdmin() {
		q.UserID = requester.UserID
	}

	entries, err := s.entries.List(ctx, repository.EntryQuery{
		UserID:    q.UserID,
		ProjectID: q.ProjectID,
		FromDate:  q.StartDate,
		ToDate:    q.EndDate,
		Limit:     reportLimit,
	})
	if err != nil {
		return nil, err
	}

	labels := newLabelCache(s)
	var order []string
	grouped := make(map[string][]*domain.TimeEntry)
	groupLabel := make(map[string]string)
	for _, e := range entries {
		key, label, err := labels.keyFor(ctx, q.GroupBy, e)
		if err != nil {
			return nil, err
		}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
			groupLabel[key] = label
		}
		grouped[key] = append(grouped[key], e)
	}

	report := &TimeReport{Groups: make([]ReportGroup, 0, len(order))}
	for _, key := range order {
		group := grouped[key]
		var secs int64
		for _, e := range group {
			secs += e.Duration
		}
		report.Groups = append(report.Groups, ReportGroup{
			ID:           key,
			Label:        groupLabel[key],
			TotalSeconds: secs,
			TotalHours:   domain.ComputeTotalHours(group),
			EntryCount:   len(group),
		})
		report.Summary.TotalSeconds += secs
		report.Summary.TotalEntries += len(group)
	}
	report.Summary.TotalHours = domain.ComputeTotalHours(entries)
	if q.GroupBy == GroupByDate {
		sort.SliceStable(report.Groups, func(i, j int) bool { return report.Groups[i].ID < report.Groups[j].ID })
	}
	return report, nil
}

func (s *reportService) Dashboard(ctx context.Context, requester auth.Identity) (*DashboardStats, error) {
	if requester.IsAdmin() {
		stats, err := s.adminStats(ctx)
		if err != nil {
			return nil, err
		}
		return &DashboardStats{Admin: stats}, nil
	}
	stats, err := s.employeeStats(ctx, requester.UserID)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{Employee: stats}, nil
}

func (s *reportService) adminStats(ctx context.Context) (*AdminStats, error) {
	employee := domain.RoleEmployee
	active := domain.UserActive

	var stats AdminStats
	var err error
	if stats.TotalEmployees, err = s.users.Count(ctx, repository.UserCount{Role: &employee}); err != nil {
		return nil, err
	}
	if stats.ActiveEmployees, err = s.users.Count(ctx, repository.UserCount{Role: &employee, Status: &active}); err != nil {
		return nil, err
	}
	if stats.PendingTimesheets, err = s.timesheets.CountByStatus(ctx, domain.TimesheetSubmitted); err != nil {
		return nil, err
	}
	if stats.TotalProjects, err = s.projects.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveTimers, err = s.timers.CountActive(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *reportService) employeeStats(ctx context.Context, userID string) (*EmployeeStats, error) {
	now := s.clock.Now()
	today := domain.DateOf(now)
	week := domain.WeekOf(now)

	weekEntries, err := s.entries.List(ctx, repository.EntryQuery{
		UserID:   userID,
		FromDate: week.Start,
		ToDate:   week.End,
		Limit:    reportLimit,
	})
	if err != nil {
		return nil, err
	}

	var todayEntries []*domain.TimeEntry
	for _, e := range weekEntries {
		if e.Date == today {
			todayEntries = append(todayEntries, e)
		}
	}
	return &EmployeeStats{
		TodayHours:   domain.ComputeTotalHours(todayEntries),
		WeekHours:    domain.ComputeTotalHours(weekEntries),
		TotalEntries: len(weekEntries),
	}, nil
}

// labelCache resolves group labels, reading each referenced record once.
type labelCache struct {
	svc    *reportService
	labels map[string]string
}

func newLabelCache(svc *reportService) *labelCache {
	return &labelCache{svc: svc, labels: make(map[string]string)}
}

func (c *labelCache) keyFor(ctx context.Context, groupBy string, e *domain.TimeEntry) (key, label string, err error) {
	switch groupBy {
	case GroupByUser:
		label, err = c.lookup("user:"+e.UserID, func() (string, error) {
			u, err := c.svc.users.GetByID(ctx, e.UserID)
			if err != nil {
				return "", err
			}
			return u.Name, nil
		})
		return e.UserID, label, err
	case GroupByProject:
		label, err = c.lookup("project:"+e.ProjectID, func() (string, error) {
			p, err := c.svc.projects.GetByID(ctx, e.ProjectID)
			if err != nil {
				return "", err
			}
			return p.Name, nil
		})
		return e.ProjectID, label, err
	case GroupByTask:
		label, err = c.lookup("task:"+e.TaskID, func() (string, error) {
			t, err := c.svc.tasks.GetByID(ctx, e.TaskID)
			if err != nil {
				return "", err
			}
			return t.Name, nil
		})
		return e.TaskID, label, err
	case GroupByDate:
		return e.Date, e.Date, nil
	default:
		return "all", "All", nil
	}
}

func (c *labelCache) lookup(cacheKey string, load func() (string, error)) (string, error) {
	if label, ok := c.labels[cacheKey]; ok {
		return label, nil
	}
	label, err := load()
	if errors.Is(err, repository.ErrNotFound) {
		label, err = unknownLabel, nil
	}
	if err != nil {
		return "", err
	}
	c.labels[cacheKey] = label
	return label, nil
}
