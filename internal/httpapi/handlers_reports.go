package httpapi

import (
	"net/http"

	"github.com/alexanderramin/punchclock/internal/service"
)

func (s *Server) timeReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	groupBy := q.Get("group_by")
	if groupBy == "" {
		groupBy = service.GroupByUser
	}
	report, err := s.svc.Reports.TimeReport(r.Context(), identity(r), service.ReportQuery{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		GroupBy:   groupBy,
		UserID:    q.Get("user_id"),
		ProjectID: q.Get("project_id"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"data": report.Groups, "summary": report.Summary})
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Reports.Dashboard(r.Context(), identity(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if stats.Admin != nil {
		respondJSON(w, http.StatusOK, payload{"stats": stats.Admin})
		return
	}
	respondJSON(w, http.StatusOK, payload{"stats": stats.Employee})
}
