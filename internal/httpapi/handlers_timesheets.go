package httpapi

import (
	"net/http"

	"github.com/alexanderramin/punchclock/internal/contract"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/go-chi/chi/v5"
)

func (s *Server) submitTimesheet(w http.ResponseWriter, r *http.Request) {
	var req contract.SubmitTimesheetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	id, err := s.svc.Timesheets.Submit(r.Context(), identity(r), req.WeekStart, req.WeekEnd)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"timesheet_id": id, "message": "Timesheet submitted"})
}

func (s *Server) listTimesheets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	sheets, err := s.svc.Timesheets.List(r.Context(), identity(r), service.TimesheetFilter{
		UserID: q.Get("user_id"),
		Status: domain.TimesheetStatus(q.Get("status")),
		Limit:  limit,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"timesheets": contract.Map(sheets, contract.TimesheetOf)})
}

func (s *Server) getTimesheet(w http.ResponseWriter, r *http.Request) {
	ts, err := s.svc.Timesheets.Get(r.Context(), identity(r), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"timesheet": contract.TimesheetOf(ts)})
}

func (s *Server) reviewTimesheet(w http.ResponseWriter, r *http.Request) {
	var req contract.ReviewTimesheetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	status := domain.TimesheetStatus(req.Status)
	if err := s.svc.Timesheets.Review(r.Context(), identity(r), chi.URLParam(r, "id"), status, req.AdminComment); err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"message": "Timesheet " + req.Status})
}
