package httpapi

import (
	"net/http"
	"strconv"

	"github.com/alexanderramin/punchclock/internal/contract"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q.Get("limit"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	entries, err := s.svc.Entries.List(r.Context(), identity(r), service.EntryFilter{
		UserID:    q.Get("user_id"),
		ProjectID: q.Get("project_id"),
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
		Limit:     limit,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"entries": contract.Map(entries, contract.TimeEntryOf)})
}

func (s *Server) createManualEntry(w http.ResponseWriter, r *http.Request) {
	var req contract.ManualEntryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	in, err := req.Input()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	entry, err := s.svc.Entries.CreateManual(r.Context(), identity(r).UserID, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, payload{"entry": contract.TimeEntryOf(entry)})
}

func (s *Server) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Entries.Delete(r.Context(), identity(r), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"message": "Entry deleted"})
}

// queryInt parses an optional integer query parameter; empty means zero.
func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Validationf("invalid integer %q", raw)
	}
	return n, nil
}
