package httpapi

import (
	"net/http"

	"github.com/alexanderramin/punchclock/internal/contract"
	"github.com/alexanderramin/punchclock/internal/service"
)

func (s *Server) startTimer(w http.ResponseWriter, r *http.Request) {
	var req contract.StartTimerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	session, err := s.svc.Timers.Start(r.Context(), identity(r).UserID, req.ProjectID, req.TaskID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, payload{"session": contract.TimerSessionOf(session)})
}

func (s *Server) heartbeat(w http.ResponseWriter, r *http.Request) {
	at, err := s.svc.Timers.Heartbeat(r.Context(), identity(r).UserID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"last_heartbeat": at.UTC().Format(contract.TimeLayout)})
}

func (s *Server) stopTimer(w http.ResponseWriter, r *http.Request) {
	var req contract.StopTimerRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			s.fail(w, r, err)
			return
		}
	}
	entry, err := s.svc.Timers.Stop(r.Context(), identity(r).UserID, req.Notes)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{
		"entry":    contract.TimeEntryOf(entry),
		"duration": entry.Duration,
	})
}

func (s *Server) activeTimer(w http.ResponseWriter, r *http.Request) {
	session, err := s.svc.Timers.GetActive(r.Context(), identity(r).UserID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if session == nil {
		respondJSON(w, http.StatusOK, payload{"session": nil})
		return
	}
	respondJSON(w, http.StatusOK, payload{"session": contract.TimerSessionOf(session)})
}

func (s *Server) listActiveTimers(w http.ResponseWriter, r *http.Request) {
	active, err := s.svc.Timers.ListActive(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	timers := contract.Map(active, func(a service.ActiveTimer) contract.ActiveTimer {
		return contract.ActiveTimer{
			TimerSession:   contract.TimerSessionOf(a.Session),
			UserName:       a.UserName,
			ElapsedSeconds: a.ElapsedSeconds,
			Stale:          a.Stale,
		}
	})
	respondJSON(w, http.StatusOK, payload{"timers": timers})
}
