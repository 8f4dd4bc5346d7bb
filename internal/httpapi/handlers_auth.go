package httpapi

import (
	"net/http"

	"github.com/alexanderramin/punchclock/internal/contract"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req contract.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	u, err := s.svc.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	token, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"token": token, "user": contract.UserOf(u)})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.Users.GetByID(r.Context(), identity(r).UserID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, payload{"user": contract.UserOf(u)})
}
