package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/punchclock/internal/contract"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
)

// payload is merged into the success envelope.
type payload map[string]any

// maxBodyBytes limits request bodies.
const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, body payload) {
	out := make(map[string]any, len(body)+1)
	for k, v := range body {
		out[k] = v
	}
	out["success"] = true
	writeJSON(w, status, out)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   contract.ErrorBody{Code: code, Message: message},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// statusFor maps a domain error kind to its HTTP status.
func statusFor(err error) (int, string) {
	if errors.Is(err, service.ErrInactiveAccount) {
		return http.StatusForbidden, "inactive_account"
	}
	kind, ok := domain.KindOf(err)
	if !ok {
		return http.StatusInternalServerError, "internal"
	}
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest, string(kind)
	case domain.KindAuth:
		return http.StatusUnauthorized, string(kind)
	case domain.KindForbidden:
		return http.StatusForbidden, string(kind)
	case domain.KindNotFound:
		return http.StatusNotFound, string(kind)
	case domain.KindConflict:
		return http.StatusConflict, string(kind)
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// fail writes err as an error response. Unclassified errors are logged and
// reported without their text.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, status, code, "internal server error")
		return
	}
	msg := err.Error()
	var de *domain.Error
	if errors.As(err, &de) {
		msg = de.Message
	}
	respondError(w, status, code, msg)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.Validationf("invalid request body: %v", err)
	}
	return nil
}
