package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/domain"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

// authenticate resolves the bearer token to a stored, active user and puts
// its Identity on the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := bearerToken(r)
		if !ok {
			s.fail(w, r, domain.Authf("missing bearer token"))
			return
		}
		userID, err := s.tokens.Verify(raw)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		u, err := s.svc.Users.GetByID(r.Context(), userID)
		if domain.IsKind(err, domain.KindNotFound) {
			s.fail(w, r, domain.Authf("user not found"))
			return
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if !u.IsActive() {
			s.fail(w, r, service.ErrInactiveAccount)
			return
		}
		ctx := auth.WithIdentity(r.Context(), auth.IdentityOf(u))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.FromContext(r.Context())
		if !ok || !id.IsAdmin() {
			respondError(w, http.StatusForbidden, string(domain.KindForbidden), "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// identity returns the caller placed on the context by authenticate.
func identity(r *http.Request) auth.Identity {
	id, ok := auth.FromContext(r.Context())
	if !ok {
		panic(errors.New("httpapi: handler reached without authentication"))
	}
	return id
}
