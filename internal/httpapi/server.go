// Package httpapi exposes the punchclock services as a JSON API under /api.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Services bundles everything the handlers call.
type Services struct {
	Users         service.UserService
	Projects      service.ProjectService
	Timers        service.TimerService
	Entries       service.EntryService
	Timesheets    service.TimesheetService
	Notifications service.NotificationService
	Reports       service.ReportService
}

type Server struct {
	svc         Services
	tokens      *auth.TokenIssuer
	logger      *slog.Logger
	corsOrigins []string
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins lets browsers on the given origins call the API.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

func NewServer(svc Services, tokens *auth.TokenIssuer, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{svc: svc, tokens: tokens, logger: logger.With("component", "http")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if len(s.corsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:   []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.health)
		r.Post("/auth/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Get("/auth/me", s.me)

			r.Post("/timer/start", s.startTimer)
			r.Post("/timer/heartbeat", s.heartbeat)
			r.Post("/timer/stop", s.stopTimer)
			r.Get("/timer/active", s.activeTimer)

			r.Get("/time-entries", s.listEntries)
			r.Post("/time-entries/manual", s.createManualEntry)
			r.Delete("/time-entries/{id}", s.deleteEntry)

			r.Post("/timesheets/submit", s.submitTimesheet)
			r.Get("/timesheets", s.listTimesheets)
			r.Get("/timesheets/{id}", s.getTimesheet)

			r.Get("/notifications", s.listNotifications)
			r.Get("/notifications/unread-count", s.unreadCount)
			r.Put("/notifications/mark-all-read", s.markAllRead)
			r.Put("/notifications/{id}/read", s.markRead)

			r.Get("/projects", s.listProjects)
			r.Get("/tasks", s.listTasks)

			r.Get("/reports/time", s.timeReport)
			r.Get("/dashboard/stats", s.dashboard)

			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)

				r.Get("/admin/timers", s.listActiveTimers)
				r.Put("/timesheets/{id}/review", s.reviewTimesheet)

				r.Get("/admin/employees", s.listEmployees)
				r.Post("/admin/employees", s.createEmployee)
				r.Put("/admin/employees/{id}", s.updateEmployee)

				r.Post("/projects", s.createProject)
				r.Put("/projects/{id}", s.updateProject)
				r.Post("/tasks", s.createTask)
				r.Put("/tasks/{id}", s.updateTask)
			})
		})
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, payload{"status": "ok"})
}
