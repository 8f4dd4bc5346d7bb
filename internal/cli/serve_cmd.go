package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexanderramin/punchclock/internal/app"
	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/httpapi"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func apiServices(a *app.App) httpapi.Services {
	return httpapi.Services{
		Users:         a.Users,
		Projects:      a.Projects,
		Timers:        a.Timers,
		Entries:       a.Entries,
		Timesheets:    a.Timesheets,
		Notifications: a.Notifications,
		Reports:       a.Reports,
	}
}

func newServeCmd(s *State) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.Config.RequireSecret(); err != nil {
				return err
			}
			tokens, err := auth.NewTokenIssuer(s.Config.Auth.Secret, s.Config.Auth.TokenTTL)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = s.Config.HTTP.Addr
			}

			api := httpapi.NewServer(apiServices(s.App), tokens, s.Logger,
				httpapi.WithCORSOrigins(s.Config.HTTP.CORSOrigins))
			srv := &http.Server{
				Addr:              addr,
				Handler:           api.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			s.Logger.Info("listening", "addr", addr, "driver", s.App.Dialect)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serving http: %w", err)
			case <-ctx.Done():
			}

			s.Logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}

func newMigrateCmd(s *State) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening the database already applied every migration.
			fmt.Fprintf(cmd.OutOrStdout(), "Database is up to date (%s).\n", s.App.Dialect)
			return nil
		},
	}
}
