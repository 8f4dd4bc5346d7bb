// Package cli implements the punchclock command line: the API server plus
// local commands that run the same services directly against the database.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/punchclock/internal/app"
	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/config"
	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/spf13/cobra"
)

// State is shared by every command. Fields left nil are filled in from the
// configuration before a command runs.
type State struct {
	ConfigPath string
	AsUser     string

	Config config.Config
	Logger *slog.Logger
	App    *app.App

	// LogOutput and LogJSON configure the logger built from config.
	LogOutput io.Writer
	LogJSON   bool

	// Location is used to read and print wall-clock times.
	Location *time.Location
	// IsInteractive reports whether forms may prompt on the terminal.
	IsInteractive func() bool

	closeDB func() error
}

// NewRootCmd creates the top-level "punchclock" command.
func NewRootCmd(s *State) *cobra.Command {
	if s.Location == nil {
		s.Location = time.Local
	}
	if s.IsInteractive == nil {
		s.IsInteractive = func() bool { return false }
	}

	root := &cobra.Command{
		Use:           "punchclock",
		Short:         "Team time tracking with weekly timesheet approval",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsSetup(cmd) {
				return nil
			}
			return s.setup(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.close()
		},
	}
	root.PersistentFlags().StringVar(&s.ConfigPath, "config", "", "Config file (default $XDG_CONFIG_HOME/punchclock/punchclock.yml)")
	root.PersistentFlags().StringVar(&s.AsUser, "as", "", "Email of the user to act as (default $PUNCHCLOCK_CLI_USER)")

	root.AddCommand(
		newServeCmd(s),
		newMigrateCmd(s),
		newUserCmd(s),
		newProjectCmd(s),
		newTaskCmd(s),
		newTimerCmd(s),
		newEntryCmd(s),
		newTimesheetCmd(s),
		newNotifyCmd(s),
		newReportCmd(s),
	)
	return root
}

func skipsSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	return false
}

func (s *State) setup(ctx context.Context) error {
	if s.App != nil {
		if s.Logger == nil {
			s.Logger = slog.New(slog.DiscardHandler)
		}
		return nil
	}

	cfg, err := config.Load(config.New(), s.ConfigPath)
	if err != nil {
		return err
	}
	s.Config = cfg
	if s.Logger == nil {
		s.Logger = newLogger(s.LogOutput, cfg.Log.Level, s.LogJSON)
	}

	database, err := db.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return err
	}
	s.closeDB = database.Close
	s.App = app.New(database, cfg.DB.Driver, app.Options{
		StaleAfter: &cfg.Timer.StaleAfter,
		Logger:     s.Logger,
	})

	if cfg.Admin.Password != "" {
		created, err := s.App.Users.EnsureDefaultAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return fmt.Errorf("seeding default admin: %w", err)
		}
		if created {
			s.Logger.Info("created default admin", "email", cfg.Admin.Email)
		}
	}
	return nil
}

func (s *State) close() error {
	if s.closeDB == nil {
		return nil
	}
	err := s.closeDB()
	s.closeDB = nil
	return err
}

// identity resolves the user local commands act as.
func (s *State) identity(ctx context.Context) (auth.Identity, error) {
	email := s.AsUser
	if email == "" {
		email = s.Config.CLI.User
	}
	if email == "" {
		return auth.Identity{}, fmt.Errorf("no user selected: pass --as EMAIL or set %s_CLI_USER", config.EnvPrefix)
	}
	u, err := s.App.Users.GetByEmail(ctx, email)
	if err != nil {
		return auth.Identity{}, err
	}
	if !u.IsActive() {
		return auth.Identity{}, fmt.Errorf("user %s is inactive", u.Email)
	}
	return auth.IdentityOf(u), nil
}

func (s *State) adminIdentity(ctx context.Context) (auth.Identity, error) {
	id, err := s.identity(ctx)
	if err != nil {
		return auth.Identity{}, err
	}
	if !id.IsAdmin() {
		return auth.Identity{}, fmt.Errorf("%s is not an admin", id.Email)
	}
	return id, nil
}

func newLogger(w io.Writer, level slog.Level, asJSON bool) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
