// Package config loads punchclock settings from defaults, an optional YAML
// file and PUNCHCLOCK_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/punchclock/internal/db"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "PUNCHCLOCK"

// Config holds every runtime setting.
type Config struct {
	DB    DBConfig
	HTTP  HTTPConfig
	Auth  AuthConfig
	Log   LogConfig
	Timer TimerConfig
	Admin AdminConfig
	CLI   CLIConfig
}

type DBConfig struct {
	Driver db.Dialect
	DSN    string
}

type HTTPConfig struct {
	Addr string
	// CORSOrigins lists origins allowed to call the API from a browser.
	// "*" allows any origin; empty disables CORS handling.
	CORSOrigins []string
}

type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type LogConfig struct {
	Level slog.Level
}

type TimerConfig struct {
	// StaleAfter marks a running timer as stale once its last heartbeat is
	// older. Zero never marks a timer stale.
	StaleAfter time.Duration
}

// AdminConfig seeds the first administrator on an empty database.
type AdminConfig struct {
	Email    string
	Password string
}

// CLIConfig holds defaults for local commands.
type CLIConfig struct {
	// User is the email local commands act as when --as is not given.
	User string
}

// Keys recognized in the YAML file. Env names are the upper-cased key with
// dots replaced by underscores, e.g. PUNCHCLOCK_DB_DSN.
const (
	KeyDBDriver        = "db.driver"
	KeyDBDSN           = "db.dsn"
	KeyHTTPAddr        = "http.addr"
	KeyHTTPCORSOrigins = "http.cors_origins"
	KeyAuthSecret      = "auth.secret"
	KeyAuthTokenTTL    = "auth.token_ttl"
	KeyLogLevel        = "log.level"
	KeyTimerStaleAfter = "timer.stale_after"
	KeyAdminEmail      = "admin.email"
	KeyAdminPassword   = "admin.password"
	KeyCLIUser         = "cli.user"
)

// DefaultDBPath returns ~/.punchclock/punchclock.db, or a relative path when
// the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".punchclock", "punchclock.db")
	}
	return filepath.Join(home, ".punchclock", "punchclock.db")
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/punchclock/punchclock.yml.
func DefaultConfigFile() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		configHome = dir
	}
	return filepath.Join(configHome, "punchclock", "punchclock.yml")
}

// New returns a viper instance with defaults and env binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDBDriver, string(db.SQLite))
	v.SetDefault(KeyDBDSN, DefaultDBPath())
	v.SetDefault(KeyHTTPAddr, ":8080")
	v.SetDefault(KeyHTTPCORSOrigins, []string{"*"})
	v.SetDefault(KeyAuthSecret, "")
	v.SetDefault(KeyAuthTokenTTL, 7*24*time.Hour)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyTimerStaleAfter, 10*time.Minute)
	v.SetDefault(KeyAdminEmail, "admin@punchclock.local")
	v.SetDefault(KeyAdminPassword, "")
	v.SetDefault(KeyCLIUser, "")
	return v
}

// Load reads path (or the default config file when path is empty) into v and
// decodes the result. A missing default file is not an error; a missing
// explicit file is.
func Load(v *viper.Viper, path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
			if explicit || !missing {
				return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
			}
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config

	driver, ok := db.ParseDialect(v.GetString(KeyDBDriver))
	if !ok {
		return Config{}, fmt.Errorf("%s: unsupported driver %q", KeyDBDriver, v.GetString(KeyDBDriver))
	}
	cfg.DB = DBConfig{Driver: driver, DSN: v.GetString(KeyDBDSN)}
	if cfg.DB.DSN == "" {
		return Config{}, fmt.Errorf("%s must not be empty", KeyDBDSN)
	}

	cfg.HTTP = HTTPConfig{
		Addr:        v.GetString(KeyHTTPAddr),
		CORSOrigins: splitList(v.GetStringSlice(KeyHTTPCORSOrigins)),
	}

	cfg.Auth = AuthConfig{
		Secret:   v.GetString(KeyAuthSecret),
		TokenTTL: v.GetDuration(KeyAuthTokenTTL),
	}
	if cfg.Auth.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("%s must be positive", KeyAuthTokenTTL)
	}

	if err := cfg.Log.Level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}

	cfg.Timer = TimerConfig{StaleAfter: v.GetDuration(KeyTimerStaleAfter)}
	if cfg.Timer.StaleAfter < 0 {
		return Config{}, fmt.Errorf("%s must not be negative", KeyTimerStaleAfter)
	}

	cfg.Admin = AdminConfig{
		Email:    v.GetString(KeyAdminEmail),
		Password: v.GetString(KeyAdminPassword),
	}
	cfg.CLI = CLIConfig{User: v.GetString(KeyCLIUser)}
	return cfg, nil
}

// splitList flattens comma-separated items, so the env form
// PUNCHCLOCK_HTTP_CORS_ORIGINS=https://a,https://b works like a YAML list.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// RequireSecret reports an error when no signing secret is configured.
func (c Config) RequireSecret() error {
	if c.Auth.Secret == "" {
		return fmt.Errorf("auth secret is not set (use %s_AUTH_SECRET or %s in the config file)", EnvPrefix, KeyAuthSecret)
	}
	return nil
}
