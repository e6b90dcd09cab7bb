// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for colab. Values come from an optional
// YAML file (CONFIG_PATH) and environment variables, with the environment
// taking precedence. Secrets are only read from the environment.
type Config struct {
	Database struct {
		URL             string        `yaml:"-" env:"DATABASE_URL" env-default:"postgres://postgres@localhost:5432/colab?sslmode=disable"`
		MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
		MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"25"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
		MigrateOnStart  bool          `yaml:"migrate_on_start" env:"DB_MIGRATE_ON_START" env-default:"true"`
	} `yaml:"database"`

	Session struct {
		Secret string `yaml:"-" env:"SESSION_SECRET"`
		MaxAge int    `yaml:"max_age" env:"SESSION_MAX_AGE" env-default:"604800"`
		Secure bool   `yaml:"secure" env:"SESSION_SECURE" env-default:"false"`
	} `yaml:"session"`

	GitHub struct {
		BaseURL string        `yaml:"base_url" env:"GITHUB_API_URL" env-default:"https://api.github.com"`
		Token   string        `yaml:"-" env:"GIT_TOKEN"`
		Timeout time.Duration `yaml:"timeout" env:"GITHUB_TIMEOUT" env-default:"10s"`
		// CacheTTL bounds how long repository lookups are reused. Zero disables the cache.
		CacheTTL time.Duration `yaml:"cache_ttl" env:"GITHUB_CACHE_TTL" env-default:"10m"`
	} `yaml:"github"`

	JWT struct {
		Secret       string        `yaml:"-" env:"JWT_SECRET"`
		ExpiryPeriod time.Duration `yaml:"expiry_period" env:"JWT_EXPIRY" env-default:"24h"`
	} `yaml:"jwt"`

	Scheduler struct {
		Enabled              bool          `yaml:"enabled" env:"SCHEDULER_ENABLED" env-default:"true"`
		// Schedules use cron syntax, including descriptors like @daily.
		StackSchedule        string        `yaml:"stack_schedule" env:"STACK_REFRESH_SCHEDULE" env-default:"@daily"`
		CollaboratorSchedule string        `yaml:"collaborator_schedule" env:"COLLABORATOR_REFRESH_SCHEDULE" env-default:"@hourly"`
		AlertSchedule        string        `yaml:"alert_schedule" env:"ALERT_SCHEDULE" env-default:"@daily"`
		AlertLookback        time.Duration `yaml:"alert_lookback" env:"ALERT_LOOKBACK" env-default:"24h"`
		RunTimeout           time.Duration `yaml:"run_timeout" env:"SCHEDULER_RUN_TIMEOUT" env-default:"30m"`
		BatchSize            int           `yaml:"batch_size" env:"RECONCILE_BATCH_SIZE" env-default:"100"`
	} `yaml:"scheduler"`

	Server struct {
		Port         string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
		ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
	} `yaml:"server"`

	Sendgrid struct {
		APIKey string `yaml:"-" env:"SENDGRID_API_KEY"`
		From   string `yaml:"from" env:"SENDGRID_FROM"`
	} `yaml:"sendgrid"`

	SMTP struct {
		Host     string `yaml:"host" env:"SMTP_HOST"`
		Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
		Username string `yaml:"username" env:"SMTP_USERNAME"`
		Password string `yaml:"-" env:"SMTP_PASSWORD"`
		From     string `yaml:"from" env:"SMTP_FROM"`
	} `yaml:"smtp"`

	BaseURL string `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:8080"`
}

// Load reads the configuration. When CONFIG_PATH names a YAML file it is
// read first and the environment is applied on top.
func Load() (*Config, error) {
	cfg := &Config{}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	return cfg, nil
}

// MinSecretLength is the shortest accepted signing secret, in bytes.
const MinSecretLength = 32

// ErrWeakSecret is returned by ValidateSecrets for a missing or short secret.
var ErrWeakSecret = errors.New("secret must be set and at least 32 bytes long")

// ValidateSecrets checks the secrets that sign session cookies and API
// tokens. The server refuses to start without them.
func (c *Config) ValidateSecrets() error {
	if len(c.Session.Secret) < MinSecretLength {
		return fmt.Errorf("SESSION_SECRET: %w", ErrWeakSecret)
	}
	if len(c.JWT.Secret) < MinSecretLength {
		return fmt.Errorf("JWT_SECRET: %w", ErrWeakSecret)
	}
	return nil
}

// MailEnabled reports whether any outbound mail provider is configured.
func (c *Config) MailEnabled() bool {
	return c.Sendgrid.APIKey != "" || c.SMTP.Host != ""
}
