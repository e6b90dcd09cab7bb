package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dangerclosesec/colab/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.BaseURL)
	assert.Equal(t, "@daily", cfg.Scheduler.StackSchedule)
	assert.Equal(t, "@hourly", cfg.Scheduler.CollaboratorSchedule)
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.AlertLookback)
	assert.Equal(t, 100, cfg.Scheduler.BatchSize)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Empty(t, cfg.Session.Secret)
	assert.Empty(t, cfg.JWT.Secret)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DATABASE_URL", "postgres://colab:secret@db:5432/colab")
	t.Setenv("GIT_TOKEN", "ghp_test")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("COLLABORATOR_REFRESH_SCHEDULE", "*/15 * * * *")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://colab:secret@db:5432/colab", cfg.Database.URL)
	assert.Equal(t, "ghp_test", cfg.GitHub.Token)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, "*/15 * * * *", cfg.Scheduler.CollaboratorSchedule)
	assert.False(t, cfg.MailEnabled())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9090\"\nsendgrid:\n  from: noreply@colab.dev\n"), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SENDGRID_API_KEY", "SG.key")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "noreply@colab.dev", cfg.Sendgrid.From)
	assert.True(t, cfg.MailEnabled())
}

func TestValidateSecrets(t *testing.T) {
	strong := strings.Repeat("k", config.MinSecretLength)

	tests := []struct {
		name    string
		session string
		jwt     string
		wantErr string
	}{
		{"both set", strong, strong, ""},
		{"session secret missing", "", strong, "SESSION_SECRET"},
		{"session secret too short", "change-me", strong, "SESSION_SECRET"},
		{"jwt secret missing", strong, "", "JWT_SECRET"},
		{"jwt secret too short", strong, strong[:config.MinSecretLength-1], "JWT_SECRET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Session.Secret = tt.session
			cfg.JWT.Secret = tt.jwt

			err := cfg.ValidateSecrets()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, config.ErrWeakSecret)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
