package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "DB_PATH", "TEMPLATE_DIR", "SESSION_TTL_HOURS"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "homeroom.db", cfg.DBPath)
	require.Equal(t, "web/templates", cfg.TemplateDir)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL_HOURS", "48")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, 48*time.Hour, cfg.SessionTTL)
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "soon")
	_, err := Load()
	require.Error(t, err)
}
