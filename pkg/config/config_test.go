package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// New caches the first read, so this package keeps a single test entrypoint.
func TestNew(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("API_PREFIX", "/api/v2")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("SESSION_DIR", "/tmp/ig-sessions")
	t.Setenv("API_KEY", "secret-key")

	cfg, err := New()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.App.Port)
	require.Equal(t, "/api/v2", cfg.App.Prefix)
	require.Equal(t, 5, cfg.RateLimit.Requests)
	require.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	require.Equal(t, "/tmp/ig-sessions", cfg.Session.Dir)
	require.Equal(t, "secret-key", cfg.Security.ApiKey)

	require.Equal(t, "insta-rest-api", cfg.App.Name)
	require.Equal(t, "development", cfg.App.Env)
	require.Equal(t, "*", cfg.App.CorsOrigins)
	require.Equal(t, 3, cfg.Download.MaxConcurrent)
	require.Equal(t, 30, cfg.Download.RetentionDays)
	require.Equal(t, 10*time.Minute, cfg.Cache.ProfileTTL)
	require.Equal(t, 30, cfg.Instagram.RequestsPerMinute)
}
