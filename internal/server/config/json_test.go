package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	full := writeTempJSON(t, map[string]any{
		"endpoint_addr_http":            "www.example:9000",
		"database_dsn":                  "sqlite:/var/lib/jablog.db",
		"secret_key":                    "my_secret_key_is_long",
		"cookie_name":                   "sid",
		"secure_cookies":                true,
		"log_level":                     "debug",
		"login_rate_limit":              3,
		"login_rate_window":             "5m",
		"redis_addr":                    "redis:6379",
		"redis_password":                "pw",
		"redis_db":                      2,
		"reset_token_validity_duration": "30m",
		"base_url":                      "https://jab.example",
		"trusted_proxies":               []string{"10.0.0.0/8"},
		"metrics_addr":                  "",
	})

	t.Run("loads every field", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, parseJSON(cfg, []string{"-config", full}))

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "sqlite:/var/lib/jablog.db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key_is_long", cfg.SecretKey)
		assert.Equal(t, "sid", cfg.CookieName)
		assert.True(t, cfg.SecureCookies)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 3, cfg.LoginRateLimit)
		assert.Equal(t, 5*time.Minute, cfg.LoginRateWindow)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, "pw", cfg.RedisPassword)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, 30*time.Minute, cfg.ResetTokenValidityDuration)
		assert.Equal(t, "https://jab.example", cfg.BaseURL)
		assert.Equal(t, []string{"10.0.0.0/8"}, cfg.TrustedProxies)
		assert.Equal(t, "", cfg.MetricsAddr)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, map[string]any{"log_level": "error"})
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, []string{"-c", partial}))

		want := defaults()
		want.LogLevel = "error"
		assert.Equal(t, want, cfg)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, parseJSON(cfg, nil))
		assert.Equal(t, defaults(), cfg)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJSON(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file → error", func(t *testing.T) {
		require.Error(t, parseJSON(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}
