package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("JABLOG_HTTP_ADDR", ":1234")
	t.Setenv("JABLOG_LOGIN_RATE_WINDOW", "2m")
	t.Setenv("JABLOG_REDIS_DB", "4")

	cfg := defaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, ":1234", cfg.EndpointAddrHTTP)
	assert.Equal(t, 2*time.Minute, cfg.LoginRateWindow)
	assert.Equal(t, 4, cfg.RedisDB)
	assert.Equal(t, "sqlite:jablog.db", cfg.DatabaseDSN, "unset variables keep defaults")
}

func Test_parseEnv_BadValue(t *testing.T) {
	t.Setenv("JABLOG_LOGIN_RATE_LIMIT", "many")
	require.Error(t, parseEnv(defaults()))
}

func Test_parseEnv_TrustedProxies(t *testing.T) {
	t.Setenv("JABLOG_TRUSTED_PROXIES", "10.0.0.0/8,127.0.0.1")
	t.Setenv("JABLOG_METRICS_ADDR", "0.0.0.0:9100")

	cfg := defaults()
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
	assert.Equal(t, "0.0.0.0:9100", cfg.MetricsAddr)
}
