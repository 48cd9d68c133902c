// Package config resolves the jablog server configuration: built-in
// defaults, then an optional JSON file, then JABLOG_* environment variables,
// then command-line flags.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// DefaultSecretKey is only meant for local development.
const DefaultSecretKey = "dev-only-secret-key-change-me"

// Config holds runtime settings for the jablog server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the web server.
//   - DatabaseDSN: PostgreSQL URL (pgx) or "sqlite:<path>" for the embedded store.
//   - SecretKey: master secret the session signing and encryption keys are derived from.
//   - CookieName / SecureCookies: session cookie attributes.
//   - LoginRateLimit / LoginRateWindow: login attempts allowed per client IP per window.
//   - RedisAddr / RedisPassword / RedisDB: optional shared rate limiter backend.
//   - ResetTokenValidityDuration: lifetime of password reset links.
//   - BaseURL: public origin used to build password reset links.
//   - TrustedProxies: IPs or CIDRs whose X-Forwarded-For / X-Real-IP headers are honoured.
//   - MetricsAddr: bind address for the Prometheus listener; empty disables it.
type Config struct {
	EndpointAddrHTTP           string        `env:"JABLOG_HTTP_ADDR"`
	DatabaseDSN                string        `env:"JABLOG_DATABASE_DSN"`
	SecretKey                  string        `env:"JABLOG_SECRET_KEY"`
	CookieName                 string        `env:"JABLOG_COOKIE_NAME"`
	SecureCookies              bool          `env:"JABLOG_SECURE_COOKIES"`
	LogLevel                   string        `env:"JABLOG_LOG_LEVEL"`
	LoginRateLimit             int           `env:"JABLOG_LOGIN_RATE_LIMIT"`
	LoginRateWindow            time.Duration `env:"JABLOG_LOGIN_RATE_WINDOW"`
	RedisAddr                  string        `env:"JABLOG_REDIS_ADDR"`
	RedisPassword              string        `env:"JABLOG_REDIS_PASSWORD"`
	RedisDB                    int           `env:"JABLOG_REDIS_DB"`
	ResetTokenValidityDuration time.Duration `env:"JABLOG_RESET_TOKEN_TTL"`
	BaseURL                    string        `env:"JABLOG_BASE_URL"`
	TrustedProxies             []string      `env:"JABLOG_TRUSTED_PROXIES" envSeparator:","`
	MetricsAddr                string        `env:"JABLOG_METRICS_ADDR"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key default is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = "sqlite:jablog.db"
	c.SecretKey = DefaultSecretKey
	c.CookieName = "jablog.session-token"
	c.SecureCookies = false
	c.LogLevel = "info"
	c.LoginRateLimit = 10
	c.LoginRateWindow = 1 * time.Minute
	c.RedisAddr = ""
	c.RedisPassword = ""
	c.RedisDB = 0
	c.ResetTokenValidityDuration = 1 * time.Hour
	c.BaseURL = "http://localhost:8080"
	c.TrustedProxies = nil
	c.MetricsAddr = "127.0.0.1:9090"
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.EndpointAddrHTTP == "" {
		errs = append(errs, errors.New("http address is empty"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is empty"))
	}
	if len(c.SecretKey) < 16 {
		errs = append(errs, errors.New("secret key must be at least 16 bytes"))
	}
	if c.CookieName == "" {
		errs = append(errs, errors.New("cookie name is empty"))
	}
	if c.LoginRateWindow <= 0 {
		errs = append(errs, errors.New("login rate window must be positive"))
	}
	if c.ResetTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("reset token validity must be positive"))
	}
	for _, p := range c.TrustedProxies {
		if !validProxy(p) {
			errs = append(errs, fmt.Errorf("trusted proxy %q is not an IP or CIDR", p))
		}
	}
	return errors.Join(errs...)
}

func validProxy(entry string) bool {
	entry = strings.TrimSpace(entry)
	if _, _, err := net.ParseCIDR(entry); err == nil {
		return true
	}
	return net.ParseIP(entry) != nil
}

// LoadConfig builds a Config from defaults, then overlays the JSON file named
// by -c/-config in args, then the environment, then the flags in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
