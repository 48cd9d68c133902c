package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/jablog/internal/flagx"
	"github.com/dmitrijs2005/jablog/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations are written
// as strings such as "1m" or "720h". Pointer fields distinguish "absent" from
// "zero", so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP           *string         `json:"endpoint_addr_http"`
	DatabaseDSN                *string         `json:"database_dsn"`
	SecretKey                  *string         `json:"secret_key"`
	CookieName                 *string         `json:"cookie_name"`
	SecureCookies              *bool           `json:"secure_cookies"`
	LogLevel                   *string         `json:"log_level"`
	LoginRateLimit             *int            `json:"login_rate_limit"`
	LoginRateWindow            *timex.Duration `json:"login_rate_window"`
	RedisAddr                  *string         `json:"redis_addr"`
	RedisPassword              *string         `json:"redis_password"`
	RedisDB                    *int            `json:"redis_db"`
	ResetTokenValidityDuration *timex.Duration `json:"reset_token_validity_duration"`
	BaseURL                    *string         `json:"base_url"`
	TrustedProxies             *[]string       `json:"trusted_proxies"`
	MetricsAddr                *string         `json:"metrics_addr"`
}

// parseJson loads the file named by -c/-config in args, if any, and copies
// the fields it sets into cfg.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&cfg.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&cfg.DatabaseDSN, c.DatabaseDSN)
	setIf(&cfg.SecretKey, c.SecretKey)
	setIf(&cfg.CookieName, c.CookieName)
	setIf(&cfg.SecureCookies, c.SecureCookies)
	setIf(&cfg.LogLevel, c.LogLevel)
	setIf(&cfg.LoginRateLimit, c.LoginRateLimit)
	setIf(&cfg.RedisAddr, c.RedisAddr)
	setIf(&cfg.RedisPassword, c.RedisPassword)
	setIf(&cfg.RedisDB, c.RedisDB)
	setIf(&cfg.BaseURL, c.BaseURL)
	setIf(&cfg.TrustedProxies, c.TrustedProxies)
	setIf(&cfg.MetricsAddr, c.MetricsAddr)
	if c.LoginRateWindow != nil {
		cfg.LoginRateWindow = c.LoginRateWindow.Duration
	}
	if c.ResetTokenValidityDuration != nil {
		cfg.ResetTokenValidityDuration = c.ResetTokenValidityDuration.Duration
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
