package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays JABLOG_* environment variables. Unset variables keep the
// value already in cfg.
func parseEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
