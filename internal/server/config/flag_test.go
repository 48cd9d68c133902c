package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected func(*Config)
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "postgres://db", "-s", "0123456789abcdef",
				"-l", "debug", "-r", "redis:6379", "-u", "https://jab.example",
				"-m", ":9100",
			},
			expected: func(c *Config) {
				c.EndpointAddrHTTP = "127.0.0.1:9090"
				c.DatabaseDSN = "postgres://db"
				c.SecretKey = "0123456789abcdef"
				c.LogLevel = "debug"
				c.RedisAddr = "redis:6379"
				c.BaseURL = "https://jab.example"
				c.MetricsAddr = ":9100"
			},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"-c", "cfg.json", "-x", "1"},
			expected: func(c *Config) {},
		},
		{
			name:    "missing value",
			args:    []string{"-a"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaults()
			err := parseFlags(got, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			tt.expected(want)
			assert.Empty(t, cmp.Diff(want, got))
		})
	}
}
