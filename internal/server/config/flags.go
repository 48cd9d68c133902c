package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/jablog/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   database DSN (postgres URL or "sqlite:<path>")
//	-s string   session secret key
//	-l string   log level (debug, info, warn, error)
//	-r string   Redis address for the login rate limiter
//	-u string   public base URL
//	-m string   metrics listener address ("" disables it)
//
// Only the flags above are considered; anything else in args is ignored so
// that -c/-config can travel in the same argument list.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-l", "-r", "-u", "-m"})

	fs := flag.NewFlagSet("jablog", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.BaseURL, "u", config.BaseURL, "public base URL")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "metrics listener address")

	return fs.Parse(args)
}
