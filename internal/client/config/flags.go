package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/dailyjournal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string     database driver (sqlite or pgx)
//	-dsn string   database DSN
//	-r string     remote backend (none, firebase, couchdb, redis)
//	-l string     log level
//	-lf string    log format (slog or zap)
//	-t duration   per-command timeout, 0 for none
//
// Only these flags are read from args (see flagx.FilterArgs); everything else
// belongs to the command tree.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-dsn", "-r", "-l", "-lf", "-t"})

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDriver, "d", cfg.DatabaseDriver, "database driver")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.RemoteBackend, "r", cfg.RemoteBackend, "remote backend")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "lf", cfg.LogFormat, "log format")
	fs.DurationVar(&cfg.CommandTimeout, "t", cfg.CommandTimeout, "per-command timeout")

	return fs.Parse(args)
}
