// Package config loads runtime configuration for the journal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: JOURNAL_* variables, falling back to a .env file in the
//     working directory (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string     database driver (sqlite or pgx)
//	-dsn string   database DSN
//	-r string     remote backend (none, firebase, couchdb, redis)
//	-l string     log level
//	-lf string    log format (slog or zap)
//	-t duration   per-command timeout
//
// # JSON schema
//
// The JSON loader uses timex.Duration for durations, so values can be either
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "db_driver": "sqlite",
//	  "db_dsn": "journal.db",
//	  "remote": "firebase",
//	  "firebase_database_url": "https://journal-dev.firebaseio.com",
//	  "sync_schedule": "@every 15m",
//	  "command_timeout": "30s"
//	}
//
// Primary API
//
//   - type Config                          holds every setting
//   - func LoadConfig(args) (*Config, error)  applies defaults, env, JSON, flags
//   - var OwnedFlags                       flags consumed here
package config
