package config

import (
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/common"
	"github.com/dmitrijs2005/dailyjournal/internal/dbx"
)

// Config holds runtime settings for the journal CLI.
//
// Units: CommandTimeout is a time.Duration; zero means commands run without a
// deadline.
type Config struct {
	DatabaseDriver string
	DatabaseDSN    string

	RemoteBackend string
	RemoteRoot    string

	FirebaseCredentialsFile string
	FirebaseProjectID       string
	FirebaseDatabaseURL     string

	CouchDBURL  string
	CouchDBName string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SyncSchedule string

	ExportEndpoint  string
	ExportRegion    string
	ExportBucket    string
	ExportAccessKey string
	ExportSecretKey string

	LogLevel  string
	LogFormat string

	CommandTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = dbx.DriverSQLite
	c.DatabaseDSN = "journal.db"
	c.RemoteBackend = "none"
	c.RemoteRoot = common.DefaultRemoteRoot
	c.CouchDBURL = "http://127.0.0.1:5984"
	c.RedisAddr = "127.0.0.1:6379"
	c.SyncSchedule = "@every 15m"
	c.ExportRegion = "us-east-1"
	c.LogLevel = "info"
	c.LogFormat = "slog"
	c.CommandTimeout = 0
}

// OwnedFlags lists the command-line flags consumed by LoadConfig. Callers
// strip them (flagx.ExcludeArgs) before handing the rest to the command tree.
var OwnedFlags = []string{"-c", "-config", "-d", "-dsn", "-r", "-l", "-lf", "-t"}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment (.env file and JOURNAL_* variables), a JSON file (if given with
// -c/-config) and finally command-line flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, ".env", lookupEnv); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
