package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var lookupEnv = os.LookupEnv

// parseEnv overlays cfg with JOURNAL_* variables. Values in dotenvPath are
// used when the process environment does not set the same variable. A missing
// dotenv file is not an error.
func parseEnv(cfg *Config, dotenvPath string, lookup func(string) (string, bool)) error {
	fileVars, err := godotenv.Read(dotenvPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", dotenvPath, err)
	}

	get := func(name string) (string, bool) {
		if v, ok := lookup(name); ok {
			return v, true
		}
		v, ok := fileVars[name]
		return v, ok
	}

	strs := map[string]*string{
		"JOURNAL_DB_DRIVER":             &cfg.DatabaseDriver,
		"JOURNAL_DB_DSN":                &cfg.DatabaseDSN,
		"JOURNAL_REMOTE":                &cfg.RemoteBackend,
		"JOURNAL_REMOTE_ROOT":           &cfg.RemoteRoot,
		"JOURNAL_FIREBASE_CREDENTIALS":  &cfg.FirebaseCredentialsFile,
		"JOURNAL_FIREBASE_PROJECT_ID":   &cfg.FirebaseProjectID,
		"JOURNAL_FIREBASE_DATABASE_URL": &cfg.FirebaseDatabaseURL,
		"JOURNAL_COUCHDB_URL":           &cfg.CouchDBURL,
		"JOURNAL_COUCHDB_DB":            &cfg.CouchDBName,
		"JOURNAL_REDIS_ADDR":            &cfg.RedisAddr,
		"JOURNAL_REDIS_PASSWORD":        &cfg.RedisPassword,
		"JOURNAL_SYNC_SCHEDULE":         &cfg.SyncSchedule,
		"JOURNAL_EXPORT_ENDPOINT":       &cfg.ExportEndpoint,
		"JOURNAL_EXPORT_REGION":         &cfg.ExportRegion,
		"JOURNAL_EXPORT_BUCKET":         &cfg.ExportBucket,
		"JOURNAL_EXPORT_ACCESS_KEY":     &cfg.ExportAccessKey,
		"JOURNAL_EXPORT_SECRET_KEY":     &cfg.ExportSecretKey,
		"JOURNAL_LOG_LEVEL":             &cfg.LogLevel,
		"JOURNAL_LOG_FORMAT":            &cfg.LogFormat,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	if v, ok := get("JOURNAL_REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid JOURNAL_REDIS_DB %q: %w", v, err)
		}
		cfg.RedisDB = n
	}
	if v, ok := get("JOURNAL_COMMAND_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JOURNAL_COMMAND_TIMEOUT %q: %w", v, err)
		}
		cfg.CommandTimeout = d
	}
	return nil
}
