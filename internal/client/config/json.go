package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/dailyjournal/internal/flagx"
	"github.com/dmitrijs2005/dailyjournal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer and
// zero-able fields are copied into Config only when present, so a partial
// file overrides just what it names.
type JsonConfig struct {
	DatabaseDriver string `json:"db_driver"`
	DatabaseDSN    string `json:"db_dsn"`

	RemoteBackend string `json:"remote"`
	RemoteRoot    string `json:"remote_root"`

	FirebaseCredentialsFile string `json:"firebase_credentials"`
	FirebaseProjectID       string `json:"firebase_project_id"`
	FirebaseDatabaseURL     string `json:"firebase_database_url"`

	CouchDBURL  string `json:"couchdb_url"`
	CouchDBName string `json:"couchdb_db"`

	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       *int   `json:"redis_db"`

	SyncSchedule string `json:"sync_schedule"`

	ExportEndpoint  string `json:"export_endpoint"`
	ExportRegion    string `json:"export_region"`
	ExportBucket    string `json:"export_bucket"`
	ExportAccessKey string `json:"export_access_key"`
	ExportSecretKey string `json:"export_secret_key"`

	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	CommandTimeout *timex.Duration `json:"command_timeout"`
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// parseJson overlays cfg with values from the JSON file named by -c or
// -config in args. Without either flag nothing happens.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	setIf(&cfg.DatabaseDriver, jc.DatabaseDriver)
	setIf(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setIf(&cfg.RemoteBackend, jc.RemoteBackend)
	setIf(&cfg.RemoteRoot, jc.RemoteRoot)
	setIf(&cfg.FirebaseCredentialsFile, jc.FirebaseCredentialsFile)
	setIf(&cfg.FirebaseProjectID, jc.FirebaseProjectID)
	setIf(&cfg.FirebaseDatabaseURL, jc.FirebaseDatabaseURL)
	setIf(&cfg.CouchDBURL, jc.CouchDBURL)
	setIf(&cfg.CouchDBName, jc.CouchDBName)
	setIf(&cfg.RedisAddr, jc.RedisAddr)
	setIf(&cfg.RedisPassword, jc.RedisPassword)
	setIf(&cfg.SyncSchedule, jc.SyncSchedule)
	setIf(&cfg.ExportEndpoint, jc.ExportEndpoint)
	setIf(&cfg.ExportRegion, jc.ExportRegion)
	setIf(&cfg.ExportBucket, jc.ExportBucket)
	setIf(&cfg.ExportAccessKey, jc.ExportAccessKey)
	setIf(&cfg.ExportSecretKey, jc.ExportSecretKey)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)

	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	if jc.CommandTimeout != nil {
		cfg.CommandTimeout = jc.CommandTimeout.Duration
	}
	return nil
}
