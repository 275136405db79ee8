package config

import (
	"flag"
)

// flagToField maps flag names to config field keys.
var flagToField = map[string]string{
	"tasks":            "task_file",
	"schema":           "snapshot_schema",
	"ui":               "ui",
	"log-level":        "log_level",
	"log-format":       "log_format",
	"log-timestamps":   "log_timestamps",
	"log-caller":       "log_caller",
	"log-file":         "log_file",
	"calendar":         "calendar.name",
	"calendar-creds":   "calendar.credentials_file",
	"calendar-token":   "calendar.token_file",
	"calendar-slot":    "calendar.slot_minutes",
	"calendar-workers": "calendar.workers",
}

// parseFlags defines the global flags on fs and parses args. Flags that
// were set explicitly are recorded in sources when sources is non-nil.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("sam", flag.ContinueOnError)
	}

	// Paths
	fs.StringVar(&cfg.TaskFile, "tasks", cfg.TaskFile, "Path to task file")
	fs.StringVar(&cfg.SnapshotSchema, "schema", cfg.SnapshotSchema, "Snapshot schema override for import")

	// Front end
	fs.StringVar(&cfg.UI, "ui", cfg.UI, "Chat front end (plain, tui)")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Also write logs to this file")

	// Calendar
	fs.StringVar(&cfg.Calendar.Name, "calendar", cfg.Calendar.Name, "Google Calendar name (or primary)")
	fs.StringVar(&cfg.Calendar.CredentialsFile, "calendar-creds", cfg.Calendar.CredentialsFile, "OAuth client credentials JSON")
	fs.StringVar(&cfg.Calendar.TokenFile, "calendar-token", cfg.Calendar.TokenFile, "OAuth token cache")
	fs.IntVar(&cfg.Calendar.SlotMinutes, "calendar-slot", cfg.Calendar.SlotMinutes, "Minutes blocked for a deadline")
	fs.IntVar(&cfg.Calendar.Workers, "calendar-workers", cfg.Calendar.Workers, "Concurrent calendar requests during sync")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagToField[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
