package config

import (
	"strconv"

	"github.com/nibzard/sam-go/internal/samdir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
var (
	DefaultTaskFile        = samdir.Path("", samdir.TaskFile)
	DefaultCredentialsFile = samdir.Path("", samdir.CredentialsFile)
	DefaultTokenFile       = samdir.Path("", samdir.TokenFile)
)

const (
	DefaultUI           = UIPlain
	DefaultPrompt       = "> "
	DefaultLogLevel     = "warn"
	DefaultLogFormat    = "text"
	DefaultCalendarName = "primary"
	DefaultSlotMinutes  = 30
	DefaultSyncWorkers  = 4
)

// UI front ends.
const (
	UIPlain = "plain"
	UITUI   = "tui"
)

// Config holds the full configuration for sam.
type Config struct {
	// Paths
	TaskFile       string `toml:"task_file"`
	SnapshotSchema string `toml:"snapshot_schema"`

	// Front end
	UI     string `toml:"ui"`
	Prompt string `toml:"prompt"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	LogFile       string `toml:"log_file"`

	Calendar CalendarConfig `toml:"calendar"`
}

// CalendarConfig configures Google Calendar sync.
type CalendarConfig struct {
	// Name is the calendar summary, or "primary".
	Name            string `toml:"name"`
	CredentialsFile string `toml:"credentials_file"`
	TokenFile       string `toml:"token_file"`
	// SlotMinutes is the length of the event created for a deadline.
	SlotMinutes int `toml:"slot_minutes"`
	// Workers bounds concurrent API requests during sync.
	Workers int `toml:"workers"`
}

// configFields lists every field key reported by LoadWithSources.
func configFields() []string {
	return []string{
		"task_file",
		"snapshot_schema",
		"ui",
		"prompt",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_file",
		"calendar.name",
		"calendar.credentials_file",
		"calendar.token_file",
		"calendar.slot_minutes",
		"calendar.workers",
	}
}

// Fields returns the config keys in display order.
func Fields() []string {
	return configFields()
}

// Value returns the string form of field, one of Fields().
func (c *Config) Value(field string) string {
	switch field {
	case "task_file":
		return c.TaskFile
	case "snapshot_schema":
		return c.SnapshotSchema
	case "ui":
		return c.UI
	case "prompt":
		return strconv.Quote(c.Prompt)
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(c.LogCaller)
	case "log_file":
		return c.LogFile
	case "calendar.name":
		return c.Calendar.Name
	case "calendar.credentials_file":
		return c.Calendar.CredentialsFile
	case "calendar.token_file":
		return c.Calendar.TokenFile
	case "calendar.slot_minutes":
		return strconv.Itoa(c.Calendar.SlotMinutes)
	case "calendar.workers":
		return strconv.Itoa(c.Calendar.Workers)
	}
	return ""
}
