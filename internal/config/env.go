package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nibzard/sam-go/internal/utils"
)

// envBinding maps one SAM_* variable onto a config field.
type envBinding struct {
	name  string
	field string
	apply func(cfg *Config, v string) error
}

func stringEnv(name, field string, target func(*Config) *string) envBinding {
	return envBinding{name: name, field: field, apply: func(cfg *Config, v string) error {
		*target(cfg) = v
		return nil
	}}
}

func boolEnv(name, field string, target func(*Config) *bool) envBinding {
	return envBinding{name: name, field: field, apply: func(cfg *Config, v string) error {
		*target(cfg) = utils.BoolFromString(v)
		return nil
	}}
}

func intEnv(name, field string, target func(*Config) *int) envBinding {
	return envBinding{name: name, field: field, apply: func(cfg *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*target(cfg) = n
		return nil
	}}
}

var envBindings = []envBinding{
	stringEnv("SAM_TASK_FILE", "task_file", func(c *Config) *string { return &c.TaskFile }),
	stringEnv("SAM_SNAPSHOT_SCHEMA", "snapshot_schema", func(c *Config) *string { return &c.SnapshotSchema }),
	stringEnv("SAM_UI", "ui", func(c *Config) *string { return &c.UI }),
	stringEnv("SAM_PROMPT", "prompt", func(c *Config) *string { return &c.Prompt }),
	stringEnv("SAM_LOG_LEVEL", "log_level", func(c *Config) *string { return &c.LogLevel }),
	stringEnv("SAM_LOG_FORMAT", "log_format", func(c *Config) *string { return &c.LogFormat }),
	boolEnv("SAM_LOG_TIMESTAMPS", "log_timestamps", func(c *Config) *bool { return &c.LogTimestamps }),
	boolEnv("SAM_LOG_CALLER", "log_caller", func(c *Config) *bool { return &c.LogCaller }),
	stringEnv("SAM_LOG_FILE", "log_file", func(c *Config) *string { return &c.LogFile }),
	stringEnv("SAM_CALENDAR", "calendar.name", func(c *Config) *string { return &c.Calendar.Name }),
	stringEnv("SAM_CALENDAR_CREDENTIALS", "calendar.credentials_file", func(c *Config) *string { return &c.Calendar.CredentialsFile }),
	stringEnv("SAM_CALENDAR_TOKEN", "calendar.token_file", func(c *Config) *string { return &c.Calendar.TokenFile }),
	intEnv("SAM_CALENDAR_SLOT_MINUTES", "calendar.slot_minutes", func(c *Config) *int { return &c.Calendar.SlotMinutes }),
	intEnv("SAM_CALENDAR_WORKERS", "calendar.workers", func(c *Config) *int { return &c.Calendar.Workers }),
}

// loadFromEnv overrides config from environment variables. Empty
// variables are ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	for _, b := range envBindings {
		v := os.Getenv(b.name)
		if v == "" {
			continue
		}
		if err := b.apply(cfg, v); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", b.name, v, err)
		}
		if sources != nil {
			sources[b.field] = SourceEnv
		}
	}
	return nil
}

// EnvVars returns the names of every environment variable sam reads.
func EnvVars() []string {
	names := make([]string, 0, len(envBindings))
	for _, b := range envBindings {
		names = append(names, b.name)
	}
	return names
}
