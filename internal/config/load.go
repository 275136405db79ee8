package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.sam/sam.toml or OS-specific config dir)
// 3. Project config file (sam.toml or .sam.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, cws.Sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		cws.Files = append(cws.Files, userConfigFile)
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, cws.Sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		cws.Files = append(cws.Files, projectConfigFile)
	}

	// 4. Override from environment
	if err := loadFromEnv(cfg, cws.Sources); err != nil {
		return nil, err
	}

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadConfigFile decodes a TOML file over cfg. Keys present in the file
// are recorded in sources when sources is non-nil.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if sources != nil {
		for _, key := range md.Keys() {
			sources[key.String()] = source
		}
		// Table headers are keys too; only leaf fields are tracked.
		delete(sources, "calendar")
	}
	return nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.UI = DefaultUI
	cfg.Prompt = DefaultPrompt
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.Calendar = CalendarConfig{
		Name:            DefaultCalendarName,
		CredentialsFile: DefaultCredentialsFile,
		TokenFile:       DefaultTokenFile,
		SlotMinutes:     DefaultSlotMinutes,
		Workers:         DefaultSyncWorkers,
	}
}

// finalizeConfig expands paths and validates enumerated values.
func finalizeConfig(cfg *Config) error {
	cfg.TaskFile = expandPath(cfg.TaskFile)
	if cfg.TaskFile == "" {
		return fmt.Errorf("task_file cannot be empty")
	}
	if !filepath.IsAbs(cfg.TaskFile) {
		abs, err := filepath.Abs(cfg.TaskFile)
		if err != nil {
			return fmt.Errorf("resolving task_file: %w", err)
		}
		cfg.TaskFile = abs
	}
	cfg.SnapshotSchema = expandPath(cfg.SnapshotSchema)
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.Calendar.CredentialsFile = expandPath(cfg.Calendar.CredentialsFile)
	cfg.Calendar.TokenFile = expandPath(cfg.Calendar.TokenFile)

	cfg.UI = strings.ToLower(strings.TrimSpace(cfg.UI))
	switch cfg.UI {
	case UIPlain, UITUI:
	default:
		return fmt.Errorf("invalid ui %q (want %s or %s)", cfg.UI, UIPlain, UITUI)
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	switch cfg.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log_format %q (want text, json or logfmt)", cfg.LogFormat)
	}

	if cfg.Calendar.Name == "" {
		cfg.Calendar.Name = DefaultCalendarName
	}
	if cfg.Calendar.SlotMinutes <= 0 {
		return fmt.Errorf("calendar.slot_minutes must be positive, got %d", cfg.Calendar.SlotMinutes)
	}
	if cfg.Calendar.Workers <= 0 {
		return fmt.Errorf("calendar.workers must be positive, got %d", cfg.Calendar.Workers)
	}
	return nil
}

// fileExists reports whether path names an existing regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
