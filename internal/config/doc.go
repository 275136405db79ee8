// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.sam/sam.toml or OS-specific config directory)
// 3. Project config file (sam.toml or .sam.toml in the working directory)
// 4. Environment variables (SAM_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.sam/sam.toml (preferred)
// - Windows: %APPDATA%\sam\sam.toml
// - macOS: ~/Library/Application Support/sam/sam.toml
// - Linux/BSD: $XDG_CONFIG_HOME/sam/sam.toml or ~/.config/sam/sam.toml
//
// Project-level config locations (overrides user config):
// - ./sam.toml (preferred)
// - ./.sam.toml
package config
