package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Sam configuration file
# Values can be overridden by SAM_* environment variables or CLI flags

# Where tasks are stored, one per line (supports ~ and $VAR expansion)
task_file = "~/.sam/tasks.txt"

# Chat front end: plain (line REPL) or tui (full screen)
ui = "plain"

# Prompt shown before each command in plain mode
prompt = "> "

# JSON Schema used by "sam import" instead of the built-in one
# snapshot_schema = "~/.sam/snapshot.schema.json"

# Logging (written to stderr)
log_level = "warn"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
# log_file = "~/.sam/sam.log"

[calendar]
# Calendar summary as shown in Google Calendar, or "primary"
name = "primary"
credentials_file = "~/.sam/credentials.json"
token_file = "~/.sam/token.json"
# Minutes blocked in the calendar for a deadline
slot_minutes = 30
# Concurrent API requests during sync
workers = 4
`
}
