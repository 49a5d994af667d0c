package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskdash configuration file
# Values can be overridden by .env, TASKDASH_* environment variables or CLI flags

# Task file replacing the built-in sample tasks (relative to the working directory)
# seed_file = "tasks.json"

# JSON schema used to validate seed_file (embedded schema if empty)
# schema_file = "tasks.schema.json"

# State directory holding interface preferences (supports ~ expansion)
state_dir = "~/.taskdash"

# Preference storage: file, sqlite or memory
prefs_backend = "file"

# Multiplier for simulated backend latency (0 disables latency)
latency_scale = 1.0

# Notification auto-dismiss in milliseconds (0 keeps notifications until dismissed)
notification_timeout_ms = 5000

# Logging
log_dir = "~/.taskdash/logs"
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
