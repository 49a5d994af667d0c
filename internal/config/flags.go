package config

import "flag"

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	return parseFlagsHelper(cfg, fs, args, nil)
}

// parseFlagsHelper is the shared implementation for flag parsing. Flags are
// bound to temporaries and copied onto cfg only when set on the command
// line. If sources is non-nil, it tracks the source of each value.
func parseFlagsHelper(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskdash", flag.ContinueOnError)
	}

	// Data and state
	seedFile := fs.String("seed", cfg.SeedFile, "Task file replacing the built-in sample tasks")
	schemaFile := fs.String("schema", cfg.SchemaFile, "JSON schema for the seed file (embedded if empty)")
	stateDir := fs.String("state-dir", cfg.StateDir, "State directory for preferences")
	prefsBackend := fs.String("prefs-backend", cfg.PrefsBackend, "Preference storage (file, sqlite, memory)")

	// Simulated backend and notifications
	latencyScale := fs.Float64("latency-scale", cfg.LatencyScale, "Multiplier for simulated backend latency (0 disables)")
	notifyTimeout := fs.Int("notify-timeout", cfg.NotificationTimeoutMs, "Notification auto-dismiss in milliseconds (0 keeps them)")

	// Logging
	logDir := fs.String("log-dir", cfg.LogDir, "Log directory")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	logTimestamps := fs.Bool("log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	logCaller := fs.Bool("log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names and the assignment to apply
	apply := map[string]struct {
		field string
		set   func()
	}{
		"seed":           {"seed_file", func() { cfg.SeedFile = *seedFile }},
		"schema":         {"schema_file", func() { cfg.SchemaFile = *schemaFile }},
		"state-dir":      {"state_dir", func() { cfg.StateDir = *stateDir }},
		"prefs-backend":  {"prefs_backend", func() { cfg.PrefsBackend = *prefsBackend }},
		"latency-scale":  {"latency_scale", func() { cfg.LatencyScale = *latencyScale }},
		"notify-timeout": {"notification_timeout_ms", func() { cfg.NotificationTimeoutMs = *notifyTimeout }},
		"log-dir":        {"log_dir", func() { cfg.LogDir = *logDir }},
		"log-level":      {"log_level", func() { cfg.LogLevel = *logLevel }},
		"log-format":     {"log_format", func() { cfg.LogFormat = *logFormat }},
		"log-timestamps": {"log_timestamps", func() { cfg.LogTimestamps = *logTimestamps }},
		"log-caller":     {"log_caller", func() { cfg.LogCaller = *logCaller }},
	}

	fs.Visit(func(f *flag.Flag) {
		a, ok := apply[f.Name]
		if !ok {
			return
		}
		a.set()
		if sources != nil {
			sources[a.field] = SourceFlag
		}
	})

	return nil
}
