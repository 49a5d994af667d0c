package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	loadFromEnvHelper(cfg, nil, nil)
}

// loadFromEnvHelper is the shared implementation for env loading. Values
// from the real environment win over values from dotenv. If sources is
// non-nil, it tracks the source of each value.
func loadFromEnvHelper(cfg *Config, sources map[string]ConfigSource, dotenv map[string]string) {
	lookup := func(key, field string) (string, bool) {
		v, source := os.Getenv(key), SourceEnv
		if v == "" {
			v, source = dotenv[key], SourceDotEnv
		}
		if v == "" {
			return "", false
		}
		if sources != nil {
			sources[field] = source
		}
		return v, true
	}

	if v, ok := lookup("TASKDASH_SEED", "seed_file"); ok {
		cfg.SeedFile = v
	}
	if v, ok := lookup("TASKDASH_SCHEMA", "schema_file"); ok {
		cfg.SchemaFile = v
	}
	if v, ok := lookup("TASKDASH_STATE_DIR", "state_dir"); ok {
		cfg.StateDir = v
	}
	if v, ok := lookup("TASKDASH_PREFS_BACKEND", "prefs_backend"); ok {
		cfg.PrefsBackend = v
	}
	if v, ok := lookup("TASKDASH_LATENCY_SCALE", "latency_scale"); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.LatencyScale = f
		}
	}
	if v, ok := lookup("TASKDASH_NOTIFICATION_TIMEOUT_MS", "notification_timeout_ms"); ok {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.NotificationTimeoutMs = i
		}
	}

	// Logging configuration
	if v, ok := lookup("TASKDASH_LOG_DIR", "log_dir"); ok {
		cfg.LogDir = v
	}
	if v, ok := lookup("TASKDASH_LOG_LEVEL", "log_level"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("TASKDASH_LOG_FORMAT", "log_format"); ok {
		cfg.LogFormat = v
	}
	if v, ok := lookup("TASKDASH_LOG_TIMESTAMPS", "log_timestamps"); ok {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v, ok := lookup("TASKDASH_LOG_CALLER", "log_caller"); ok {
		cfg.LogCaller = boolFromString(v)
	}
}

// boolFromString parses an env flag. Besides strconv forms it accepts
// yes/on; anything unrecognised is false.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
