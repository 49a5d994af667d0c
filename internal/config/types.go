package config

import (
	"fmt"
	"time"

	"github.com/nibzard/taskdash/internal/statedir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceDotEnv   ConfigSource = ".env file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultStateDir            = "~/" + statedir.Dir
	DefaultLogDir              = DefaultStateDir + "/" + statedir.LogsDir
	DefaultPrefsBackend        = "file"
	DefaultLatencyScale        = 1.0
	DefaultNotificationTimeout = 5000
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
)

// Config holds the full configuration for taskdash.
type Config struct {
	// Data
	SeedFile   string `toml:"seed_file"`   // Task file replacing the built-in sample tasks
	SchemaFile string `toml:"schema_file"` // Schema used to validate SeedFile (embedded if empty)

	// Local state
	StateDir     string `toml:"state_dir"`
	PrefsBackend string `toml:"prefs_backend"` // file, sqlite or memory

	// Simulated backend
	LatencyScale float64 `toml:"latency_scale"` // 0 disables simulated latency

	// Notifications
	NotificationTimeoutMs int `toml:"notification_timeout_ms"` // 0 keeps toasts until dismissed

	// Logging configuration
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// NotificationTimeout returns the default toast duration.
func (c *Config) NotificationTimeout() time.Duration {
	if c.NotificationTimeoutMs <= 0 {
		return 0
	}
	return time.Duration(c.NotificationTimeoutMs) * time.Millisecond
}

// Validate checks enumerated and numeric settings.
func (c *Config) Validate() error {
	switch c.PrefsBackend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("prefs_backend %q: expected file, sqlite or memory", c.PrefsBackend)
	}
	switch c.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("log_format %q: expected text, json or logfmt", c.LogFormat)
	}
	if c.LatencyScale < 0 {
		return fmt.Errorf("latency_scale %v: must not be negative", c.LatencyScale)
	}
	if c.NotificationTimeoutMs < 0 {
		return fmt.Errorf("notification_timeout_ms %d: must not be negative", c.NotificationTimeoutMs)
	}
	return nil
}
