// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.taskdash/taskdash.toml or OS-specific config directory)
// 3. Project config file (taskdash.toml or .taskdash.toml in the working directory)
// 4. .env file in the working directory (never overrides the real environment)
// 5. Environment variables (TASKDASH_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.taskdash/taskdash.toml (preferred)
// - Windows: %APPDATA%\taskdash\taskdash.toml
// - macOS: ~/Library/Application Support/taskdash/taskdash.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskdash/taskdash.toml or ~/.config/taskdash/taskdash.toml
//
// Project-level config locations (overrides user config):
// - ./taskdash.toml (preferred)
// - ./.taskdash.toml
package config
