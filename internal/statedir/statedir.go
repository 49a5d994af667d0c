// Package statedir provides constants and utilities for the taskdash state
// directory layout.
package statedir

import "path/filepath"

const (
	// Dir is the name of the state directory inside the home directory.
	Dir = ".taskdash"

	// ConfigFile is the user config file name (inside the state directory).
	ConfigFile = "taskdash.toml"

	// PrefsFile is the JSON preference file name.
	PrefsFile = "prefs.json"

	// PrefsDB is the SQLite preference database name.
	PrefsDB = "prefs.db"

	// LogsDir is the default log directory name.
	LogsDir = "logs"
)

// ConfigPath returns the user config file path within a state directory.
func ConfigPath(stateDir string) string {
	return joinPath(stateDir, ConfigFile)
}

// PrefsPath returns the preference storage path for a backend within a
// state directory. The memory backend has no path.
func PrefsPath(stateDir, backend string) string {
	switch backend {
	case "sqlite":
		return joinPath(stateDir, PrefsDB)
	case "memory":
		return ""
	default:
		return joinPath(stateDir, PrefsFile)
	}
}

// LogsPath returns the default log directory within a state directory.
func LogsPath(stateDir string) string {
	return joinPath(stateDir, LogsDir)
}

func joinPath(stateDir, file string) string {
	if stateDir == "" || stateDir == "." {
		return file
	}
	return filepath.Join(stateDir, file)
}
