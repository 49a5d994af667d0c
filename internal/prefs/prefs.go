// Package prefs stores interface preferences as JSON values under string keys.
package prefs

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskdash/internal/statedir"
)

// Preference keys.
const (
	KeyTheme             = "theme"
	KeySidebarCollapsed  = "sidebarCollapsed"
	KeyViewMode          = "viewMode"
	KeyEnableAnimations  = "enableAnimations"
	KeyItemsPerPage      = "itemsPerPage"
	KeyIsDragDropEnabled = "isDragDropEnabled"
)

// Keys lists every preference key in display order.
func Keys() []string {
	return []string{
		KeyTheme,
		KeySidebarCollapsed,
		KeyViewMode,
		KeyEnableAnimations,
		KeyItemsPerPage,
		KeyIsDragDropEnabled,
	}
}

// Storage is a durable key-value store. Values are raw JSON.
type Storage interface {
	// Get returns the stored value. found is false when the key is absent.
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	Keys() ([]string, error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates the storage for backend inside the state directory dir.
func Open(backend, dir string) (Storage, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStorage(statedir.PrefsPath(dir, BackendFile))
	case BackendSQLite:
		return OpenSQLite(statedir.PrefsPath(dir, BackendSQLite))
	case BackendMemory:
		return NewMemoryStorage(), nil
	}
	return nil, fmt.Errorf("unknown prefs backend %q (want file, sqlite or memory)", backend)
}

// Read decodes the value stored under key. A missing key yields def; read or
// decode failures are logged and also yield def.
func Read[T any](s Storage, key string, def T, logger *log.Logger) T {
	data, found, err := s.Get(key)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to read preference", "key", key, "err", err)
		}
		return def
	}
	if !found {
		return def
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		if logger != nil {
			logger.Warn("failed to parse preference", "key", key, "err", err)
		}
		return def
	}
	return v
}

// Write encodes v and stores it under key. Failures are logged, not returned.
func Write(s Storage, key string, v any, logger *log.Logger) {
	data, err := json.Marshal(v)
	if err == nil {
		err = s.Set(key, data)
	}
	if err != nil && logger != nil {
		logger.Warn("failed to write preference", "key", key, "err", err)
	}
}
