package statedir

import (
	"path/filepath"
	"testing"
)

func TestPaths(t *testing.T) {
	base := filepath.Join("home", "me", Dir)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"config", ConfigPath(base), filepath.Join(base, "taskdash.toml")},
		{"prefs file", PrefsPath(base, "file"), filepath.Join(base, "prefs.json")},
		{"prefs default", PrefsPath(base, ""), filepath.Join(base, "prefs.json")},
		{"prefs sqlite", PrefsPath(base, "sqlite"), filepath.Join(base, "prefs.db")},
		{"prefs memory", PrefsPath(base, "memory"), ""},
		{"logs", LogsPath(base), filepath.Join(base, "logs")},
		{"relative", PrefsPath(".", "file"), "prefs.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
