package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskdash/internal/config"
	"github.com/nibzard/taskdash/internal/prefs"
	"github.com/nibzard/taskdash/internal/uistate"
)

// prefsCommand shows the stored preferences or changes one of them.
func prefsCommand(cfg *config.Config, logger *log.Logger, args []string, w io.Writer) error {
	fs := newFlagSet("prefs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	storage, err := prefs.Open(cfg.PrefsBackend, cfg.StateDir)
	if err != nil {
		return fmt.Errorf("opening preferences: %w", err)
	}
	defer storage.Close()

	state := uistate.New(storage, uistate.WithLogger(logger))
	defer state.Close()

	rest := fs.Args()
	if len(rest) == 0 {
		return showPrefs(w, storage, state)
	}
	if rest[0] != "set" {
		return fmt.Errorf("unknown prefs action: %s (expected set)", rest[0])
	}
	if len(rest) != 3 {
		return fmt.Errorf("usage: taskdash prefs set <key> <value>")
	}
	if err := setPref(storage, state, rest[1], rest[2]); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s = %s\n", rest[1], effectivePref(state, rest[1]))
	return nil
}

func showPrefs(w io.Writer, storage prefs.Storage, state *uistate.State) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("key", "stored", "effective")
	for _, key := range prefs.Keys() {
		raw, found, err := storage.Get(key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", key, err)
		}
		stored := "(unset)"
		if found {
			stored = string(raw)
		}
		t.Row(key, stored, effectivePref(state, key))
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

func effectivePref(state *uistate.State, key string) string {
	switch key {
	case prefs.KeyTheme:
		return string(state.Theme())
	case prefs.KeySidebarCollapsed:
		return strconv.FormatBool(state.SidebarCollapsed())
	case prefs.KeyViewMode:
		return string(state.ViewMode())
	case prefs.KeyEnableAnimations:
		return strconv.FormatBool(state.AnimationsEnabled())
	case prefs.KeyItemsPerPage:
		return strconv.Itoa(state.ItemsPerPage())
	case prefs.KeyIsDragDropEnabled:
		return strconv.FormatBool(state.DragDropEnabled())
	}
	return ""
}

// setPref applies value through the state setters so the stored value is
// always one the dashboard accepts.
func setPref(storage prefs.Storage, state *uistate.State, key, value string) error {
	switch key {
	case prefs.KeyTheme:
		theme := uistate.Theme(value)
		if theme != uistate.ThemeLight && theme != uistate.ThemeDark && theme != uistate.ThemeSystem {
			return fmt.Errorf("invalid theme %q (expected light|dark|system)", value)
		}
		state.SetTheme(theme)
	case prefs.KeyViewMode:
		mode := uistate.ViewMode(value)
		if mode != uistate.ViewGrid && mode != uistate.ViewList {
			return fmt.Errorf("invalid view mode %q (expected grid|list)", value)
		}
		state.SetViewMode(mode)
	case prefs.KeyItemsPerPage:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > uistate.MaxItemsPerPage {
			return fmt.Errorf("invalid items per page %q (expected 1-%d)", value, uistate.MaxItemsPerPage)
		}
		state.SetItemsPerPage(n)
	case prefs.KeySidebarCollapsed:
		return setBoolPref(storage, key, value, state.SidebarCollapsed, state.ToggleSidebar)
	case prefs.KeyEnableAnimations:
		return setBoolPref(storage, key, value, state.AnimationsEnabled, state.ToggleAnimations)
	case prefs.KeyIsDragDropEnabled:
		return setBoolPref(storage, key, value, state.DragDropEnabled, state.ToggleDragDrop)
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
	return nil
}

func setBoolPref(storage prefs.Storage, key, value string, get func() bool, toggle func() bool) error {
	want, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q (expected true|false)", key, value)
	}
	if get() != want {
		toggle()
		return nil
	}
	// Already in effect, possibly as a default: store it explicitly.
	prefs.Write(storage, key, want, nil)
	return nil
}
