// Package uistate holds transient interface state: open modals, theme and
// layout preferences, the bulk selection and the notification queue.
// Preferences are written through to a prefs.Storage on every change.
package uistate

import (
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/taskdash/internal/prefs"
	"github.com/nibzard/taskdash/internal/todo"
)

// Theme is the color scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Next returns the theme after t in the light -> dark -> system cycle.
func (t Theme) Next() Theme {
	switch t {
	case ThemeLight:
		return ThemeDark
	case ThemeDark:
		return ThemeSystem
	default:
		return ThemeLight
	}
}

func (t Theme) valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// ViewMode is the task layout.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

func (v ViewMode) valid() bool {
	return v == ViewGrid || v == ViewList
}

// Preference defaults.
const (
	DefaultTheme          = ThemeSystem
	DefaultViewMode       = ViewGrid
	DefaultAnimations     = true
	DefaultDragDrop       = true
	DefaultItemsPerPage   = 12
	DefaultSidebar        = false
	DefaultNotifyDuration = 5 * time.Second
	MaxItemsPerPage       = 100
)

// Modals is a snapshot of modal visibility and the tasks bound to them.
type Modals struct {
	CreateOpen bool
	EditOpen   bool
	DeleteOpen bool
	EditTask   *todo.Task
	DeleteTask *todo.Task
}

// AnyOpen reports whether at least one modal is open.
func (m Modals) AnyOpen() bool {
	return m.CreateOpen || m.EditOpen || m.DeleteOpen
}

// State is the UI state store. It is safe for concurrent use.
type State struct {
	storage         prefs.Storage
	logger          *log.Logger
	isDark          func() bool
	defaultDuration time.Duration
	now             func() time.Time
	newID           func() string

	mu      sync.Mutex
	modals  Modals
	theme   Theme
	view    ViewMode
	anim    bool
	drag    bool
	perPage int
	sidebar bool

	selectMode bool
	selected   map[string]struct{}

	notifications []Notification
	timers        map[string]*time.Timer

	changes chan struct{}
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDarkDetector sets the function used to resolve ThemeSystem.
func WithDarkDetector(isDark func() bool) Option {
	return func(s *State) {
		if isDark != nil {
			s.isDark = isDark
		}
	}
}

// WithDefaultDuration sets the auto-dismiss duration applied to
// notifications that do not specify one. Zero makes them persistent.
func WithDefaultDuration(d time.Duration) Option {
	return func(s *State) {
		if d >= 0 {
			s.defaultDuration = d
		}
	}
}

// New creates a State and loads preferences from storage. A nil storage
// keeps preferences in memory.
func New(storage prefs.Storage, opts ...Option) *State {
	if storage == nil {
		storage = prefs.NewMemoryStorage()
	}
	s := &State{
		storage:         storage,
		logger:          log.New(io.Discard),
		isDark:          lipgloss.HasDarkBackground,
		defaultDuration: DefaultNotifyDuration,
		now:             time.Now,
		newID:           uuid.NewString,
		selected:        make(map[string]struct{}),
		timers:          make(map[string]*time.Timer),
		changes:         make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.loadPrefs()
	return s
}

func (s *State) loadPrefs() {
	s.theme = prefs.Read(s.storage, prefs.KeyTheme, DefaultTheme, s.logger)
	if !s.theme.valid() {
		s.logger.Warn("ignoring unknown theme preference", "theme", s.theme)
		s.theme = DefaultTheme
	}
	s.view = prefs.Read(s.storage, prefs.KeyViewMode, DefaultViewMode, s.logger)
	if !s.view.valid() {
		s.logger.Warn("ignoring unknown view mode preference", "viewMode", s.view)
		s.view = DefaultViewMode
	}
	s.anim = prefs.Read(s.storage, prefs.KeyEnableAnimations, DefaultAnimations, s.logger)
	s.drag = prefs.Read(s.storage, prefs.KeyIsDragDropEnabled, DefaultDragDrop, s.logger)
	s.perPage = prefs.Read(s.storage, prefs.KeyItemsPerPage, DefaultItemsPerPage, s.logger)
	if s.perPage < 1 || s.perPage > MaxItemsPerPage {
		s.logger.Warn("ignoring out of range items per page", "itemsPerPage", s.perPage)
		s.perPage = DefaultItemsPerPage
	}
	s.sidebar = prefs.Read(s.storage, prefs.KeySidebarCollapsed, DefaultSidebar, s.logger)
}

// Changes delivers a signal after state changes. Signals are coalesced:
// several changes between two receives produce one signal.
func (s *State) Changes() <-chan struct{} {
	return s.changes
}

func (s *State) changed() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Close stops every pending notification timer.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimersLocked()
}

// Modals

// Modals returns a snapshot of modal state.
func (s *State) Modals() Modals {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.modals
	if m.EditTask != nil {
		t := *m.EditTask
		m.EditTask = &t
	}
	if m.DeleteTask != nil {
		t := *m.DeleteTask
		m.DeleteTask = &t
	}
	return m
}

func (s *State) OpenCreateModal() {
	s.update(func() { s.modals.CreateOpen = true })
}

func (s *State) CloseCreateModal() {
	s.update(func() { s.modals.CreateOpen = false })
}

// OpenEditModal opens the edit modal bound to task.
func (s *State) OpenEditModal(task todo.Task) {
	s.update(func() {
		s.modals.EditOpen = true
		s.modals.EditTask = &task
	})
}

func (s *State) CloseEditModal() {
	s.update(func() {
		s.modals.EditOpen = false
		s.modals.EditTask = nil
	})
}

// OpenDeleteModal opens the delete confirmation bound to task.
func (s *State) OpenDeleteModal(task todo.Task) {
	s.update(func() {
		s.modals.DeleteOpen = true
		s.modals.DeleteTask = &task
	})
}

func (s *State) CloseDeleteModal() {
	s.update(func() {
		s.modals.DeleteOpen = false
		s.modals.DeleteTask = nil
	})
}

// CloseAllModals closes every modal and clears both bound tasks.
func (s *State) CloseAllModals() {
	s.update(func() { s.modals = Modals{} })
}

// Theme and layout preferences

// Theme returns the theme preference, which may be ThemeSystem.
func (s *State) Theme() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// ResolvedTheme returns ThemeLight or ThemeDark. ThemeSystem is resolved
// against the terminal background on every call.
func (s *State) ResolvedTheme() Theme {
	theme := s.Theme()
	if theme != ThemeSystem {
		return theme
	}
	if s.isDark() {
		return ThemeDark
	}
	return ThemeLight
}

// SetTheme sets and persists the theme. Unknown values are ignored.
func (s *State) SetTheme(t Theme) {
	if !t.valid() {
		return
	}
	s.update(func() { s.theme = t })
	prefs.Write(s.storage, prefs.KeyTheme, t, s.logger)
}

// ToggleTheme advances the theme through light, dark and system.
func (s *State) ToggleTheme() Theme {
	next := s.Theme().Next()
	s.SetTheme(next)
	return next
}

func (s *State) ViewMode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// SetViewMode sets and persists the layout. Unknown values are ignored.
func (s *State) SetViewMode(v ViewMode) {
	if !v.valid() {
		return
	}
	s.update(func() { s.view = v })
	prefs.Write(s.storage, prefs.KeyViewMode, v, s.logger)
}

// ToggleViewMode switches between grid and list.
func (s *State) ToggleViewMode() ViewMode {
	next := ViewList
	if s.ViewMode() == ViewList {
		next = ViewGrid
	}
	s.SetViewMode(next)
	return next
}

func (s *State) AnimationsEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anim
}

func (s *State) ToggleAnimations() bool {
	var v bool
	s.update(func() {
		s.anim = !s.anim
		v = s.anim
	})
	prefs.Write(s.storage, prefs.KeyEnableAnimations, v, s.logger)
	return v
}

func (s *State) DragDropEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drag
}

func (s *State) ToggleDragDrop() bool {
	var v bool
	s.update(func() {
		s.drag = !s.drag
		v = s.drag
	})
	prefs.Write(s.storage, prefs.KeyIsDragDropEnabled, v, s.logger)
	return v
}

func (s *State) ItemsPerPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.perPage
}

// SetItemsPerPage sets and persists the page size, clamped to
// [1, MaxItemsPerPage].
func (s *State) SetItemsPerPage(n int) {
	n = min(max(n, 1), MaxItemsPerPage)
	s.update(func() { s.perPage = n })
	prefs.Write(s.storage, prefs.KeyItemsPerPage, n, s.logger)
}

func (s *State) SidebarCollapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebar
}

func (s *State) ToggleSidebar() bool {
	var v bool
	s.update(func() {
		s.sidebar = !s.sidebar
		v = s.sidebar
	})
	prefs.Write(s.storage, prefs.KeySidebarCollapsed, v, s.logger)
	return v
}

// Selection

func (s *State) SelectMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectMode
}

// ToggleSelectMode turns selection mode on or off. Turning it off clears the
// selection.
func (s *State) ToggleSelectMode() bool {
	var on bool
	s.update(func() {
		s.selectMode = !s.selectMode
		if !s.selectMode {
			clear(s.selected)
		}
		on = s.selectMode
	})
	return on
}

// SelectTask toggles id in the selection.
func (s *State) SelectTask(id string) {
	s.update(func() {
		if _, ok := s.selected[id]; ok {
			delete(s.selected, id)
			return
		}
		s.selected[id] = struct{}{}
	})
}

// SelectAllTasks replaces the selection with ids.
func (s *State) SelectAllTasks(ids []string) {
	s.update(func() {
		s.selected = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			s.selected[id] = struct{}{}
		}
	})
}

func (s *State) ClearSelection() {
	s.update(func() { clear(s.selected) })
}

func (s *State) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

// SelectedIDs returns the selected ids in sorted order.
func (s *State) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// update runs fn under the lock and then signals a change.
func (s *State) update(fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	s.changed()
}
