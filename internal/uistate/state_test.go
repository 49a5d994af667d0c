package uistate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/taskdash/internal/prefs"
	"github.com/nibzard/taskdash/internal/todo"
)

func newTestState(t *testing.T, storage prefs.Storage, opts ...Option) *State {
	t.Helper()
	if storage == nil {
		storage = prefs.NewMemoryStorage()
	}
	opts = append([]Option{WithDarkDetector(func() bool { return true })}, opts...)
	s := New(storage, opts...)
	t.Cleanup(s.Close)
	return s
}

func TestDefaults(t *testing.T) {
	s := newTestState(t, nil)

	assert.Equal(t, ThemeSystem, s.Theme())
	assert.Equal(t, ViewGrid, s.ViewMode())
	assert.True(t, s.AnimationsEnabled())
	assert.True(t, s.DragDropEnabled())
	assert.Equal(t, 12, s.ItemsPerPage())
	assert.False(t, s.SidebarCollapsed())
	assert.False(t, s.Modals().AnyOpen())
	assert.False(t, s.SelectMode())
	assert.Empty(t, s.Notifications())
}

func TestPreferencesPersist(t *testing.T) {
	storage := prefs.NewMemoryStorage()
	s := newTestState(t, storage)

	s.SetTheme(ThemeDark)
	s.ToggleViewMode()
	s.ToggleAnimations()
	s.ToggleDragDrop()
	s.SetItemsPerPage(24)
	s.ToggleSidebar()

	reloaded := newTestState(t, storage)
	assert.Equal(t, ThemeDark, reloaded.Theme())
	assert.Equal(t, ViewList, reloaded.ViewMode())
	assert.False(t, reloaded.AnimationsEnabled())
	assert.False(t, reloaded.DragDropEnabled())
	assert.Equal(t, 24, reloaded.ItemsPerPage())
	assert.True(t, reloaded.SidebarCollapsed())

	raw, found, err := storage.Get(prefs.KeyTheme)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `"dark"`, string(raw))
}

func TestInvalidPreferencesFallBack(t *testing.T) {
	storage := prefs.NewMemoryStorage()
	require.NoError(t, storage.Set(prefs.KeyTheme, []byte(`"sepia"`)))
	require.NoError(t, storage.Set(prefs.KeyViewMode, []byte(`{}`)))
	require.NoError(t, storage.Set(prefs.KeyItemsPerPage, []byte(`-3`)))
	require.NoError(t, storage.Set(prefs.KeyEnableAnimations, []byte(`nope`)))

	s := newTestState(t, storage)
	assert.Equal(t, ThemeSystem, s.Theme())
	assert.Equal(t, ViewGrid, s.ViewMode())
	assert.Equal(t, 12, s.ItemsPerPage())
	assert.True(t, s.AnimationsEnabled())
}

func TestToggleThemeCycles(t *testing.T) {
	s := newTestState(t, nil)
	s.SetTheme(ThemeLight)

	assert.Equal(t, ThemeDark, s.ToggleTheme())
	assert.Equal(t, ThemeSystem, s.ToggleTheme())
	assert.Equal(t, ThemeLight, s.ToggleTheme())
}

func TestResolvedTheme(t *testing.T) {
	dark := true
	s := newTestState(t, nil, WithDarkDetector(func() bool { return dark }))

	s.SetTheme(ThemeSystem)
	assert.Equal(t, ThemeDark, s.ResolvedTheme())

	dark = false
	assert.Equal(t, ThemeLight, s.ResolvedTheme(), "system theme resolves at read time")

	s.SetTheme(ThemeDark)
	assert.Equal(t, ThemeDark, s.ResolvedTheme())
}

func TestSetItemsPerPageClamps(t *testing.T) {
	s := newTestState(t, nil)

	s.SetItemsPerPage(0)
	assert.Equal(t, 1, s.ItemsPerPage())
	s.SetItemsPerPage(1000)
	assert.Equal(t, MaxItemsPerPage, s.ItemsPerPage())
}

func TestModals(t *testing.T) {
	s := newTestState(t, nil)
	task := todo.Task{ID: "task-001", Title: "First"}

	s.OpenCreateModal()
	assert.True(t, s.Modals().CreateOpen)
	s.CloseCreateModal()
	assert.False(t, s.Modals().CreateOpen)

	s.OpenEditModal(task)
	m := s.Modals()
	require.True(t, m.EditOpen)
	require.NotNil(t, m.EditTask)
	assert.Equal(t, "task-001", m.EditTask.ID)

	s.CloseEditModal()
	m = s.Modals()
	assert.False(t, m.EditOpen)
	assert.Nil(t, m.EditTask)

	s.OpenDeleteModal(task)
	assert.Equal(t, "task-001", s.Modals().DeleteTask.ID)
	s.CloseDeleteModal()
	assert.Nil(t, s.Modals().DeleteTask)
}

func TestCloseAllModals(t *testing.T) {
	s := newTestState(t, nil)
	s.OpenCreateModal()
	s.OpenEditModal(todo.Task{ID: "a"})
	s.OpenDeleteModal(todo.Task{ID: "b"})

	s.CloseAllModals()
	assert.Equal(t, Modals{}, s.Modals())
}

func TestModalsSnapshotIsIsolated(t *testing.T) {
	s := newTestState(t, nil)
	s.OpenEditModal(todo.Task{ID: "a", Title: "Original"})

	m := s.Modals()
	m.EditTask.Title = "changed"
	assert.Equal(t, "Original", s.Modals().EditTask.Title)
}

func TestSelection(t *testing.T) {
	s := newTestState(t, nil)

	assert.True(t, s.ToggleSelectMode())
	s.SelectTask("b")
	s.SelectTask("a")
	s.SelectTask("c")
	s.SelectTask("c")
	assert.Equal(t, []string{"a", "b"}, s.SelectedIDs())
	assert.True(t, s.IsSelected("a"))
	assert.False(t, s.IsSelected("c"))

	s.SelectAllTasks([]string{"x", "y"})
	assert.Equal(t, []string{"x", "y"}, s.SelectedIDs())

	s.ClearSelection()
	assert.Empty(t, s.SelectedIDs())

	s.SelectTask("z")
	assert.False(t, s.ToggleSelectMode())
	assert.Empty(t, s.SelectedIDs(), "leaving select mode clears the selection")
}

func TestChangesSignal(t *testing.T) {
	s := newTestState(t, nil)

	s.OpenCreateModal()
	s.CloseCreateModal()

	select {
	case <-s.Changes():
	default:
		t.Fatal("expected a change signal")
	}
	select {
	case <-s.Changes():
		t.Fatal("signals should be coalesced")
	default:
	}
}
