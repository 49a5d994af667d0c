package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/taskdash/internal/api"
	"github.com/nibzard/taskdash/internal/prefs"
	"github.com/nibzard/taskdash/internal/store"
	"github.com/nibzard/taskdash/internal/todo"
	"github.com/nibzard/taskdash/internal/uistate"
)

func newTestModel(t *testing.T) (*Model, *api.Facade) {
	t.Helper()
	facade := api.New(todo.SeedTasks(), api.WithLatency(api.NoLatency()))
	s := store.New(facade)
	require.NoError(t, s.Load(context.Background()))

	state := uistate.New(prefs.NewMemoryStorage(), uistate.WithDarkDetector(func() bool { return true }))
	t.Cleanup(state.Close)

	m := New(context.Background(), s, state, WithResetter(facade))
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, facade
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers keys without running the returned commands.
func send(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(keyPress(k))
	}
}

// run delivers a key and feeds every backend result back into the model.
func run(m *Model, k string) tea.Msg {
	_, cmd := m.Update(keyPress(k))
	return drain(m, cmd)
}

func drain(m *Model, cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg.(type) {
	case loadedMsg, createdMsg, updatedMsg, deletedMsg, bulkUpdatedMsg, bulkDeletedMsg, actionRanMsg:
		_, next := m.Update(msg)
		drain(m, next)
	}
	return msg
}

func titles(ns []uistate.Notification) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Title
	}
	return out
}

func TestCreateTask(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, "ctrl+n")
	require.True(t, m.ui.Modals().CreateOpen)
	require.NotNil(t, m.form)

	run(m, "enter")
	assert.True(t, m.ui.Modals().CreateOpen, "invalid form must stay open")
	assert.Equal(t, "Title is required", m.form.errs["title"])

	send(m, "ab")
	run(m, "enter")
	assert.Equal(t, "Title must be at least 3 characters", m.form.errs["title"])

	send(m, "c docs", "tab", "Longer notes")
	run(m, "enter")

	assert.False(t, m.ui.Modals().AnyOpen())
	assert.Nil(t, m.form)
	tasks := m.store.Tasks()
	require.Len(t, tasks, 7)
	assert.Equal(t, "abc docs", tasks[0].Title)
	assert.Equal(t, "Longer notes", tasks[0].Description)
	assert.Equal(t, todo.StatusPending, tasks[0].Status)
	assert.Contains(t, titles(m.ui.Notifications()), "Task created")
	assert.False(t, m.Loading())
}

func TestEditTask(t *testing.T) {
	m, _ := newTestModel(t)

	// Newest first: task-006 has focus.
	send(m, "e")
	modals := m.ui.Modals()
	require.True(t, modals.EditOpen)
	require.Equal(t, "task-006", modals.EditTask.ID)
	assert.Equal(t, "Review keyboard shortcuts", m.form.title.Value())

	send(m, "ctrl+t")
	run(m, "enter")

	assert.False(t, m.ui.Modals().EditOpen)
	res := m.store.Tasks()
	task := res[todo.IndexOf(res, "task-006")]
	assert.Equal(t, todo.StatusCompleted.Next(), task.Status)
	assert.Contains(t, titles(m.ui.Notifications()), "Task updated")
}

func TestEditWithoutChanges(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.store.Tasks()

	send(m, "e")
	msg := run(m, "enter")

	assert.Nil(t, msg)
	assert.Equal(t, before, m.store.Tasks())
	assert.Contains(t, titles(m.ui.Notifications()), "No changes to save")
}

func TestFormEscapeCancels(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, "ctrl+n", "Draft", "esc")
	assert.False(t, m.ui.Modals().AnyOpen())
	assert.Nil(t, m.form)
	assert.Len(t, m.store.Tasks(), 6)
}

func TestDeleteConfirmAndUndo(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, "d")
	require.True(t, m.ui.Modals().DeleteOpen)
	send(m, "n")
	assert.False(t, m.ui.Modals().DeleteOpen)
	assert.Len(t, m.store.Tasks(), 6)

	send(m, "d")
	run(m, "y")
	assert.False(t, m.ui.Modals().DeleteOpen)
	require.Len(t, m.store.Tasks(), 5)
	assert.Equal(t, -1, todo.IndexOf(m.store.Tasks(), "task-006"))

	n, ok := newestWithAction(m.ui.Notifications())
	require.True(t, ok)
	assert.Equal(t, "Task deleted", n.Title)
	assert.Equal(t, "Undo", n.Action.Label)

	msg := run(m, "o")
	assert.Equal(t, actionRanMsg{ok: true}, msg)
	tasks := m.store.Tasks()
	require.Len(t, tasks, 6)
	assert.Equal(t, "Review keyboard shortcuts", tasks[0].Title)
	assert.Equal(t, todo.StatusCompleted, tasks[0].Status)
	assert.Contains(t, titles(m.ui.Notifications()), "Task restored")
}

func TestSpaceCyclesStatus(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, "l")
	focused, ok := m.focused(m.store.Visible())
	require.True(t, ok)
	require.Equal(t, "task-005", focused.ID)

	run(m, "space")
	tasks := m.store.Tasks()
	assert.Equal(t, todo.StatusInProgress.Next(), tasks[todo.IndexOf(tasks, "task-005")].Status)
}

func TestFilterAndSortKeys(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, "1")
	assert.Equal(t, []string{"task-004", "task-003"}, taskIDs(m.store.Visible()))
	send(m, "3")
	assert.Len(t, m.store.Visible(), 2)
	send(m, "0")
	assert.Len(t, m.store.Visible(), 6)

	send(m, "s")
	assert.Equal(t, todo.SortUpdatedAt, m.store.Snapshot().SortField)
	send(m, "S")
	assert.Equal(t, todo.Asc, m.store.Snapshot().SortDirection)

	send(m, "R")
	st := m.store.Snapshot()
	assert.Equal(t, store.DefaultSortField, st.SortField)
	assert.Equal(t, store.DefaultSortDirection, st.SortDirection)
	assert.Equal(t, 0, m.cursor)
}

func TestSearch(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, "/")
	require.True(t, m.searching)
	send(m, "theme")
	send(m, "enter")

	assert.False(t, m.searching)
	assert.Equal(t, "theme", m.store.Snapshot().SearchQuery)
	assert.Equal(t, []string{"task-005"}, taskIDs(m.store.Visible()))

	send(m, "R")
	assert.Equal(t, "", m.search.Value())
	assert.Len(t, m.store.Visible(), 6)
}

func TestBulkComplete(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, "v")
	require.True(t, m.ui.SelectMode())
	send(m, "space")
	assert.Equal(t, []string{"task-006"}, m.ui.SelectedIDs())

	send(m, "a")
	assert.Len(t, m.ui.SelectedIDs(), 6)

	run(m, "C")
	assert.Equal(t, 6, m.store.Stats().Completed)
	assert.Empty(t, m.ui.SelectedIDs())
	assert.Contains(t, titles(m.ui.Notifications()), "6 tasks completed")
}

func TestBulkDelete(t *testing.T) {
	m, _ := newTestModel(t)

	run(m, "X")
	assert.Contains(t, titles(m.ui.Notifications()), "No tasks selected")
	assert.Len(t, m.store.Tasks(), 6)

	send(m, "1", "a")
	run(m, "X")
	assert.Len(t, m.store.Tasks(), 4)
	assert.Contains(t, titles(m.ui.Notifications()), "2 tasks deleted")
}

func TestMoveSwitchesToManualOrder(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, "K")
	assert.Equal(t, todo.SortManual, m.store.Snapshot().SortField)
	assert.Equal(t,
		[]string{"task-001", "task-002", "task-003", "task-004", "task-006", "task-005"},
		taskIDs(m.store.Tasks()))
	focused, ok := m.focused(m.store.Visible())
	require.True(t, ok)
	assert.Equal(t, "task-006", focused.ID)

	send(m, "D", "K")
	assert.False(t, m.ui.DragDropEnabled())
	assert.Contains(t, titles(m.ui.Notifications()), "Reordering is disabled")
	assert.Equal(t, "task-006", m.store.Tasks()[4].ID)
}

func TestPagination(t *testing.T) {
	m, _ := newTestModel(t)
	m.ui.SetItemsPerPage(4)

	send(m, "]")
	assert.Equal(t, 4, m.cursor)
	send(m, "]")
	assert.Equal(t, 4, m.cursor)
	assert.Contains(t, m.View(), "page 2/2")
	send(m, "[")
	assert.Equal(t, 0, m.cursor)
}

func TestPreferenceKeys(t *testing.T) {
	m, _ := newTestModel(t)

	send(m, "t")
	assert.Equal(t, uistate.ThemeLight, m.ui.Theme())
	m.View()
	assert.Equal(t, uistate.ThemeLight, m.styles.theme)

	send(m, "g")
	assert.Equal(t, uistate.ViewList, m.ui.ViewMode())
	send(m, "A")
	assert.False(t, m.ui.AnimationsEnabled())
	send(m, "b")
	assert.True(t, m.ui.SidebarCollapsed())
}

func TestEscapeClearsError(t *testing.T) {
	m, _ := newTestModel(t)

	m.store.Remove(context.Background(), "bogus")
	require.Equal(t, "Task not found", m.store.Error())
	assert.Contains(t, m.View(), "Task not found")

	send(m, "esc")
	assert.Empty(t, m.store.Error())
}

func TestResetDemoData(t *testing.T) {
	m, facade := newTestModel(t)

	_, err := facade.Delete(context.Background(), "task-001")
	require.NoError(t, err)
	run(m, "r")
	require.Len(t, m.store.Tasks(), 5)

	run(m, "ctrl+r")
	assert.Len(t, m.store.Tasks(), 6)
	assert.Contains(t, titles(m.ui.Notifications()), "Demo data restored")
}

func TestDismissNotification(t *testing.T) {
	m, _ := newTestModel(t)

	m.ui.NotifyInfo("first")
	m.ui.NotifyInfo("second")
	send(m, "x")
	assert.Equal(t, []string{"first"}, titles(m.ui.Notifications()))
}

func TestViewModes(t *testing.T) {
	m, _ := newTestModel(t)

	grid := m.View()
	assert.Contains(t, grid, "Task Dashboard")
	assert.Contains(t, grid, "Review keyboard")
	assert.Contains(t, grid, "Overview")

	send(m, "g", "b")
	list := m.View()
	assert.Contains(t, list, "Review keyboard shortcuts")
	assert.NotContains(t, list, "Overview")

	assert.NotContains(t, list, "sort direction")
	send(m, "?")
	assert.Contains(t, m.View(), "sort direction")
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestWrapAndTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))

	assert.Nil(t, wrap("", 10, 2))
	assert.Equal(t, []string{"one two"}, wrap("one two", 10, 2))
	lines := wrap("one two three four five six", 10, 2)
	require.Len(t, lines, 2)
	assert.Equal(t, "one two", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "..."))
}

func TestNextSortField(t *testing.T) {
	fields := todo.SortFields()
	f := fields[0]
	for range fields {
		f = nextSortField(f)
	}
	assert.Equal(t, fields[0], f)
	assert.Equal(t, fields[0], nextSortField("bogus"))
}
