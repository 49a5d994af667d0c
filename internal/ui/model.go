package ui

import (
	"context"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskdash/internal/store"
	"github.com/nibzard/taskdash/internal/todo"
	"github.com/nibzard/taskdash/internal/uistate"
)

// Resetter restores the backend's demo data. *api.Facade satisfies it.
type Resetter interface {
	Reset()
}

// Model is the dashboard's Bubble Tea model.
type Model struct {
	ctx    context.Context
	store  *store.TaskStore
	ui     *uistate.State
	reset  Resetter
	logger *log.Logger

	keys        keyMap
	formKeys    formKeyMap
	confirmKeys confirmKeyMap
	help        help.Model
	spin        spinner.Model
	search      textinput.Model
	searching   bool
	form        *taskForm
	styles      styles

	cursor   int
	width    int
	height   int
	pending  int
	showHelp bool
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithResetter enables ctrl+r to restore the demo data.
func WithResetter(r Resetter) Option {
	return func(m *Model) {
		m.reset = r
	}
}

// New creates the dashboard model. ctx bounds every backend call the model
// issues.
func New(ctx context.Context, s *store.TaskStore, state *uistate.State, opts ...Option) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	search := textinput.New()
	search.Placeholder = "search title or description"
	search.Prompt = "/ "
	search.CharLimit = 200
	search.Width = 32

	m := &Model{
		ctx:         ctx,
		store:       s,
		ui:          state,
		logger:      log.New(io.Discard),
		keys:        newKeyMap(),
		formKeys:    newFormKeyMap(),
		confirmKeys: newConfirmKeyMap(),
		help:        help.New(),
		spin:        sp,
		search:      search,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.search.SetValue(s.Snapshot().SearchQuery)
	m.styles = newStyles(state.ResolvedTheme())
	return m
}

func (m *Model) Init() tea.Cmd {
	m.pending++
	return tea.Batch(
		loadCmd(m.ctx, m.store),
		waitForChanges(m.ui.Changes()),
		m.spin.Tick,
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case uiChangedMsg:
		return m, waitForChanges(m.ui.Changes())

	case loadedMsg:
		m.done()
		switch {
		case msg.err != nil || m.store.Error() != "":
			m.ui.NotifyError("Failed to load tasks", uistate.WithMessage(m.store.Error()))
		case msg.reset:
			m.ui.NotifySuccess("Demo data restored")
		}
		m.clampCursor()
		return m, nil

	case createdMsg:
		m.done()
		if !msg.ok {
			m.ui.NotifyError("Failed to create task", uistate.WithMessage(m.store.Error()))
			return m, nil
		}
		m.ui.NotifySuccess("Task created", uistate.WithMessage(msg.task.Title))
		m.focusTask(msg.task.ID)
		return m, nil

	case updatedMsg:
		m.done()
		if !msg.ok {
			m.ui.NotifyError("Failed to update task", uistate.WithMessage(m.store.Error()))
			return m, nil
		}
		m.ui.NotifySuccess("Task updated", uistate.WithMessage(msg.task.Title))
		m.focusTask(msg.task.ID)
		return m, nil

	case deletedMsg:
		m.done()
		if !msg.ok {
			m.ui.NotifyError("Failed to delete task", uistate.WithMessage(m.store.Error()))
			return m, nil
		}
		m.ui.NotifySuccess("Task deleted",
			uistate.WithMessage(msg.task.Title),
			uistate.WithAction("Undo", m.restoreAction(msg.task)),
		)
		m.clampCursor()
		return m, nil

	case bulkUpdatedMsg:
		m.done()
		if !msg.ok {
			m.ui.NotifyError("Failed to update tasks", uistate.WithMessage(m.store.Error()))
			return m, nil
		}
		m.ui.ClearSelection()
		m.ui.NotifySuccess(pluralize(msg.n, "task") + " completed")
		return m, nil

	case bulkDeletedMsg:
		m.done()
		if !msg.ok {
			m.ui.NotifyError("Failed to delete tasks", uistate.WithMessage(m.store.Error()))
			return m, nil
		}
		m.ui.ClearSelection()
		m.ui.NotifySuccess(pluralize(msg.n, "task") + " deleted")
		m.clampCursor()
		return m, nil

	case actionRanMsg:
		if !msg.ok {
			m.ui.NotifyWarning("That action is no longer available")
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

// Loading reports whether any issued operation has not reported back yet.
func (m *Model) Loading() bool {
	return m.pending > 0 || m.store.Loading()
}

func (m *Model) done() {
	if m.pending > 0 {
		m.pending--
	}
}

// run counts cmd as an in-flight operation.
func (m *Model) run(cmd tea.Cmd) tea.Cmd {
	m.pending++
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return tea.Quit
	}

	modals := m.ui.Modals()
	switch {
	case modals.DeleteOpen:
		return m.handleConfirmKey(msg, modals)
	case modals.CreateOpen || modals.EditOpen:
		return m.handleFormKey(msg, modals)
	case m.searching:
		return m.handleSearchKey(msg)
	}

	visible := m.store.Visible()
	focused, hasFocus := m.focused(visible)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.rowStride(), len(visible))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.rowStride(), len(visible))
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, len(visible))
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, len(visible))

	case key.Matches(msg, m.keys.Create):
		m.ui.OpenCreateModal()
		m.form = newTaskForm(nil)
		return textinput.Blink
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m.search.Focus()
	case key.Matches(msg, m.keys.Edit):
		if hasFocus {
			m.ui.OpenEditModal(focused)
			m.form = newTaskForm(&focused)
			return textinput.Blink
		}
	case key.Matches(msg, m.keys.Delete):
		if hasFocus {
			m.ui.OpenDeleteModal(focused)
		}
	case key.Matches(msg, m.keys.Space):
		if !hasFocus {
			return nil
		}
		if m.ui.SelectMode() {
			m.ui.SelectTask(focused.ID)
			return nil
		}
		return m.run(updateCmd(m.ctx, m.store, focused.ID, todo.StatusPatch(focused.Status.Next())))

	case key.Matches(msg, m.keys.FilterPending):
		m.setStatusFilter(todo.StatusPending)
	case key.Matches(msg, m.keys.FilterInProgress):
		m.setStatusFilter(todo.StatusInProgress)
	case key.Matches(msg, m.keys.FilterCompleted):
		m.setStatusFilter(todo.StatusCompleted)
	case key.Matches(msg, m.keys.FilterAll):
		m.setStatusFilter(todo.StatusAll)
	case key.Matches(msg, m.keys.CycleSort):
		st := m.store.Snapshot()
		m.store.SetSort(nextSortField(st.SortField), st.SortDirection)
		m.keepFocus(focused, hasFocus)
	case key.Matches(msg, m.keys.FlipSort):
		m.store.ToggleSortDirection()
		m.keepFocus(focused, hasFocus)
	case key.Matches(msg, m.keys.ResetFilters):
		m.store.ResetFilters()
		m.search.SetValue("")
		m.cursor = 0

	case key.Matches(msg, m.keys.SelectMode):
		m.ui.ToggleSelectMode()
	case key.Matches(msg, m.keys.SelectAll):
		if !m.ui.SelectMode() {
			m.ui.ToggleSelectMode()
		}
		m.ui.SelectAllTasks(taskIDs(visible))
	case key.Matches(msg, m.keys.BulkDelete):
		ids := m.ui.SelectedIDs()
		if len(ids) == 0 {
			m.ui.NotifyWarning("No tasks selected", uistate.WithMessage("Press v to enter select mode"))
			return nil
		}
		return m.run(bulkDeleteCmd(m.ctx, m.store, ids))
	case key.Matches(msg, m.keys.BulkComplete):
		ids := m.ui.SelectedIDs()
		if len(ids) == 0 {
			m.ui.NotifyWarning("No tasks selected", uistate.WithMessage("Press v to enter select mode"))
			return nil
		}
		return m.run(bulkCompleteCmd(m.ctx, m.store, ids))
	case key.Matches(msg, m.keys.MoveUp):
		m.moveFocused(focused, hasFocus, -1)
	case key.Matches(msg, m.keys.MoveDown):
		m.moveFocused(focused, hasFocus, 1)

	case key.Matches(msg, m.keys.Theme):
		m.ui.ToggleTheme()
	case key.Matches(msg, m.keys.ViewMode):
		m.ui.ToggleViewMode()
	case key.Matches(msg, m.keys.Animations):
		m.ui.ToggleAnimations()
	case key.Matches(msg, m.keys.DragDrop):
		if m.ui.ToggleDragDrop() {
			m.ui.NotifyInfo("Reordering enabled", uistate.WithMessage("Use K and J to move tasks"))
		} else {
			m.ui.NotifyInfo("Reordering disabled")
		}
	case key.Matches(msg, m.keys.Sidebar):
		m.ui.ToggleSidebar()
	case key.Matches(msg, m.keys.PrevPage):
		m.turnPage(-1, len(visible))
	case key.Matches(msg, m.keys.NextPage):
		m.turnPage(1, len(visible))
	case key.Matches(msg, m.keys.RunAction):
		if n, ok := newestWithAction(m.ui.Notifications()); ok {
			return runActionCmd(m.ui.RunAction, n.ID)
		}
	case key.Matches(msg, m.keys.Dismiss):
		if ns := m.ui.Notifications(); len(ns) > 0 {
			m.ui.RemoveNotification(ns[len(ns)-1].ID)
		}

	case key.Matches(msg, m.keys.Reload):
		return m.run(loadCmd(m.ctx, m.store))
	case key.Matches(msg, m.keys.Reset):
		if m.reset == nil {
			m.ui.NotifyWarning("Demo data cannot be reset")
			return nil
		}
		return m.run(resetCmd(m.ctx, m.store, m.reset))
	case key.Matches(msg, m.keys.Escape):
		switch {
		case m.store.Error() != "":
			m.store.ClearError()
		case m.showHelp:
			m.showHelp = false
			m.help.ShowAll = false
		case m.ui.SelectMode():
			m.ui.ToggleSelectMode()
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg, modals uistate.Modals) tea.Cmd {
	if m.form == nil {
		m.form = newTaskForm(modals.EditTask)
	}
	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.ui.CloseAllModals()
		m.form = nil
		return nil
	case key.Matches(msg, m.formKeys.Next):
		return m.form.setFocus(m.form.focus + 1)
	case key.Matches(msg, m.formKeys.Prev):
		return m.form.setFocus(m.form.focus - 1)
	case key.Matches(msg, m.formKeys.Status):
		m.form.cycleStatus()
		return nil
	case key.Matches(msg, m.formKeys.Submit):
		return m.submitForm(modals)
	}
	return m.form.update(msg)
}

func (m *Model) submitForm(modals uistate.Modals) tea.Cmd {
	if !m.form.validate() {
		return nil
	}
	form := m.form
	m.form = nil

	if modals.EditOpen && modals.EditTask != nil {
		m.ui.CloseEditModal()
		patch := form.patch(*modals.EditTask)
		if patch.IsEmpty() {
			m.ui.NotifyInfo("No changes to save")
			return nil
		}
		return m.run(updateCmd(m.ctx, m.store, modals.EditTask.ID, patch))
	}

	m.ui.CloseCreateModal()
	return m.run(createCmd(m.ctx, m.store, form.input().Normalize()))
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg, modals uistate.Modals) tea.Cmd {
	switch {
	case key.Matches(msg, m.confirmKeys.Yes):
		m.ui.CloseDeleteModal()
		if modals.DeleteTask == nil {
			return nil
		}
		return m.run(deleteCmd(m.ctx, m.store, *modals.DeleteTask))
	case key.Matches(msg, m.confirmKeys.No):
		m.ui.CloseDeleteModal()
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "enter":
		m.searching = false
		m.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.store.SetSearchQuery(m.search.Value())
	m.cursor = 0
	return cmd
}

// restoreAction re-creates a deleted task. It runs on a command goroutine,
// so it only touches the store and UI state.
func (m *Model) restoreAction(task todo.Task) func() {
	ctx, s, state := m.ctx, m.store, m.ui
	return func() {
		in := todo.Input{Title: task.Title, Description: task.Description, Status: task.Status}
		if _, ok := s.Create(ctx, in); !ok {
			state.NotifyError("Failed to restore task", uistate.WithMessage(s.Error()))
			return
		}
		state.NotifySuccess("Task restored", uistate.WithMessage(task.Title))
	}
}

func (m *Model) focused(visible []todo.Task) (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(visible) {
		return todo.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) focusTask(id string) {
	if i := todo.IndexOf(m.store.Visible(), id); i >= 0 {
		m.cursor = i
		return
	}
	m.clampCursor()
}

func (m *Model) keepFocus(task todo.Task, ok bool) {
	if ok {
		m.focusTask(task.ID)
	}
}

func (m *Model) clampCursor() {
	n := len(m.store.Visible())
	m.cursor = min(max(m.cursor, 0), max(n-1, 0))
}

func (m *Model) moveCursor(delta, n int) {
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

func (m *Model) turnPage(delta, n int) {
	per := m.ui.ItemsPerPage()
	pages := pageCount(n, per)
	page := min(max(m.cursor/per+delta, 0), pages-1)
	m.cursor = min(page*per, max(n-1, 0))
}

func (m *Model) setStatusFilter(status todo.Status) {
	m.store.SetStatusFilter(status)
	m.cursor = 0
}

// moveFocused reorders the focused task past its visible neighbour. The
// view switches to manual order so the move is visible.
func (m *Model) moveFocused(task todo.Task, ok bool, dir int) {
	if !m.ui.DragDropEnabled() {
		m.ui.NotifyWarning("Reordering is disabled", uistate.WithMessage("Press D to enable it"))
		return
	}
	if !ok {
		return
	}
	if st := m.store.Snapshot(); st.SortField != todo.SortManual {
		m.store.SetSort(todo.SortManual, todo.Asc)
		m.focusTask(task.ID)
	}

	visible := m.store.Visible()
	target := m.cursor + dir
	if target < 0 || target >= len(visible) {
		return
	}
	all := m.store.Tasks()
	delta := todo.IndexOf(all, visible[target].ID) - todo.IndexOf(all, task.ID)
	if m.store.Move(task.ID, delta) {
		m.logger.Debug("task moved", "id", task.ID, "delta", delta)
		m.focusTask(task.ID)
	}
}

// rowStride is how far up and down move the cursor.
func (m *Model) rowStride() int {
	if m.ui.ViewMode() == uistate.ViewGrid {
		return m.gridColumns()
	}
	return 1
}

func nextSortField(f todo.SortField) todo.SortField {
	fields := todo.SortFields()
	for i, candidate := range fields {
		if candidate == f {
			return fields[(i+1)%len(fields)]
		}
	}
	return fields[0]
}

func newestWithAction(ns []uistate.Notification) (uistate.Notification, bool) {
	for i := len(ns) - 1; i >= 0; i-- {
		if ns[i].Action != nil {
			return ns[i], true
		}
	}
	return uistate.Notification{}, false
}

func taskIDs(tasks []todo.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func pageCount(n, per int) int {
	if per <= 0 || n == 0 {
		return 1
	}
	return (n + per - 1) / per
}
