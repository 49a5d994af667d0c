package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskdash/internal/todo"
	"github.com/nibzard/taskdash/internal/uistate"
)

const (
	cardWidth     = 30
	sidebarWidth  = 26
	defaultWidth  = 80
	maxToasts     = 3
	descCardLines = 2
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if theme := m.ui.ResolvedTheme(); theme != m.styles.theme {
		m.styles = newStyles(theme)
	}
	st := m.styles

	var b strings.Builder
	b.WriteString(m.viewHeader() + "\n\n")

	if err := m.store.Error(); err != "" {
		b.WriteString(st.Error.Render("! "+err) + st.Muted.Render("  (esc to dismiss)") + "\n\n")
	}

	modals := m.ui.Modals()
	switch {
	case modals.DeleteOpen && modals.DeleteTask != nil:
		b.WriteString(m.viewConfirm(*modals.DeleteTask) + "\n")
		b.WriteString(m.help.View(m.confirmKeys))
	case (modals.CreateOpen || modals.EditOpen) && m.form != nil:
		b.WriteString(st.Modal.Render(m.form.view(st)) + "\n")
		b.WriteString(m.help.View(m.formKeys))
	default:
		body := m.viewTasks()
		if !m.ui.SidebarCollapsed() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), body)
		}
		b.WriteString(body + "\n")
		b.WriteString(m.viewToasts())
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m *Model) viewHeader() string {
	st := m.styles
	title := st.Title.Render("Task Dashboard")
	if m.Loading() {
		if m.ui.AnimationsEnabled() {
			title += " " + m.spin.View()
		} else {
			title += st.Muted.Render(" loading...")
		}
	}

	state := m.store.Snapshot()
	parts := []string{
		"filter: " + statusFilterLabel(state.StatusFilter),
		"sort: " + sortLabel(state.SortField, state.SortDirection),
	}
	if m.ui.SelectMode() {
		parts = append(parts, fmt.Sprintf("selected: %d", len(m.ui.SelectedIDs())))
	}
	parts = append(parts, "theme: "+string(m.ui.Theme()))
	line := st.Muted.Render(strings.Join(parts, "  |  "))

	search := m.search.View()
	if !m.searching && m.search.Value() == "" {
		search = st.Muted.Render("/ to search")
	}
	return title + "\n" + line + "\n" + search
}

func (m *Model) viewSidebar() string {
	st := m.styles
	stats := m.store.Stats()
	filter := m.store.Snapshot().StatusFilter

	var b strings.Builder
	b.WriteString(st.Label.Render("Overview") + "\n")
	fmt.Fprintf(&b, "Total        %d\n", stats.Total)
	fmt.Fprintf(&b, "%s      %d\n", st.Status(todo.StatusPending).Render("Pending"), stats.Pending)
	fmt.Fprintf(&b, "%s  %d\n", st.Status(todo.StatusInProgress).Render("In progress"), stats.InProgress)
	fmt.Fprintf(&b, "%s    %d\n", st.Status(todo.StatusCompleted).Render("Completed"), stats.Completed)
	fmt.Fprintf(&b, "Done         %d%%\n\n", stats.CompletionRate)

	b.WriteString(st.Label.Render("Filters") + "\n")
	for i, s := range []todo.Status{todo.StatusAll, todo.StatusPending, todo.StatusInProgress, todo.StatusCompleted} {
		label := fmt.Sprintf("%d %s", i, statusFilterLabel(s))
		if s == filter {
			label = st.Accent.Render("> " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(label + "\n")
	}

	b.WriteString("\n" + st.Label.Render("View") + "\n")
	fmt.Fprintf(&b, "layout     %s\n", m.ui.ViewMode())
	fmt.Fprintf(&b, "animations %s\n", onOff(m.ui.AnimationsEnabled()))
	fmt.Fprintf(&b, "reorder    %s\n", onOff(m.ui.DragDropEnabled()))
	fmt.Fprintf(&b, "per page   %d\n", m.ui.ItemsPerPage())

	return lipgloss.NewStyle().Width(sidebarWidth).PaddingRight(2).Render(b.String())
}

func (m *Model) viewTasks() string {
	st := m.styles
	visible := m.store.Visible()
	if len(visible) == 0 {
		switch {
		case m.Loading():
			return st.Muted.Render("Loading tasks...")
		case len(m.store.Tasks()) == 0:
			return st.Muted.Render("No tasks yet. Press ctrl+n to create one.")
		default:
			return st.Muted.Render("No tasks match the current filters. Press R to reset them.")
		}
	}

	per := m.ui.ItemsPerPage()
	page := m.cursor / per
	start := page * per
	end := min(start+per, len(visible))

	var body string
	if m.ui.ViewMode() == uistate.ViewGrid {
		body = m.viewGrid(visible[start:end], start)
	} else {
		body = m.viewList(visible[start:end], start)
	}

	pages := pageCount(len(visible), per)
	footer := st.Muted.Render(fmt.Sprintf("page %d/%d  |  %d of %d tasks", page+1, pages, len(visible), len(m.store.Tasks())))
	return body + "\n" + footer
}

func (m *Model) viewGrid(tasks []todo.Task, offset int) string {
	cols := m.gridColumns()
	var rows []string
	for i := 0; i < len(tasks); i += cols {
		end := min(i+cols, len(tasks))
		cards := make([]string, 0, cols)
		for j := i; j < end; j++ {
			cards = append(cards, m.viewCard(tasks[j], offset+j == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) viewCard(t todo.Task, focused bool) string {
	st := m.styles
	inner := cardWidth - 4

	var b strings.Builder
	b.WriteString(m.selectBox(t.ID) + lipgloss.NewStyle().Bold(true).Render(truncate(t.Title, inner-4)) + "\n")
	b.WriteString(st.Status(t.Status).Render(statusLabel(t.Status)) + "\n")
	desc := wrap(t.Description, inner, descCardLines)
	for len(desc) < descCardLines {
		desc = append(desc, "")
	}
	b.WriteString(st.Muted.Render(strings.Join(desc, "\n")) + "\n")
	b.WriteString(st.Muted.Render(t.CreatedAt.Format("Jan 2, 2006")))

	if focused {
		return st.CardFocus.Render(b.String())
	}
	return st.Card.Render(b.String())
}

func (m *Model) viewList(tasks []todo.Task, offset int) string {
	st := m.styles
	width := m.width
	if width == 0 {
		width = defaultWidth
	}
	if !m.ui.SidebarCollapsed() {
		width -= sidebarWidth
	}
	titleWidth := max(width-40, 12)

	lines := make([]string, len(tasks))
	for i, t := range tasks {
		status := st.Status(t.Status).Render(fmt.Sprintf("%-12s", statusLabel(t.Status)))
		row := fmt.Sprintf("%s%s %-*s %s",
			m.selectBox(t.ID),
			status,
			titleWidth, truncate(t.Title, titleWidth),
			st.Muted.Render(t.CreatedAt.Format("2006-01-02")),
		)
		if offset+i == m.cursor {
			lines[i] = st.RowFocus.Render(row)
			continue
		}
		lines[i] = st.Row.Render(row)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewConfirm(t todo.Task) string {
	st := m.styles
	body := st.Title.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("%q will be removed.", t.Title) + "\n\n" +
		st.Muted.Render("y to delete, n to cancel")
	return st.Modal.Render(body)
}

func (m *Model) viewToasts() string {
	ns := m.ui.Notifications()
	if len(ns) == 0 {
		return ""
	}
	if len(ns) > maxToasts {
		ns = ns[len(ns)-maxToasts:]
	}
	var b strings.Builder
	for i := len(ns) - 1; i >= 0; i-- {
		n := ns[i]
		text := n.Title
		if n.Message != "" {
			text += ": " + n.Message
		}
		if n.Action != nil {
			text += fmt.Sprintf("  [o] %s", n.Action.Label)
		}
		b.WriteString(m.styles.Toast(n.Kind).Render(text) + "\n")
	}
	return b.String()
}

func (m *Model) selectBox(id string) string {
	if !m.ui.SelectMode() {
		return ""
	}
	if m.ui.IsSelected(id) {
		return "[x] "
	}
	return "[ ] "
}

func (m *Model) gridColumns() int {
	width := m.width
	if width == 0 {
		width = defaultWidth
	}
	if !m.ui.SidebarCollapsed() {
		width -= sidebarWidth
	}
	return max(width/cardWidth, 1)
}

func statusLabel(s todo.Status) string {
	switch s {
	case todo.StatusPending:
		return "Pending"
	case todo.StatusInProgress:
		return "In progress"
	case todo.StatusCompleted:
		return "Completed"
	}
	return string(s)
}

func statusFilterLabel(s todo.Status) string {
	if s == todo.StatusAll || s == "" {
		return "All"
	}
	return statusLabel(s)
}

func sortLabel(f todo.SortField, d todo.SortDirection) string {
	if f == todo.SortManual {
		return "manual"
	}
	arrow := "↑"
	if d == todo.Desc {
		arrow = "↓"
	}
	return string(f) + " " + arrow
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// wrap breaks s into at most lines lines of width runes. Text that does
// not fit ends the last line with "...".
func wrap(s string, width, lines int) []string {
	var out []string
	line := ""
	words := strings.Fields(s)
	for i, word := range words {
		if line == "" {
			line = word
			continue
		}
		if len([]rune(line))+1+len([]rune(word)) <= width {
			line += " " + word
			continue
		}
		out = append(out, line)
		line = word
		if len(out) == lines {
			out[lines-1] = truncate(out[lines-1]+" "+strings.Join(words[i:], " "), width)
			return out
		}
	}
	if line != "" {
		out = append(out, truncate(line, width))
	}
	return out
}
