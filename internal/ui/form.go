package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskdash/internal/todo"
)

const (
	fieldTitle = iota
	fieldDescription
	fieldStatus
	fieldCount
)

// taskForm is the create/edit modal body.
type taskForm struct {
	id          string // empty when creating
	title       textinput.Model
	description textinput.Model
	status      todo.Status
	focus       int
	errs        map[string]string
}

func newTaskForm(task *todo.Task) *taskForm {
	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.CharLimit = todo.MaxTitleLength + 20
	title.Width = 48
	title.Prompt = ""

	desc := textinput.New()
	desc.Placeholder = "Optional details"
	desc.CharLimit = todo.MaxDescriptionLength + 20
	desc.Width = 48
	desc.Prompt = ""

	f := &taskForm{
		title:       title,
		description: desc,
		status:      todo.StatusPending,
		errs:        map[string]string{},
	}
	if task != nil {
		f.id = task.ID
		f.title.SetValue(task.Title)
		f.description.SetValue(task.Description)
		f.status = task.Status
	}
	f.title.Focus()
	return f
}

func (f *taskForm) editing() bool {
	return f.id != ""
}

func (f *taskForm) setFocus(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	f.title.Blur()
	f.description.Blur()
	switch f.focus {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.description.Focus()
	}
	return nil
}

func (f *taskForm) cycleStatus() {
	f.status = f.status.Next()
}

func (f *taskForm) input() todo.Input {
	return todo.Input{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Status:      f.status,
	}
}

// validate records per-field errors and reports whether the form may be
// submitted.
func (f *taskForm) validate() bool {
	f.errs = map[string]string{}
	for _, err := range todo.ValidateInput(f.input()) {
		f.errs[err.Path] = err.Err.Error()
	}
	return len(f.errs) == 0
}

// patch returns the fields of an edit that differ from orig.
func (f *taskForm) patch(orig todo.Task) todo.Patch {
	in := f.input().Normalize()
	var p todo.Patch
	if in.Title != orig.Title {
		p.Title = &in.Title
	}
	if in.Description != orig.Description {
		p.Description = &in.Description
	}
	if in.Status != orig.Status {
		p.Status = &in.Status
	}
	return p
}

func (f *taskForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldStatus:
		if k, ok := msg.(tea.KeyMsg); ok && (k.String() == " " || k.String() == "left" || k.String() == "right") {
			f.cycleStatus()
		}
	}
	return cmd
}

func (f *taskForm) view(st styles) string {
	var b strings.Builder
	heading := "New task"
	if f.editing() {
		heading = "Edit task"
	}
	b.WriteString(st.Title.Render(heading) + "\n\n")

	field := func(i int, label, body, errKey string) {
		marker := "  "
		if f.focus == i {
			marker = st.Accent.Render("> ")
		}
		b.WriteString(marker + st.Label.Render(label) + "\n")
		b.WriteString("  " + body + "\n")
		if msg := f.errs[errKey]; msg != "" {
			b.WriteString("  " + st.FieldErr.Render(msg) + "\n")
		}
		b.WriteString("\n")
	}
	field(fieldTitle, "Title", f.title.View(), "title")
	field(fieldDescription, "Description", f.description.View(), "description")
	field(fieldStatus, "Status", st.Status(f.status).Render(statusLabel(f.status)), "status")
	return strings.TrimRight(b.String(), "\n")
}
