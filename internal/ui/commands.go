package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskdash/internal/api"
	"github.com/nibzard/taskdash/internal/store"
	"github.com/nibzard/taskdash/internal/todo"
)

// Result messages. ok is false when the store recorded an error.
type (
	loadedMsg struct {
		err   error
		reset bool
	}
	createdMsg struct {
		task todo.Task
		ok   bool
	}
	updatedMsg struct {
		task todo.Task
		ok   bool
	}
	deletedMsg struct {
		task todo.Task
		ok   bool
	}
	bulkUpdatedMsg struct {
		n  int
		ok bool
	}
	bulkDeletedMsg struct {
		n  int
		ok bool
	}
	actionRanMsg struct {
		ok bool
	}
	uiChangedMsg struct{}
)

func loadCmd(ctx context.Context, s *store.TaskStore) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: s.Load(ctx)}
	}
}

// resetCmd restores the demo data on the backend and reloads it.
func resetCmd(ctx context.Context, s *store.TaskStore, r Resetter) tea.Cmd {
	return func() tea.Msg {
		r.Reset()
		return loadedMsg{err: s.Load(ctx), reset: true}
	}
}

func createCmd(ctx context.Context, s *store.TaskStore, in todo.Input) tea.Cmd {
	return func() tea.Msg {
		task, ok := s.Create(ctx, in)
		return createdMsg{task: task, ok: ok}
	}
}

func updateCmd(ctx context.Context, s *store.TaskStore, id string, patch todo.Patch) tea.Cmd {
	return func() tea.Msg {
		task, ok := s.Update(ctx, id, patch)
		return updatedMsg{task: task, ok: ok}
	}
}

func deleteCmd(ctx context.Context, s *store.TaskStore, task todo.Task) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{task: task, ok: s.Remove(ctx, task.ID)}
	}
}

func bulkCompleteCmd(ctx context.Context, s *store.TaskStore, ids []string) tea.Cmd {
	updates := make([]api.BulkUpdate, len(ids))
	for i, id := range ids {
		updates[i] = api.BulkUpdate{ID: id, Patch: todo.StatusPatch(todo.StatusCompleted)}
	}
	return func() tea.Msg {
		updated, ok := s.BulkUpdate(ctx, updates)
		return bulkUpdatedMsg{n: len(updated), ok: ok}
	}
}

func bulkDeleteCmd(ctx context.Context, s *store.TaskStore, ids []string) tea.Cmd {
	return func() tea.Msg {
		n, ok := s.BulkDelete(ctx, ids)
		return bulkDeletedMsg{n: n, ok: ok}
	}
}

// runActionCmd runs a notification action off the update loop, since
// handlers may call the backend.
func runActionCmd(run func(id string) bool, id string) tea.Cmd {
	return func() tea.Msg {
		return actionRanMsg{ok: run(id)}
	}
}

// waitForChanges blocks until the UI state signals a change, for example a
// notification expiring on its timer.
func waitForChanges(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return uiChangedMsg{}
	}
}
