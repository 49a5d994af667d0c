// Package api provides an in-memory task backend that simulates the latency
// of a remote service.
package api

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/taskdash/internal/todo"
)

// Facade is a process-local task service. Each Facade owns its collection;
// there is no shared package state.
type Facade struct {
	mu      sync.Mutex
	seed    []todo.Task
	tasks   []todo.Task
	latency Latency
	now     func() time.Time
	newID   func() string
	logger  *log.Logger
}

// Option configures a Facade.
type Option func(*Facade)

// WithLatency sets the simulated latency profile.
func WithLatency(l Latency) Option {
	return func(f *Facade) {
		f.latency = l
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Facade) {
		f.now = now
	}
}

// WithIDGenerator overrides the id source for created tasks.
func WithIDGenerator(newID func() string) Option {
	return func(f *Facade) {
		f.newID = newID
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(f *Facade) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a facade seeded with a copy of seed.
func New(seed []todo.Task, opts ...Option) *Facade {
	f := &Facade{
		seed:    todo.Clone(seed),
		latency: DefaultLatency(),
		now:     time.Now,
		newID:   uuid.NewString,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.seed == nil {
		f.seed = []todo.Task{}
	}
	f.tasks = todo.Clone(f.seed)
	return f
}

// Reset restores the collection to the seed data, discarding every mutation.
func (f *Facade) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = todo.Clone(f.seed)
	f.logger.Info("data reset", "tasks", len(f.tasks))
}

// Len returns the current collection size without simulated latency.
func (f *Facade) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

// List returns every task.
func (f *Facade) List(ctx context.Context) (Result[[]todo.Task], error) {
	if err := wait(ctx, f.latency.List); err != nil {
		return Result[[]todo.Task]{}, fmt.Errorf("list tasks: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return ok(todo.Clone(f.tasks), MsgListed), nil
}

// Get returns the task with the given id.
func (f *Facade) Get(ctx context.Context, id string) (Result[todo.Task], error) {
	if err := wait(ctx, f.latency.Get); err != nil {
		return Result[todo.Task]{}, fmt.Errorf("get task: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := todo.IndexOf(f.tasks, id)
	if i < 0 {
		return fail[todo.Task](MsgNotFound), nil
	}
	return ok(f.tasks[i], MsgFound), nil
}

// Create adds a task to the front of the collection. The input is not
// validated; callers are expected to run todo.ValidateInput first.
func (f *Facade) Create(ctx context.Context, in todo.Input) (Result[todo.Task], error) {
	if err := wait(ctx, f.latency.Create); err != nil {
		return Result[todo.Task]{}, fmt.Errorf("create task: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	status := in.Status
	if status == "" {
		status = todo.StatusPending
	}
	now := f.now()
	task := todo.Task{
		ID:          f.newID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks = append([]todo.Task{task}, f.tasks...)
	f.logger.Debug("task created", "id", task.ID)
	return ok(task, MsgCreated), nil
}

// Update merges patch onto the task with the given id.
func (f *Facade) Update(ctx context.Context, id string, patch todo.Patch) (Result[todo.Task], error) {
	if err := wait(ctx, f.latency.Update); err != nil {
		return Result[todo.Task]{}, fmt.Errorf("update task: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	task, found := f.updateLocked(id, patch)
	if !found {
		return fail[todo.Task](MsgNotFound), nil
	}
	f.logger.Debug("task updated", "id", id)
	return ok(task, MsgUpdated), nil
}

// Delete removes the task with the given id.
func (f *Facade) Delete(ctx context.Context, id string) (Ack, error) {
	if err := wait(ctx, f.latency.Delete); err != nil {
		return Ack{}, fmt.Errorf("delete task: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	i := todo.IndexOf(f.tasks, id)
	if i < 0 {
		return Ack{Success: false, Message: MsgNotFound}, nil
	}
	f.tasks = append(f.tasks[:i:i], f.tasks[i+1:]...)
	f.logger.Debug("task deleted", "id", id)
	return Ack{Success: true, Message: MsgDeleted}, nil
}

// BulkUpdate applies each entry with Update semantics. Unknown ids are
// skipped; the call succeeds even when nothing was updated.
func (f *Facade) BulkUpdate(ctx context.Context, updates []BulkUpdate) (Result[[]todo.Task], error) {
	if err := wait(ctx, f.latency.BulkUpdate); err != nil {
		return Result[[]todo.Task]{}, fmt.Errorf("bulk update tasks: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	updated := make([]todo.Task, 0, len(updates))
	for _, u := range updates {
		if task, found := f.updateLocked(u.ID, u.Patch); found {
			updated = append(updated, task)
		}
	}
	f.logger.Debug("bulk update", "requested", len(updates), "updated", len(updated))
	return ok(updated, fmt.Sprintf("Updated %d tasks", len(updated))), nil
}

// BulkDelete removes every task whose id is listed. Unknown ids are skipped.
func (f *Facade) BulkDelete(ctx context.Context, ids []string) (Result[BulkDeleteResult], error) {
	if err := wait(ctx, f.latency.BulkDelete); err != nil {
		return Result[BulkDeleteResult]{}, fmt.Errorf("bulk delete tasks: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}
	kept := make([]todo.Task, 0, len(f.tasks))
	deleted := make([]string, 0, len(ids))
	for _, task := range f.tasks {
		if remove[task.ID] {
			deleted = append(deleted, task.ID)
			continue
		}
		kept = append(kept, task)
	}
	f.tasks = kept
	f.logger.Debug("bulk delete", "requested", len(ids), "deleted", len(deleted))
	return ok(BulkDeleteResult{DeletedCount: len(deleted), DeletedIDs: deleted},
		fmt.Sprintf("Deleted %d tasks", len(deleted))), nil
}

// Search returns the tasks whose title or description contains query,
// case-insensitively.
func (f *Facade) Search(ctx context.Context, query string) (Result[[]todo.Task], error) {
	if err := wait(ctx, f.latency.Search); err != nil {
		return Result[[]todo.Task]{}, fmt.Errorf("search tasks: %w", err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	matches := todo.FilterTasks(f.tasks, todo.StatusAll, query)
	return ok(matches, fmt.Sprintf("Found %d tasks matching \"%s\"", len(matches), query)), nil
}

func (f *Facade) updateLocked(id string, patch todo.Patch) (todo.Task, bool) {
	i := todo.IndexOf(f.tasks, id)
	if i < 0 {
		return todo.Task{}, false
	}
	f.tasks[i].Apply(patch)
	f.tasks[i].Touch(f.now())
	return f.tasks[i], true
}
