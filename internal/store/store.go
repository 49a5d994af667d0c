// Package store owns the client-side task collection. Every mutation goes
// through a Backend; the store keeps the filter and sort state and derives
// the visible tasks and statistics from it.
package store

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskdash/internal/api"
	"github.com/nibzard/taskdash/internal/todo"
)

// Backend is the task service the store talks to. *api.Facade satisfies it.
type Backend interface {
	List(ctx context.Context) (api.Result[[]todo.Task], error)
	Create(ctx context.Context, in todo.Input) (api.Result[todo.Task], error)
	Update(ctx context.Context, id string, patch todo.Patch) (api.Result[todo.Task], error)
	Delete(ctx context.Context, id string) (api.Ack, error)
	BulkUpdate(ctx context.Context, updates []api.BulkUpdate) (api.Result[[]todo.Task], error)
	BulkDelete(ctx context.Context, ids []string) (api.Result[api.BulkDeleteResult], error)
}

// Default filter and sort state, restored by ResetFilters.
const (
	DefaultStatusFilter  = todo.StatusAll
	DefaultSortField     = todo.SortCreatedAt
	DefaultSortDirection = todo.Desc
)

// TaskStore holds the task collection together with its view state.
// It is safe for concurrent use.
type TaskStore struct {
	backend Backend
	logger  *log.Logger

	mu       sync.Mutex
	tasks    []todo.Task
	status   todo.Status
	query    string
	field    todo.SortField
	dir      todo.SortDirection
	inflight int
	err      string

	// version is bumped whenever an input of the visible view changes.
	version     uint64
	viewVersion uint64
	view        []todo.Task
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *TaskStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty store. Call Load to fetch the collection.
func New(backend Backend, opts ...Option) *TaskStore {
	s := &TaskStore{
		backend: backend,
		logger:  log.New(io.Discard),
		tasks:   []todo.Task{},
		status:  DefaultStatusFilter,
		field:   DefaultSortField,
		dir:     DefaultSortDirection,
		version: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the backend's.
func (s *TaskStore) Load(ctx context.Context) error {
	s.begin()
	defer s.end()

	res, err := s.backend.List(ctx)
	if err != nil {
		s.fault("loading tasks", err)
		return err
	}
	if !res.Success {
		s.failure(res.Message, "Failed to load tasks")
		return nil
	}

	s.mu.Lock()
	s.tasks = todo.Clone(res.Data)
	if s.tasks == nil {
		s.tasks = []todo.Task{}
	}
	s.version++
	s.mu.Unlock()
	s.logger.Debug("tasks loaded", "count", len(res.Data))
	return nil
}

// Create adds a task and returns it. The bool is false when the backend
// reported a failure or fault; the reason is in Error.
func (s *TaskStore) Create(ctx context.Context, in todo.Input) (todo.Task, bool) {
	s.begin()
	defer s.end()

	res, err := s.backend.Create(ctx, in)
	if err != nil {
		s.fault("creating task", err)
		return todo.Task{}, false
	}
	if !res.Success {
		s.failure(res.Message, "Failed to create task")
		return todo.Task{}, false
	}

	s.mu.Lock()
	s.tasks = append([]todo.Task{res.Data}, s.tasks...)
	s.version++
	s.mu.Unlock()
	return res.Data, true
}

// Update applies patch to the task with the given id and returns the result.
func (s *TaskStore) Update(ctx context.Context, id string, patch todo.Patch) (todo.Task, bool) {
	s.begin()
	defer s.end()

	res, err := s.backend.Update(ctx, id, patch)
	if err != nil {
		s.fault("updating task", err)
		return todo.Task{}, false
	}
	if !res.Success {
		s.failure(res.Message, "Failed to update task")
		return todo.Task{}, false
	}

	s.mu.Lock()
	s.tasks = mergeByID(s.tasks, []todo.Task{res.Data})
	s.version++
	s.mu.Unlock()
	return res.Data, true
}

// Remove deletes the task with the given id.
func (s *TaskStore) Remove(ctx context.Context, id string) bool {
	s.begin()
	defer s.end()

	ack, err := s.backend.Delete(ctx, id)
	if err != nil {
		s.fault("deleting task", err)
		return false
	}
	if !ack.Success {
		s.failure(ack.Message, "Failed to delete task")
		return false
	}

	s.mu.Lock()
	s.tasks = withoutIDs(s.tasks, []string{id})
	s.version++
	s.mu.Unlock()
	return true
}

// BulkUpdate applies several patches in one backend call. Tasks the backend
// returns replace their local copies by id; the rest are left unchanged.
func (s *TaskStore) BulkUpdate(ctx context.Context, updates []api.BulkUpdate) ([]todo.Task, bool) {
	s.begin()
	defer s.end()

	res, err := s.backend.BulkUpdate(ctx, updates)
	if err != nil {
		s.fault("updating tasks", err)
		return nil, false
	}
	if !res.Success {
		s.failure(res.Message, "Failed to update tasks")
		return nil, false
	}

	s.mu.Lock()
	s.tasks = mergeByID(s.tasks, res.Data)
	s.version++
	s.mu.Unlock()
	return res.Data, true
}

// BulkDelete removes several tasks in one backend call and returns how many
// were deleted.
func (s *TaskStore) BulkDelete(ctx context.Context, ids []string) (int, bool) {
	s.begin()
	defer s.end()

	res, err := s.backend.BulkDelete(ctx, ids)
	if err != nil {
		s.fault("deleting tasks", err)
		return 0, false
	}
	if !res.Success {
		s.failure(res.Message, "Failed to delete tasks")
		return 0, false
	}

	s.mu.Lock()
	s.tasks = withoutIDs(s.tasks, res.Data.DeletedIDs)
	s.version++
	s.mu.Unlock()
	return res.Data.DeletedCount, true
}

// Reorder replaces the collection order with ordered. The order is local
// only and is not sent to the backend.
func (s *TaskStore) Reorder(ordered []todo.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = todo.Clone(ordered)
	if s.tasks == nil {
		s.tasks = []todo.Task{}
	}
	s.version++
}

// Move shifts the task with the given id by delta positions within the
// collection, clamped to its bounds. It reports whether anything moved.
func (s *TaskStore) Move(id string, delta int) bool {
	s.mu.Lock()
	from := todo.IndexOf(s.tasks, id)
	if from < 0 {
		s.mu.Unlock()
		return false
	}
	to := min(max(from+delta, 0), len(s.tasks)-1)
	if to == from {
		s.mu.Unlock()
		return false
	}
	moved := todo.Move(s.tasks, from, to)
	s.mu.Unlock()

	s.Reorder(moved)
	return true
}

// SetStatusFilter restricts the visible tasks to one status, or all.
func (s *TaskStore) SetStatusFilter(status todo.Status) {
	if status == "" {
		status = todo.StatusAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != status {
		s.status = status
		s.version++
	}
}

// SetSearchQuery sets the free-text filter.
func (s *TaskStore) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.query != query {
		s.query = query
		s.version++
	}
}

// SetSort sets the sort field and direction.
func (s *TaskStore) SetSort(field todo.SortField, dir todo.SortDirection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.field != field || s.dir != dir {
		s.field = field
		s.dir = dir
		s.version++
	}
}

// ToggleSortDirection flips between ascending and descending.
func (s *TaskStore) ToggleSortDirection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dir = s.dir.Reverse()
	s.version++
}

// ResetFilters restores the default filter and sort state.
func (s *TaskStore) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = DefaultStatusFilter
	s.query = ""
	s.field = DefaultSortField
	s.dir = DefaultSortDirection
	s.version++
}

// ClearError clears the error message.
func (s *TaskStore) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

// Snapshot returns a copy of the store's state.
func (s *TaskStore) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Tasks returns a copy of the collection in its stored order.
func (s *TaskStore) Tasks() []todo.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return todo.Clone(s.tasks)
}

// Visible returns the filtered and sorted tasks. The result is cached until
// the collection or the filter and sort state change.
func (s *TaskStore) Visible() []todo.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewVersion != s.version {
		s.view = VisibleTasks(s.stateLocked())
		s.viewVersion = s.version
	}
	return todo.Clone(s.view)
}

// Stats returns aggregate counts over the whole collection.
func (s *TaskStore) Stats() todo.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return todo.ComputeStats(s.tasks)
}

// Loading reports whether a backend call is in flight.
func (s *TaskStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Error returns the last failure message, or "".
func (s *TaskStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *TaskStore) stateLocked() State {
	return State{
		Tasks:         todo.Clone(s.tasks),
		StatusFilter:  s.status,
		SearchQuery:   s.query,
		SortField:     s.field,
		SortDirection: s.dir,
		Loading:       s.inflight > 0,
		Error:         s.err,
	}
}

func (s *TaskStore) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
	s.err = ""
}

func (s *TaskStore) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
}

func (s *TaskStore) fault(action string, err error) {
	s.logger.Error("backend call failed", "action", action, "err", err)
	s.setError("Network error while " + action)
}

func (s *TaskStore) failure(msg, fallback string) {
	if msg == "" {
		msg = fallback
	}
	s.logger.Warn("backend call rejected", "msg", msg)
	s.setError(msg)
}

func (s *TaskStore) setError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}

// mergeByID replaces the tasks in dst that share an id with a task in
// updated. Tasks missing from dst are ignored.
func mergeByID(dst, updated []todo.Task) []todo.Task {
	byID := make(map[string]todo.Task, len(updated))
	for _, t := range updated {
		byID[t.ID] = t
	}
	out := make([]todo.Task, len(dst))
	for i, t := range dst {
		if u, ok := byID[t.ID]; ok {
			out[i] = u
			continue
		}
		out[i] = t
	}
	return out
}

func withoutIDs(tasks []todo.Task, ids []string) []todo.Task {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := make([]todo.Task, 0, len(tasks))
	for _, t := range tasks {
		if !drop[t.ID] {
			out = append(out, t)
		}
	}
	return out
}
