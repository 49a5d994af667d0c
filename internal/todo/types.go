// Package todo defines tasks, validation, filtering and sorting.
package todo

import (
	"time"
)

// Status represents a task status.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"

	// StatusAll is a filter value matching every status. It is never stored
	// on a task.
	StatusAll Status = "all"
)

// Statuses lists the task statuses in rank order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// Valid reports whether s is a storable task status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Rank returns the sort rank of the status. Unknown statuses sort last.
func (s Status) Rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	}
	return 3
}

// Next returns the status that follows s in the pending -> in-progress ->
// completed -> pending cycle.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// ParseStatus parses a status or filter value. "" and "all" map to StatusAll.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case "", StatusAll:
		return StatusAll, true
	case StatusPending, StatusInProgress, StatusCompleted:
		return Status(s), true
	}
	return "", false
}

// Task is a single unit of work.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Status      Status    `json:"status" yaml:"status"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// Touch moves UpdatedAt to now. If the clock has not advanced past the
// current UpdatedAt, the timestamp is bumped by a nanosecond so every
// mutation is observable.
func (t *Task) Touch(now time.Time) {
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = now
}

// Apply merges the non-nil fields of p onto t. It does not touch UpdatedAt.
func (t *Task) Apply(p Patch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
}

// Input holds the fields supplied when creating a task.
type Input struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status,omitempty"`
}

// Patch represents a partial update.
// nil pointer => "no change"
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *Status `json:"status,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// StatusPatch returns a patch that only sets the status.
func StatusPatch(s Status) Patch {
	return Patch{Status: &s}
}

// Clone returns a copy of tasks that shares no backing array with the input.
func Clone(tasks []Task) []Task {
	if tasks == nil {
		return nil
	}
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// IndexOf returns the position of the task with the given id, or -1.
func IndexOf(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
