package todo

import (
	"sort"
	"strings"
)

// SortField names the task attribute used for ordering.
type SortField string

const (
	SortTitle     SortField = "title"
	SortCreatedAt SortField = "createdAt"
	SortUpdatedAt SortField = "updatedAt"
	SortStatus    SortField = "status"
	// SortManual keeps the collection order set by reordering.
	SortManual SortField = "manual"
)

// SortFields lists the sort fields in the order the UI cycles through them.
func SortFields() []SortField {
	return []SortField{SortCreatedAt, SortUpdatedAt, SortTitle, SortStatus, SortManual}
}

// ParseSortField parses a sort field name.
func ParseSortField(s string) (SortField, bool) {
	for _, f := range SortFields() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// SortDirection is ascending or descending.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// ParseSortDirection parses "asc" or "desc".
func ParseSortDirection(s string) (SortDirection, bool) {
	switch SortDirection(s) {
	case Asc, Desc:
		return SortDirection(s), true
	}
	return "", false
}

// Reverse returns the opposite direction.
func (d SortDirection) Reverse() SortDirection {
	if d == Asc {
		return Desc
	}
	return Asc
}

// SortTasks returns a sorted copy of tasks. Ascending order is stable;
// descending order is the exact reverse of ascending order. SortManual
// returns the input order regardless of direction.
func SortTasks(tasks []Task, field SortField, dir SortDirection) []Task {
	out := Clone(tasks)
	if out == nil {
		out = []Task{}
	}
	if field == SortManual {
		return out
	}

	less := lessFunc(field)
	sort.SliceStable(out, func(i, j int) bool {
		return less(&out[i], &out[j])
	})
	if dir == Desc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

func lessFunc(field SortField) func(a, b *Task) bool {
	switch field {
	case SortTitle:
		return func(a, b *Task) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case SortStatus:
		return func(a, b *Task) bool {
			return a.Status.Rank() < b.Status.Rank()
		}
	case SortUpdatedAt:
		return func(a, b *Task) bool {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
	default:
		return func(a, b *Task) bool {
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
}

// Move returns a copy of tasks with the task at index from moved to index to.
// Out-of-range indexes return an unchanged copy.
func Move(tasks []Task, from, to int) []Task {
	out := Clone(tasks)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out
}
