package todo

import "strings"

// Filter selects tasks by status and free-text query. The zero value matches
// everything.
type Filter struct {
	// Status:
	//   "" | "all" | "pending" | "in-progress" | "completed"
	Status Status
	// Query is matched case-insensitively against title and description.
	Query string
}

// Matches reports whether t passes the filter.
func (f Filter) Matches(t Task) bool {
	if f.Status != "" && f.Status != StatusAll && t.Status != f.Status {
		return false
	}
	return MatchesQuery(t, f.Query)
}

// MatchesQuery reports whether query is a case-insensitive substring of the
// task title or description. An empty query matches every task; a missing
// description never matches.
func MatchesQuery(t Task, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	return t.Description != "" && strings.Contains(strings.ToLower(t.Description), q)
}

// FilterTasks returns the tasks matching status and query, in input order.
// The input slice is not modified.
func FilterTasks(tasks []Task, status Status, query string) []Task {
	f := Filter{Status: status, Query: query}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
