package store

import "github.com/nibzard/taskdash/internal/todo"

// State is a point-in-time copy of a TaskStore.
type State struct {
	Tasks         []todo.Task
	StatusFilter  todo.Status
	SearchQuery   string
	SortField     todo.SortField
	SortDirection todo.SortDirection
	Loading       bool
	Error         string
}

// VisibleTasks filters st.Tasks by status and query, then sorts the result.
// st.Tasks is not modified.
func VisibleTasks(st State) []todo.Task {
	filtered := todo.FilterTasks(st.Tasks, st.StatusFilter, st.SearchQuery)
	return todo.SortTasks(filtered, st.SortField, st.SortDirection)
}
