package todo

import "math"

// Stats aggregates task counts.
type Stats struct {
	Total          int `json:"total" yaml:"total"`
	Pending        int `json:"pending" yaml:"pending"`
	InProgress     int `json:"inProgress" yaml:"inProgress"`
	Completed      int `json:"completed" yaml:"completed"`
	CompletionRate int `json:"completionRate" yaml:"completionRate"`
}

// ComputeStats counts tasks per status. CompletionRate is the rounded
// percentage of completed tasks, or 0 for an empty collection.
func ComputeStats(tasks []Task) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case StatusPending:
			s.Pending++
		case StatusInProgress:
			s.InProgress++
		case StatusCompleted:
			s.Completed++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}
