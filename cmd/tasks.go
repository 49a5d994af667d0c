package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/taskdash/internal/config"
	"github.com/nibzard/taskdash/internal/store"
	"github.com/nibzard/taskdash/internal/todo"
	"github.com/nibzard/taskdash/internal/utils"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var defaultColumns = []string{"id", "status", "title", "createdAt"}

// taskColumns maps a column name to its cell value.
var taskColumns = map[string]func(todo.Task) string{
	"id":          func(t todo.Task) string { return t.ID },
	"title":       func(t todo.Task) string { return t.Title },
	"status":      func(t todo.Task) string { return string(t.Status) },
	"description": func(t todo.Task) string { return t.Description },
	"createdAt":   func(t todo.Task) string { return t.CreatedAt.Format(time.DateTime) },
	"updatedAt":   func(t todo.Task) string { return t.UpdatedAt.Format(time.DateTime) },
}

// lsCommand loads the tasks through the store and prints the visible ones.
func lsCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string, w io.Writer) error {
	fs := newFlagSet("ls")
	statusFlag := fs.String("status", string(store.DefaultStatusFilter), "Filter by status (all|pending|in-progress|completed)")
	search := fs.String("search", "", "Case-insensitive text filter")
	sortFlag := fs.String("sort", string(store.DefaultSortField), "Sort field")
	dirFlag := fs.String("dir", string(store.DefaultSortDirection), "Sort direction (asc|desc)")
	format := fs.String("format", formatText, "Output format (text|json|yaml)")
	columns := fs.String("columns", strings.Join(defaultColumns, ","), "Comma-separated text columns")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs, 1); err != nil {
		return err
	}
	// A positional argument is a status filter, as in "taskdash ls pending".
	if rest := fs.Args(); len(rest) == 1 {
		*statusFlag = rest[0]
	}

	status, ok := todo.ParseStatus(*statusFlag)
	if !ok {
		return fmt.Errorf("invalid status %q (expected all|pending|in-progress|completed)", *statusFlag)
	}
	field, ok := todo.ParseSortField(*sortFlag)
	if !ok {
		return fmt.Errorf("invalid sort field %q", *sortFlag)
	}
	dir, ok := todo.ParseSortDirection(*dirFlag)
	if !ok {
		return fmt.Errorf("invalid sort direction %q (expected asc|desc)", *dirFlag)
	}
	cols, err := parseColumns(*columns)
	if err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	s, err := loadStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	s.SetStatusFilter(status)
	s.SetSearchQuery(*search)
	s.SetSort(field, dir)

	return printTasks(w, s.Visible(), *format, cols)
}

// statsCommand prints aggregate statistics over every task.
func statsCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string, w io.Writer) error {
	fs := newFlagSet("stats")
	format := fs.String("format", formatText, "Output format (text|json|yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs, 0); err != nil {
		return err
	}
	if err := checkFormat(*format); err != nil {
		return err
	}

	s, err := loadStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	stats := s.Stats()

	switch *format {
	case formatJSON:
		return writeJSON(w, stats)
	case formatYAML:
		return yaml.NewEncoder(w).Encode(stats)
	}
	fmt.Fprintf(w, "Total:       %d\n", stats.Total)
	fmt.Fprintf(w, "Pending:     %d\n", stats.Pending)
	fmt.Fprintf(w, "In progress: %d\n", stats.InProgress)
	fmt.Fprintf(w, "Completed:   %d\n", stats.Completed)
	fmt.Fprintf(w, "Completion:  %d%%\n", stats.CompletionRate)
	return nil
}

// searchCommand runs a backend search and prints the matches.
func searchCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string, w io.Writer) error {
	fs := newFlagSet("search")
	format := fs.String("format", formatText, "Output format (text|json|yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("search requires a query")
	}
	if err := checkFormat(*format); err != nil {
		return err
	}
	query := strings.Join(fs.Args(), " ")

	svc, err := openServices(cfg, logger, false)
	if err != nil {
		return err
	}
	res, err := svc.facade.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("searching tasks: %w", err)
	}
	if !res.Success {
		return fmt.Errorf("searching tasks: %s", res.Message)
	}

	if *format == formatText {
		fmt.Fprintln(w, res.Message)
		if len(res.Data) == 0 {
			return nil
		}
		fmt.Fprintln(w)
	}
	return printTasks(w, res.Data, *format, defaultColumns)
}

func loadStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (*store.TaskStore, error) {
	svc, err := openServices(cfg, logger, false)
	if err != nil {
		return nil, err
	}
	if err := svc.store.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	if msg := svc.store.Error(); msg != "" {
		return nil, fmt.Errorf("loading tasks: %s", msg)
	}
	return svc.store, nil
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("invalid format %q (expected text|json|yaml)", format)
}

func parseColumns(s string) ([]string, error) {
	cols := utils.SplitAndTrim(s, ",")
	if len(cols) == 0 {
		return defaultColumns, nil
	}
	for _, c := range cols {
		if _, ok := taskColumns[c]; !ok {
			return nil, fmt.Errorf("unknown column %q", c)
		}
	}
	return cols, nil
}

func printTasks(w io.Writer, tasks []todo.Task, format string, cols []string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, tasks)
	case formatYAML:
		return yaml.NewEncoder(w).Encode(tasks)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(cols...)
	for _, task := range tasks {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = taskColumns[c](task)
		}
		t.Row(row...)
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
