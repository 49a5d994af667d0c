package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nibzard/taskdash/internal/config"
	"github.com/nibzard/taskdash/internal/prefs"
	"github.com/nibzard/taskdash/internal/statedir"
	"github.com/nibzard/taskdash/internal/todo"
)

// doctorCommand checks that the dashboard can start with the current config.
func doctorCommand(cfg *config.Config, globalArgs, args []string, w io.Writer) error {
	fs := newFlagSet("doctor")
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs, 0); err != nil {
		return err
	}

	fmt.Fprintln(w, "Taskdash Doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	// Check project root
	fmt.Fprintf(w, "Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Check config
	withSources, err := config.LoadWithSources(newFlagSet("doctor"), globalArgs)
	fmt.Fprintln(w, "Config:")
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else if path := withSources.GetConfigFile(); path != "" {
		fmt.Fprintf(w, "  ✅ File: %s\n", path)
	} else {
		fmt.Fprintln(w, "  ✅ File: (none, using defaults)")
	}
	fmt.Fprintf(w, "  ✅ Latency scale: %v\n", cfg.LatencyScale)
	if timeout := cfg.NotificationTimeout(); timeout > 0 {
		fmt.Fprintf(w, "  ✅ Notification timeout: %s\n", timeout)
	} else {
		fmt.Fprintln(w, "  ✅ Notification timeout: (persistent)")
	}
	fmt.Fprintln(w)

	// Check state directory
	fmt.Fprintf(w, "State directory: %s\n", cfg.StateDir)
	if info, err := os.Stat(cfg.StateDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (created on first preference change)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(w, "  ❌ Not a directory")
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Check preference storage
	fmt.Fprintf(w, "Preferences (%s):\n", cfg.PrefsBackend)
	if !checkPrefs(w, cfg) {
		allOK = false
	}
	fmt.Fprintln(w)

	// Check seed file
	var tasks []todo.Task
	if cfg.SeedFile == "" {
		tasks = todo.SeedTasks()
		fmt.Fprintln(w, "Seed file: (built-in sample tasks)")
		fmt.Fprintf(w, "  ✅ %d tasks\n", len(tasks))
	} else {
		fmt.Fprintf(w, "Seed file: %s\n", cfg.SeedFile)
		var ok bool
		tasks, ok = checkSeed(w, cfg)
		if !ok {
			allOK = false
		}
	}
	fmt.Fprintln(w)

	if cfg.SchemaFile != "" {
		fmt.Fprintf(w, "Schema file: %s\n", cfg.SchemaFile)
		if _, err := os.Stat(cfg.SchemaFile); err != nil {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
		fmt.Fprintln(w)
	}

	// Check log directory
	fmt.Fprintf(w, "Log directory: %s\n", cfg.LogDir)
	if _, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (created when the dashboard starts)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	if *verbose {
		if len(tasks) > 0 {
			fmt.Fprintln(w, "Tasks:")
			for _, t := range tasks {
				fmt.Fprintf(w, "  - %s [%s] %s\n", t.ID, t.Status, t.Title)
			}
			fmt.Fprintln(w)
		}
		if withSources != nil {
			fmt.Fprintln(w, "Config sources:")
			for _, field := range config.ConfigFields() {
				source := withSources.Sources[field]
				if source == "" {
					source = config.SourceDefault
				}
				fmt.Fprintf(w, "  %-24s %-32s (%s)\n", field, configValue(withSources.Config, field), source)
			}
			fmt.Fprintln(w)
		}
	}

	// Overall status
	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. The dashboard may not work correctly.")
	return fmt.Errorf("doctor checks failed")
}

func checkPrefs(w io.Writer, cfg *config.Config) bool {
	if path := statedir.PrefsPath(cfg.StateDir, cfg.PrefsBackend); path != "" {
		fmt.Fprintf(w, "  Path: %s\n", path)
	}
	storage, err := prefs.Open(cfg.PrefsBackend, cfg.StateDir)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	defer storage.Close()

	keys, err := storage.Keys()
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  ✅ OK (%d stored)\n", len(keys))
	return true
}

func checkSeed(w io.Writer, cfg *config.Config) ([]todo.Task, bool) {
	if _, err := os.Stat(cfg.SeedFile); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return nil, false
	}
	file, err := todo.Load(cfg.SeedFile)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return nil, false
	}

	result := file.Validate(todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  ⚠️  %s\n", warning)
	}
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, err := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", err)
		}
		return nil, false
	}
	if result.UsedSchema {
		fmt.Fprintf(w, "  ✅ Valid (%d tasks, schema checked)\n", len(file.Tasks))
	} else {
		fmt.Fprintf(w, "  ✅ Valid (%d tasks)\n", len(file.Tasks))
	}
	return file.Tasks, true
}

// configValue renders the value of a config field for display.
func configValue(cfg *config.Config, field string) string {
	switch field {
	case "seed_file":
		return orNone(cfg.SeedFile)
	case "schema_file":
		return orNone(cfg.SchemaFile)
	case "state_dir":
		return cfg.StateDir
	case "prefs_backend":
		return cfg.PrefsBackend
	case "latency_scale":
		return strconv.FormatFloat(cfg.LatencyScale, 'g', -1, 64)
	case "notification_timeout_ms":
		return strconv.Itoa(cfg.NotificationTimeoutMs)
	case "log_dir":
		return cfg.LogDir
	case "log_level":
		return cfg.LogLevel
	case "log_format":
		return cfg.LogFormat
	case "log_timestamps":
		return strconv.FormatBool(cfg.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(cfg.LogCaller)
	}
	return ""
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
