package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nibzard/taskdash/internal/config"
	"github.com/nibzard/taskdash/internal/logging"
)

// tailCommand tails the latest dashboard log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string, w io.Writer) error {
	fs := newFlagSet("tail")
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	list := fs.Bool("list", false, "List recorded runs instead of tailing")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs, 0); err != nil {
		return err
	}

	// Find the log directory
	workDir := cfg.ProjectRoot
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, workDir)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	if *list {
		runs, err := logging.FindLogRuns(logDir)
		if err != nil {
			return fmt.Errorf("listing runs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(w, "No log files found.")
			return nil
		}
		for _, run := range runs {
			fmt.Fprintf(w, "%-28s %8d bytes  %s\n", run.RunID, run.Size, run.ModTime.Format(time.DateTime))
		}
		return nil
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}

	if logPath == "" {
		fmt.Fprintln(w, "No log files found.")
		return nil
	}

	fmt.Fprintf(w, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(w, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(w)

	return logging.TailLog(ctx, w, logPath, *n, *follow)
}
