package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/nibzard/taskdash/internal/config"
	"github.com/nibzard/taskdash/internal/logging"
	"github.com/nibzard/taskdash/internal/ui"
)

// tuiCommand runs the interactive dashboard. Its log goes to a per-run file
// so it does not corrupt the screen.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("tui")
	noAlt := fs.Bool("no-alt-screen", false, "Render inline instead of in the alternate screen")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := unexpectedArgs(fs, 0); err != nil {
		return err
	}

	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY (try 'taskdash ls')")
	}

	runLog, err := logging.NewRunLogger(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("creating run log: %w", err)
	}
	defer runLog.Close()
	logger := runLog.Logger(logOptions(cfg))
	logger.Info("dashboard starting", "seed", cfg.SeedFile, "prefs", cfg.PrefsBackend)

	svc, err := openServices(cfg, logger, true)
	if err != nil {
		return err
	}

	storage := openPrefs(cfg, logger)
	defer storage.Close()
	state := openUIState(cfg, storage, logger)
	defer state.Close()

	model := ui.New(ctx, svc.store, state,
		ui.WithLogger(logger),
		ui.WithResetter(svc.facade),
	)
	return ui.RunTUI(ctx, model, ui.WithAltScreen(!*noAlt))
}
