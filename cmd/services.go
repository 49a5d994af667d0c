package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskdash/internal/api"
	"github.com/nibzard/taskdash/internal/config"
	"github.com/nibzard/taskdash/internal/prefs"
	"github.com/nibzard/taskdash/internal/store"
	"github.com/nibzard/taskdash/internal/todo"
	"github.com/nibzard/taskdash/internal/uistate"
)

// services wires the backend facade and the task store from config.
type services struct {
	facade *api.Facade
	store  *store.TaskStore
}

// openServices seeds the facade from cfg. Simulated latency only applies
// to the interactive dashboard.
func openServices(cfg *config.Config, logger *log.Logger, interactive bool) (*services, error) {
	seed, err := todo.LoadSeed(cfg.SeedFile, todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
	if err != nil {
		return nil, fmt.Errorf("loading seed: %w", err)
	}

	latency := api.NoLatency()
	if interactive {
		latency = api.DefaultLatency().Scale(cfg.LatencyScale)
	}
	facade := api.New(seed, api.WithLatency(latency), api.WithLogger(logger))
	return &services{
		facade: facade,
		store:  store.New(facade, store.WithLogger(logger)),
	}, nil
}

// openPrefs opens the configured preference storage. When it cannot be
// opened the failure is logged and preferences are kept in memory.
func openPrefs(cfg *config.Config, logger *log.Logger) prefs.Storage {
	storage, err := prefs.Open(cfg.PrefsBackend, cfg.StateDir)
	if err != nil {
		logger.Warn("preference storage unavailable, using memory", "backend", cfg.PrefsBackend, "err", err)
		return prefs.NewMemoryStorage()
	}
	return storage
}

func openUIState(cfg *config.Config, storage prefs.Storage, logger *log.Logger) *uistate.State {
	return uistate.New(storage,
		uistate.WithLogger(logger),
		uistate.WithDefaultDuration(cfg.NotificationTimeout()),
	)
}
