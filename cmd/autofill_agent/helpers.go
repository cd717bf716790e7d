package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redtoridefire/smart-autofill/internal/config"
	"github.com/redtoridefire/smart-autofill/internal/ingestion"
	"github.com/redtoridefire/smart-autofill/internal/store"
)

// loadConfigFile loads and validates the optional --config file.
func loadConfigFile(path string) (config.Config, error) {
	var cfg config.Config
	if path == "" {
		return cfg, nil
	}
	loaded, err := config.LoadConfig(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return cfg, err
	}
	return *loaded, nil
}

// openStore connects to PostgreSQL when a database URL is configured
// and falls back to the in-memory store otherwise. Memory-backed runs
// are seeded from the config so a single command can work end-to-end
// without a database.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}

	if databaseURL != "" {
		return store.ConnectPostgres(ctx, databaseURL)
	}

	if cfg.Verbose {
		log.Printf("[STORE] no database configured, using in-memory store")
	}
	mem := store.NewMemory()
	if err := seedStore(ctx, mem, cfg); err != nil {
		return nil, err
	}
	return mem, nil
}

// seedStore writes the config-derived profile, settings, and resume
// into a fresh store.
func seedStore(ctx context.Context, st store.Store, cfg *config.Config) error {
	profile := cfg.Profile()
	if !profile.IsEmpty() {
		if err := profile.Validate(); err != nil {
			return err
		}
		if err := st.SaveProfile(ctx, profile); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
	}

	if err := st.SaveSettings(ctx, cfg.Settings()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	if cfg.ResumePath != "" {
		resume, err := ingestion.LoadFile(cfg.ResumePath)
		if err != nil {
			return err
		}
		if err := st.SaveResume(ctx, resume); err != nil {
			return fmt.Errorf("failed to save resume: %w", err)
		}
	}

	return nil
}
