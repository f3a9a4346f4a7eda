package main

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jisho-engine/dictsearch/internal/config"
	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/store"
)

var configPath string

// openStorage loads cfg's database and builds the in-memory Storage
// every subcommand searches against, following internal/store.New +
// Storage.Load's "load once at startup" contract.
func openStorage(cfg *config.Config) (*sql.DB, *store.Storage, error) {
	db, err := sql.Open("sqlite3", cfg.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database %s: %w", cfg.DatabasePath, err)
	}
	if err := store.InitStorage(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init schema: %w", err)
	}

	s := store.New()
	if err := s.Load(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("load storage: %w", err)
	}
	return db, s, nil
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

func defaultSettings(cfg *config.Config) query.Settings {
	return query.Settings{
		PreferredLanguage: cfg.DefaultLanguage,
		ShowEnglish:       cfg.ShowEnglish,
		PageSize:          cfg.PageSize,
		EnglishOnTop:      cfg.EnglishOnTop,
	}
}
