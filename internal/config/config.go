// Package config loads the engine's runtime configuration, grounded on
// ca-srg-ragent's internal/config.Load (environment-variable struct
// with a Load function and post-parse validation) combined with the
// ichiran/translitkit pack's `.env`-loading convention
// (joho/godotenv) and its generator's YAML-config convention
// (gopkg.in/yaml.v2) for the optional on-disk config file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/jisho-engine/dictsearch/internal/types"
)

// Config is the engine's full runtime configuration.
type Config struct {
	// DatabasePath is the SQLite file storing the ingested dictionaries.
	DatabasePath string `yaml:"database_path"`
	// ListenAddr is the address the HTTP API binds to, e.g. ":8080".
	ListenAddr string `yaml:"listen_addr"`
	// AudioRoot is the directory pronunciation audio files live under;
	// empty disables audio-path resolution.
	AudioRoot string `yaml:"audio_root"`
	// DefaultLanguage is the fallback preferred language for requests
	// that don't specify one.
	DefaultLanguage types.Language `yaml:"default_language"`
	// ShowEnglish mirrors the user-settings knob spec.md §4.9 names,
	// used as the default when a request doesn't override it.
	ShowEnglish bool `yaml:"show_english"`
	EnglishOnTop bool `yaml:"english_on_top"`
	// PageSize is the default result-page size.
	PageSize int `yaml:"page_size"`
	// SuggestStepBudget and SuggestRelevanceMultiplier tune the
	// suggestion search's prefix-expansion behavior (spec.md §4.7).
	SuggestStepBudget          int     `yaml:"suggest_step_budget"`
	SuggestRelevanceMultiplier float32 `yaml:"suggest_relevance_multiplier"`
}

// defaults mirrors the zero-config behavior a freshly cloned repo
// should have.
func defaults() Config {
	return Config{
		DatabasePath:               "dictsearch.db",
		ListenAddr:                 ":8080",
		DefaultLanguage:            types.LangEnglish,
		ShowEnglish:                true,
		EnglishOnTop:               false,
		PageSize:                   10,
		SuggestStepBudget:          3,
		SuggestRelevanceMultiplier: 0.6,
	}
}

// Load builds the Config by layering, in increasing precedence: the
// built-in defaults, an optional YAML file at path (skipped entirely
// when path is empty or missing), a .env file in the working directory
// if present, then environment variables.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if raw, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		// A malformed .env shouldn't be fatal, only surfaced; matches
		// ragent's "Warning: Error loading .env file" tolerance.
		fmt.Fprintf(os.Stderr, "warning: error loading .env file: %v\n", err)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DICTSEARCH_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("DICTSEARCH_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DICTSEARCH_AUDIO_ROOT"); v != "" {
		cfg.AudioRoot = v
	}
	if v := os.Getenv("DICTSEARCH_DEFAULT_LANGUAGE"); v != "" {
		if lang, ok := types.ParseLanguage(v); ok {
			cfg.DefaultLanguage = lang
		}
	}
	if v := os.Getenv("DICTSEARCH_SHOW_ENGLISH"); v != "" {
		cfg.ShowEnglish = parseBool(v, cfg.ShowEnglish)
	}
	if v := os.Getenv("DICTSEARCH_ENGLISH_ON_TOP"); v != "" {
		cfg.EnglishOnTop = parseBool(v, cfg.EnglishOnTop)
	}
	if v := os.Getenv("DICTSEARCH_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("DICTSEARCH_SUGGEST_STEP_BUDGET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SuggestStepBudget = n
		}
	}
	if v := os.Getenv("DICTSEARCH_SUGGEST_RELEVANCE_MULTIPLIER"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.SuggestRelevanceMultiplier = float32(f)
		}
	}
}

func parseBool(v string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func validate(cfg *Config) error {
	if cfg.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if cfg.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 1
	}
	if cfg.PageSize > 100 {
		cfg.PageSize = 100
	}
	if cfg.SuggestStepBudget < 0 {
		cfg.SuggestStepBudget = 0
	}
	return nil
}
