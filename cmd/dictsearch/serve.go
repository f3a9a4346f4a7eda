package main

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jisho-engine/dictsearch/internal/compose"
	"github.com/jisho-engine/dictsearch/internal/httpapi"
)

var listenAddr string

// serveCmd starts the spec.md §6 HTTP API, the cobra-subcommand
// replacement for the teacher's url-fetching default action in
// cmd/readerer/main.go.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dictionary search HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Override the configured listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	db, storage, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := &httpapi.Server{
		Storage:         storage,
		Composer:        &compose.Composer{Storage: storage, AudioRoot: cfg.AudioRoot},
		DefaultSettings: defaultSettings(cfg),
	}

	log.Info().Str("addr", cfg.ListenAddr).Msg("starting dictsearch HTTP API")
	return http.ListenAndServe(cfg.ListenAddr, srv.Router())
}
