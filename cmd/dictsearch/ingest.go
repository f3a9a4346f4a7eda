package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jisho-engine/dictsearch/internal/ingest"
	"github.com/jisho-engine/dictsearch/internal/store"
)

var (
	ingestWordsPath          string
	ingestKanjiPath          string
	ingestNamesPath          string
	ingestSentencesPath      string
	ingestDecompositionsPath string
	ingestWorkers            int
	ingestDownload           bool
)

// ingestCmd runs the offline dictionary-build pipeline (spec.md §5.5),
// the cobra-subcommand successor to cmd/readerer's -import-dict flag.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build the SQLite dictionary store from JMdict/Kanjidic/JMnedict-style JSON artifacts",
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	ingestCmd.Flags().StringVar(&ingestKanjiPath, "kanji", "", "Path to a kanjidic2-simplified JSON file (ingest this before --words, for furigana)")
	ingestCmd.Flags().StringVar(&ingestWordsPath, "words", "", "Path to a jmdict-simplified JSON file")
	ingestCmd.Flags().StringVar(&ingestNamesPath, "names", "", "Path to a jmnedict-simplified JSON file")
	ingestCmd.Flags().StringVar(&ingestSentencesPath, "sentences", "", "Path to an example-sentence corpus JSON file")
	ingestCmd.Flags().StringVar(&ingestDecompositionsPath, "decompositions", "", "Path to a KRADFILE-style kanji decomposition JSON file")
	ingestCmd.Flags().IntVar(&ingestWorkers, "workers", 0, "Number of concurrent transform workers (0 = default)")
	ingestCmd.Flags().BoolVar(&ingestDownload, "download", false, "Auto-download missing --words/--kanji/--names files from the latest jmdict-simplified release")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open database %s: %w", cfg.DatabasePath, err)
	}
	defer db.Close()
	if err := store.InitStorage(db); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	logger := log.Logger
	p := &ingest.Pipeline{DB: db, Workers: ingestWorkers, Logger: &logger}
	ctx := context.Background()

	if ingestDownload {
		if ingestKanjiPath != "" {
			if err := ingest.EnsureArtifact(ctx, "kanjidic2", ingestKanjiPath); err != nil {
				return fmt.Errorf("download kanji artifact: %w", err)
			}
		}
		if ingestWordsPath != "" {
			if err := ingest.EnsureArtifact(ctx, "jmdict-eng", ingestWordsPath); err != nil {
				return fmt.Errorf("download words artifact: %w", err)
			}
		}
		if ingestNamesPath != "" {
			if err := ingest.EnsureArtifact(ctx, "jmnedict", ingestNamesPath); err != nil {
				return fmt.Errorf("download names artifact: %w", err)
			}
		}
	}

	// Kanji first: toWord's furigana derivation reads committed kanji
	// readings, so ingesting kanji before words lets word furigana
	// resolve even on a from-scratch database.
	if ingestKanjiPath != "" {
		n, err := p.IngestKanji(ctx, ingestKanjiPath)
		if err != nil {
			return fmt.Errorf("ingest kanji: %w", err)
		}
		fmt.Printf("ingested %d kanji\n", n)
	}
	if ingestDecompositionsPath != "" {
		n, err := p.IngestDecompositions(ctx, ingestDecompositionsPath)
		if err != nil {
			return fmt.Errorf("ingest decompositions: %w", err)
		}
		fmt.Printf("ingested %d kanji decompositions\n", n)
	}
	if ingestWordsPath != "" {
		n, err := p.IngestWords(ctx, ingestWordsPath)
		if err != nil {
			return fmt.Errorf("ingest words: %w", err)
		}
		fmt.Printf("ingested %d words\n", n)
	}
	if ingestNamesPath != "" {
		n, err := p.IngestNames(ctx, ingestNamesPath)
		if err != nil {
			return fmt.Errorf("ingest names: %w", err)
		}
		fmt.Printf("ingested %d names\n", n)
	}
	if ingestSentencesPath != "" {
		n, err := p.IngestSentences(ctx, ingestSentencesPath)
		if err != nil {
			return fmt.Errorf("ingest sentences: %w", err)
		}
		fmt.Printf("ingested %d sentences\n", n)
	}

	return nil
}
