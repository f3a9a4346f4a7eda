package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/jisho-engine/dictsearch/internal/compose"
	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/search/kanji"
	"github.com/jisho-engine/dictsearch/internal/search/names"
	"github.com/jisho-engine/dictsearch/internal/search/sentences"
	"github.com/jisho-engine/dictsearch/internal/search/task"
	"github.com/jisho-engine/dictsearch/internal/search/words"
	"github.com/jisho-engine/dictsearch/internal/store"
)

var (
	queryTarget string
	queryPage   int
	queryJSON   bool
	queryDebug  bool
)

// queryCmd runs one search against the built index from the command
// line, following the pretty-printed/colored-output convention
// go-ichiran's and translitkit's CLIs use (github.com/gookit/color for
// status lines, github.com/k0kubun/pp for structured dumps).
var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Search the dictionary once and print the results",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	queryCmd.Flags().StringVar(&queryTarget, "target", "words", "Search target: words|kanji|sentences|names")
	queryCmd.Flags().IntVar(&queryPage, "page", 0, "Result page")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "Print the composed response as JSON")
	queryCmd.Flags().BoolVar(&queryDebug, "debug", false, "Pretty-print the raw task results before composing")
}

func parseTarget(s string) (query.SearchTarget, error) {
	switch s {
	case "", "words", "word":
		return query.TargetWords, nil
	case "kanji":
		return query.TargetKanji, nil
	case "sentences", "sentence":
		return query.TargetSentences, nil
	case "names", "name":
		return query.TargetNames, nil
	default:
		return 0, fmt.Errorf("unknown target %q (want words|kanji|sentences|names)", s)
	}
}

func runQuery(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(queryTarget)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, storage, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	settings := defaultSettings(cfg)
	parser := query.Parser{DefaultTarget: target, Settings: settings, Page: queryPage}
	parsed, ok := parser.Parse(args[0])
	if !ok {
		return fmt.Errorf("empty query")
	}

	results, guess := runQueryTarget(storage, parsed, parser, args[0])
	if queryDebug {
		color.Info.Println("raw task results:")
		pp.Println(results)
	}

	composer := compose.Composer{Storage: storage, AudioRoot: cfg.AudioRoot}
	resp := composer.Compose(parsed, results)
	resp.Guess = guess

	if queryJSON {
		enc, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(enc))
		return nil
	}

	printResponse(resp)
	return nil
}

// runQueryTarget mirrors internal/httpapi.Server.runSearch's
// per-target adapter dispatch so the CLI exercises the same C7
// adapters the HTTP API does, rather than a parallel code path.
func runQueryTarget(storage *store.Storage, q query.Query, parser query.Parser, raw string) (compose.TaskResults, *task.Guess) {
	var results compose.TaskResults
	var guess task.Guess

	switch q.Target {
	case query.TargetKanji:
		t := kanji.New(storage, parser, q.Settings.PreferredLanguage, raw)
		outs, _ := t.Find()
		for _, literal := range outs {
			if k, ok := storage.Kanji(literal); ok {
				results.Kanji = append(results.Kanji, k)
			}
		}
		guess = t.EstimateResultCount()
	case query.TargetSentences:
		t := sentences.New(storage, parser, q.Settings.PreferredLanguage, raw)
		outs, _ := t.Find()
		for _, id := range outs {
			if sent, ok := storage.Sentence(id); ok {
				results.Sentences = append(results.Sentences, sent)
			}
		}
		guess = t.EstimateResultCount()
	case query.TargetNames:
		t := names.New(storage, parser, q.Settings.PreferredLanguage, raw)
		outs, _ := t.Find()
		for _, seq := range outs {
			if n, ok := storage.Name(seq); ok {
				results.Names = append(results.Names, n)
			}
		}
		guess = t.EstimateResultCount()
	default:
		t := words.New(storage, parser, q.Settings.PreferredLanguage, raw)
		outs, _ := t.Find()
		for _, seq := range outs {
			if w, ok := storage.Word(seq); ok {
				results.Words = append(results.Words, w)
			}
		}
		guess = t.EstimateResultCount()
	}

	return results, &guess
}

func printResponse(resp compose.Response) {
	if resp.Guess != nil {
		color.Info.Printf("estimated results: %d\n", resp.Guess.Count)
	}
	for i, w := range resp.Words {
		color.Secondary.Printf("%d. ", i+1)
		reading := w.Reading.Kana
		if w.Reading.Kanji != "" {
			reading = w.Reading.Kanji + " (" + w.Reading.Kana + ")"
		}
		fmt.Println(reading)
		for _, sense := range w.Senses {
			fmt.Printf("   - %s\n", strings.Join(sense.Glosses, "; "))
		}
	}
	for _, k := range resp.Kanji {
		color.Success.Println(k.Literal + " — " + joinFirst(k.Meanings))
	}
	for _, s := range resp.Sentences {
		fmt.Println(s.Japanese)
	}
	for _, n := range resp.Names {
		fmt.Println(n.Reading.Kanji, n.Reading.Kana)
	}
}

func joinFirst(meanings []string) string {
	if len(meanings) == 0 {
		return ""
	}
	return meanings[0]
}
