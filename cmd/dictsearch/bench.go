package main

import (
	"fmt"
	"time"

	"github.com/gookit/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/jisho-engine/dictsearch/internal/query"
)

var (
	benchTarget string
	benchRuns   int
)

// benchCmd repeats one query against the built index to measure
// search latency, the runtime counterpart to pkg/ingest's
// BenchmarkIngest (that one times ingestion via `go test -bench`; this
// one times search from the command line against a real built store).
var benchCmd = &cobra.Command{
	Use:   "bench [text]",
	Short: "Repeat a search query and report latency",
	Args:  cobra.ExactArgs(1),
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	benchCmd.Flags().StringVar(&benchTarget, "target", "words", "Search target: words|kanji|sentences|names")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 100, "Number of times to repeat the query")
}

func runBench(cmd *cobra.Command, args []string) error {
	target, err := parseTarget(benchTarget)
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
	parser := query.Parser{DefaultTarget: target, Settings: settings}

	durations := make([]time.Duration, 0, benchRuns)
	var totalResults int
	for i := 0; i < benchRuns; i++ {
		parsed, ok := parser.Parse(args[0])
		if !ok {
			return fmt.Errorf("empty query")
		}
		start := time.Now()
		results, _ := runQueryTarget(storage, parsed, parser, args[0])
		durations = append(durations, time.Since(start))
		totalResults = len(results.Words) + len(results.Kanji) + len(results.Sentences) + len(results.Names)
	}

	report := summarizeDurations(durations)
	color.Info.Printf("ran %d iterations of %q against %s\n", benchRuns, args[0], benchTarget)
	pp.Println(report)
	fmt.Printf("result count (last run): %d\n", totalResults)
	return nil
}

type benchReport struct {
	Runs  int
	Min   time.Duration
	Max   time.Duration
	Mean  time.Duration
	Total time.Duration
}

func summarizeDurations(durations []time.Duration) benchReport {
	report := benchReport{Runs: len(durations)}
	if len(durations) == 0 {
		return report
	}
	report.Min = durations[0]
	report.Max = durations[0]
	for _, d := range durations {
		report.Total += d
		if d < report.Min {
			report.Min = d
		}
		if d > report.Max {
			report.Max = d
		}
	}
	report.Mean = report.Total / time.Duration(len(durations))
	return report
}
