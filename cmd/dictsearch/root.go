// Package main is dictsearch's command-line entry point, built around
// a github.com/spf13/cobra command tree the way ca-srg-ragent's
// cmd/root.go wires its own subcommands, replacing the teacher's
// single flag-based main (cmd/readerer/main.go).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dictsearch",
	Short: "Japanese dictionary search engine",
	Long: `dictsearch indexes JMdict/Kanjidic/JMnedict-style dictionary data
and serves word, kanji, sentence and name lookups over HTTP, a Jotoba-style
search engine reworked from a web-reading-ingestion tool.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(radicalCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(benchCmd)
}
