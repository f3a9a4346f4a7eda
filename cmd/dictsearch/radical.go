package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/jisho-engine/dictsearch/internal/search/radical"
)

// radicalCmd runs the C7 radical composer (spec.md §4.7/§6's
// POST /api/radical) from the command line, taking each positional
// argument as one radical literal.
var radicalCmd = &cobra.Command{
	Use:   "radical [radical...]",
	Short: "Find kanji composed from the given radicals",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRadical,
}

func init() {
	radicalCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
}

func runRadical(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, storage, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var radicals []rune
	for _, arg := range args {
		for _, r := range arg {
			radicals = append(radicals, r)
		}
	}

	resp, err := radical.Lookup(storage, radicals)
	if err != nil {
		return err
	}

	strokeCounts := make([]int, 0, len(resp.KanjiByStrokeCount))
	for n := range resp.KanjiByStrokeCount {
		strokeCounts = append(strokeCounts, n)
	}
	sort.Ints(strokeCounts)

	for _, n := range strokeCounts {
		color.Secondary.Println(strconv.Itoa(n) + " strokes:")
		for _, k := range resp.KanjiByStrokeCount[n] {
			fmt.Printf("  %c\n", k)
		}
	}

	if len(resp.PossibleRadicals) > 0 {
		color.Info.Print("possible further radicals: ")
		for _, r := range resp.PossibleRadicals {
			fmt.Printf("%c ", r)
		}
		fmt.Println()
	}
	return nil
}

