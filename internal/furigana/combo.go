package furigana

import (
	"sort"
	"strings"

	"github.com/jisho-engine/dictsearch/internal/jptext"
)

// ReadingRetriever resolves a single kanji literal to its kun and on
// readings (as stored in the kanji dictionary, before normalization).
// ok is false if the literal is not a known kanji.
type ReadingRetriever func(literal string) (kun, on []string, ok bool)

// route is one partial path through the breadth-first reading expansion:
// how many literals have been assigned a reading, which readings were
// chosen, and the kana still left to consume.
type route struct {
	pos      int
	readings []string
	tail     string
}

// disambiguateLiterals resolves a (kanjiRun, kanaChunk) pair with two or
// more kanji literals to a per-literal reading split, using a bounded BFS
// over partial routes. Returns nil if zero or more than one completion
// exists.
func disambiguateLiterals(retrieve ReadingRetriever, kanjiRun, kanaChunk string) []string {
	literals := []rune(kanjiRun)
	if len(literals) < 2 {
		return nil
	}

	candidates := make([][]string, len(literals))
	for i, lit := range literals {
		kun, on, ok := retrieve(string(lit))
		if !ok {
			candidates[i] = nil
			continue
		}
		set := map[string]struct{}{}
		for _, r := range kun {
			set[normalizeReadingEntry(r)] = struct{}{}
		}
		for _, r := range on {
			set[normalizeReadingEntry(r)] = struct{}{}
		}
		list := make([]string, 0, len(set))
		for r := range set {
			if r != "" {
				list = append(list, r)
			}
		}
		sort.Strings(list)
		candidates[i] = list
	}

	routes := []route{{pos: 0, readings: nil, tail: kanaChunk}}

	for i := range literals {
		var next []route
		var atPos []route
		for _, r := range routes {
			if r.pos == i {
				atPos = append(atPos, r)
			} else {
				next = append(next, r)
			}
		}
		if len(atPos) == 0 {
			return nil
		}
		if i == len(literals)-1 && len(candidates[i]) == 0 {
			// Keep these routes for the last-literal fallback below.
			next = append(next, atPos...)
		}

		for _, r := range atPos {
			for _, cand := range candidates[i] {
				if strings.HasPrefix(jptext.ToHiragana(r.tail), jptext.ToHiragana(cand)) {
					newReadings := append(append([]string{}, r.readings...), cand)
					next = append(next, route{
						pos:      i + 1,
						readings: newReadings,
						tail:     r.tail[len(cand):],
					})
				}
			}
		}
		routes = next
	}

	var completed []route
	for _, r := range routes {
		if r.pos == len(literals) && r.tail == "" {
			completed = append(completed, r)
		}
	}

	if len(completed) == 0 {
		// Fallback: if exactly one route reached the last literal with all
		// prior literals consumed and only the final literal unassigned,
		// and it consumed readings for every literal but the last, assign
		// whatever kana remains to the last literal.
		var atLast []route
		for _, r := range routes {
			if r.pos == len(literals)-1 {
				atLast = append(atLast, r)
			}
		}
		if len(atLast) == 1 {
			r := atLast[0]
			candidate := append(append([]string{}, r.readings...), r.tail)
			if strings.Join(candidate, "") == kanaChunk {
				completed = []route{{pos: len(literals), readings: candidate, tail: ""}}
			}
		}
	}

	if len(completed) != 1 {
		return nil
	}
	return completed[0].readings
}
