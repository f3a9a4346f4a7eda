// Package relevance implements the integer-valued scoring functions of
// spec.md §4.8: foreign-gloss, native-Japanese, kanji-reading and
// suggestion scorers. Every adapter in internal/search/{words,kanji,
// names,sentences,suggest} wires one of these into a task.Scorer.
package relevance

import (
	"regexp"
	"strings"

	"github.com/jisho-engine/dictsearch/internal/types"
)

// matchMode mirrors the original engine's SearchMode distinction between
// an exact gloss match and a substring match; that's all §4.8's divisor
// table actually depends on.
type matchMode int

const (
	modeExact matchMode = iota
	modeSubstring
)

var modeOrder = [...]matchMode{modeExact, modeSubstring}

// GlossMatch describes where and how a query string was found among a
// word's glosses, found by FindGlossMatch.
type GlossMatch struct {
	Mode          matchMode
	CaseIgnored   bool
	Language      types.Language
	InParentheses bool
	SensePos      int // index of the matched gloss within its own sense
	TotalGlosses  int // glosses summed across every sense sharing Language
}

var parenRe = regexp.MustCompile(`\(.*\)`)

// FindGlossMatch searches w's senses for queryStr, trying exact matches
// before substring matches and case-sensitive before case-insensitive,
// per find_reading/find_in_senses. Within a sense, it first searches
// with parenthetical content stripped; a match only found once
// parentheses are restored is reported as InParentheses.
func FindGlossMatch(w types.Word, queryStr string) (GlossMatch, bool) {
	for _, mode := range modeOrder {
		for _, ignoreCase := range [...]bool{false, true} {
			if m, ok := findInSenses(w.Senses, queryStr, mode, ignoreCase); ok {
				return m, true
			}
		}
	}
	return GlossMatch{}, false
}

func findInSenses(senses []types.Sense, queryStr string, mode matchMode, ignoreCase bool) (GlossMatch, bool) {
	for _, sense := range senses {
		pos, inParens, ok := tryFindInSense(sense, queryStr, mode, ignoreCase)
		if !ok {
			continue
		}
		return GlossMatch{
			Mode:          mode,
			CaseIgnored:   ignoreCase,
			Language:      sense.Language,
			InParentheses: inParens,
			SensePos:      pos,
			TotalGlosses:  totalGlossesForLanguage(senses, sense.Language),
		}, true
	}
	return GlossMatch{}, false
}

// tryFindInSense searches with parentheses stripped first; finding the
// query there means the match sits outside any parenthetical aside.
// Only finding it once parentheses are restored reports InParentheses.
func tryFindInSense(sense types.Sense, queryStr string, mode matchMode, ignoreCase bool) (pos int, inParens bool, ok bool) {
	if pos, ok = searchGlosses(sense, queryStr, mode, ignoreCase, true); ok {
		return pos, false, true
	}
	if pos, ok = searchGlosses(sense, queryStr, mode, ignoreCase, false); ok {
		return pos, true, true
	}
	return 0, false, false
}

func searchGlosses(sense types.Sense, queryStr string, mode matchMode, ignoreCase, stripParens bool) (int, bool) {
	for i, g := range sense.Glosses {
		text := g.Text
		if stripParens {
			text = strings.TrimSpace(parenRe.ReplaceAllString(text, ""))
		}
		if strEq(mode, text, queryStr, ignoreCase) {
			return i, true
		}
	}
	return 0, false
}

func strEq(mode matchMode, gloss, query string, ignoreCase bool) bool {
	if ignoreCase {
		gloss, query = strings.ToLower(gloss), strings.ToLower(query)
	}
	if mode == modeExact {
		return gloss == query
	}
	return strings.Contains(gloss, query)
}

func totalGlossesForLanguage(senses []types.Sense, lang types.Language) int {
	n := 0
	for _, s := range senses {
		if s.Language == lang {
			n += len(s.Glosses)
		}
	}
	return n
}

// calcLikeliness is the 0..100 "how early did this gloss appear" weight
// that feeds the foreign-gloss match-quality bonus.
func calcLikeliness(m GlossMatch) int {
	if m.TotalGlosses == 0 {
		return 0
	}
	v := 100 - (m.SensePos*100)/m.TotalGlosses
	if v < 0 {
		v = 0
	}
	return v
}
