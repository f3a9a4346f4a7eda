// Package radical implements the radical composition lookup of
// spec.md §4.7's final paragraph: given a requested radical set, find
// every kanji built from all of them and report which further radicals
// remain selectable. It is a plain set-intersection query over
// internal/store, not a ranked task.Engine adapter — there is no query
// string to score, only a structured radical list.
package radical

import (
	"errors"
	"sort"

	"github.com/jisho-engine/dictsearch/internal/jptext"
	"github.com/jisho-engine/dictsearch/internal/store"
)

// MaxRequestRadicals caps the size of one lookup request, per
// original_source/src/web/api/radical.rs's MAX_REQUEST_RADICALS.
const MaxRequestRadicals = 12

var (
	// ErrNoRadicals is returned when the request filters down to an
	// empty radical set (all inputs were duplicates or non-radicals).
	ErrNoRadicals = errors.New("radical: request contains no valid radicals")
	// ErrTooManyRadicals is returned when more than MaxRequestRadicals
	// distinct radicals remain after filtering.
	ErrTooManyRadicals = errors.New("radical: too many radicals requested")
)

// Response is the payload of a radical composition lookup.
type Response struct {
	// KanjiByStrokeCount groups matching kanji literals by stroke
	// count, mirroring the original endpoint's HashMap<i32, Vec<char>>.
	KanjiByStrokeCount map[int][]rune
	// PossibleRadicals are the radicals that appear in the
	// decomposition of at least one matching kanji and were not
	// already part of the request.
	PossibleRadicals []rune
}

// Lookup validates radicals (dropping duplicates and non-radical
// runes), finds every kanji whose decomposition contains all of them,
// and computes the still-selectable radical set.
func Lookup(storage *store.Storage, radicals []rune) (Response, error) {
	filtered := validate(radicals)
	if len(filtered) == 0 {
		return Response{}, ErrNoRadicals
	}
	if len(filtered) > MaxRequestRadicals {
		return Response{}, ErrTooManyRadicals
	}

	literals := storage.Radicals().KanjiByRadicals(filtered)

	byStroke := make(map[int][]rune)
	for _, lit := range literals {
		k, ok := storage.Kanji(lit)
		if !ok {
			continue
		}
		r := []rune(lit)
		if len(r) == 0 {
			continue
		}
		byStroke[k.StrokeCount] = append(byStroke[k.StrokeCount], r[0])
	}

	return Response{
		KanjiByStrokeCount: byStroke,
		PossibleRadicals:   possibleRadicals(storage, literals, filtered),
	}, nil
}

// validate filters radicals down to distinct runes that jptext.IsRadical
// accepts (radical-block code points or kanji), in first-appearance order.
func validate(radicals []rune) []rune {
	seen := make(map[rune]struct{}, len(radicals))
	var out []rune
	for _, r := range radicals {
		if !jptext.IsRadical(r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// possibleRadicals collects every radical appearing in the
// decomposition of a matching kanji, excluding ones already requested.
func possibleRadicals(storage *store.Storage, kanjiLiterals []string, requested []rune) []rune {
	excluded := make(map[rune]struct{}, len(requested))
	for _, r := range requested {
		excluded[r] = struct{}{}
	}

	seen := make(map[rune]struct{})
	var out []rune
	for _, lit := range kanjiLiterals {
		k, ok := storage.Kanji(lit)
		if !ok {
			continue
		}
		for _, part := range k.Decomposition {
			for _, r := range part {
				if _, ok := excluded[r]; ok {
					continue
				}
				if _, ok := seen[r]; ok {
					continue
				}
				seen[r] = struct{}{}
				out = append(out, r)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
