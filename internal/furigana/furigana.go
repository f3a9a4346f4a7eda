// Package furigana aligns a kanji surface with its kana reading and
// produces the bit-exact bracketed encoding described in spec.md §6:
// a flat string interleaving kana-only runs and `[kanji|reading]` blocks,
// with per-kanji reading splits joined by `|` when alignment succeeds.
package furigana

import (
	"errors"
	"strings"

	"github.com/jisho-engine/dictsearch/internal/jptext"
)

var (
	errUnterminatedBlock = errors.New("furigana: unterminated block")
	errMalformedBlock    = errors.New("furigana: malformed block")
)

// Part is a single sentence part: either a kana-only run (Kanji == "")
// or a kanji run tagged with its kana reading(s).
type Part struct {
	Kana  string
	Kanji string
}

// HasKanji reports whether the part carries a kanji surface.
func (p Part) HasKanji() bool { return p.Kanji != "" }

// Generate encodes the furigana string for kanji/kana, falling back to a
// single whole-string block if per-kanji alignment fails or the result
// fails the round-trip post-check (spec.md §4.2 step 4).
func Generate(retrieve ReadingRetriever, kanji, kana string) string {
	s := tryGenerate(retrieve, kanji, kana)
	if s == "" {
		return block(kanji, kana)
	}

	parsed, err := Parse(s)
	if err != nil {
		return block(kanji, kana)
	}
	var sb strings.Builder
	for _, p := range parsed {
		sb.WriteString(p.Kana)
	}
	if jptext.ToHiragana(sb.String()) != jptext.ToHiragana(kana) {
		return block(kanji, kana)
	}
	return s
}

// tryGenerate performs the unchecked alignment; returns "" on any
// alignment failure.
func tryGenerate(retrieve ReadingRetriever, kanji, kana string) string {
	chunks := mapReadings(kanji, kana)
	if chunks == nil {
		return ""
	}

	chunkIdx := 0
	var sb strings.Builder
	for _, part := range jptext.TextParts(kanji) {
		if !jptext.HasKanji(part) {
			sb.WriteString(part)
			continue
		}

		if chunkIdx >= len(chunks) {
			return ""
		}
		chunk := chunks[chunkIdx]
		chunkIdx++

		literals := []rune(chunk.kanji)
		if len(literals) >= 2 {
			if readings := disambiguateLiterals(retrieve, chunk.kanji, chunk.kana); readings != nil && len(readings) == len(literals) {
				sb.WriteString(block(chunk.kanji, strings.Join(readings, "|")))
				continue
			}
		}
		sb.WriteString(block(chunk.kanji, chunk.kana))
	}

	if chunkIdx != len(chunks) {
		return ""
	}
	return sb.String()
}

func block(kanji, kana string) string {
	return "[" + kanji + "|" + kana + "]"
}

// Encode renders a pre-computed part list back into the bracket format.
func Encode(parts []Part) string {
	var sb strings.Builder
	for _, p := range parts {
		if p.HasKanji() {
			sb.WriteString(block(p.Kanji, p.Kana))
		} else {
			sb.WriteString(p.Kana)
		}
	}
	return sb.String()
}

// Parse decodes a furigana-encoded string into its parts. It accepts
// both the per-kanji `[kanji|r1|r2|...|rn]` shape and the single-block
// `[kanji|r]` fallback shape (spec.md §6).
func Parse(s string) ([]Part, error) {
	var parts []Part
	runes := []rune(s)
	i := 0
	var plain strings.Builder

	flushPlain := func() {
		if plain.Len() > 0 {
			parts = append(parts, Part{Kana: plain.String()})
			plain.Reset()
		}
	}

	for i < len(runes) {
		if runes[i] != '[' {
			plain.WriteRune(runes[i])
			i++
			continue
		}
		end := indexRune(runes, i, ']')
		if end < 0 {
			return nil, errUnterminatedBlock
		}
		flushPlain()
		body := string(runes[i+1 : end])
		segs := strings.Split(body, "|")
		if len(segs) < 2 {
			return nil, errMalformedBlock
		}
		kanjiRun := segs[0]
		readings := segs[1:]
		kanjiLiterals := []rune(kanjiRun)

		if len(readings) == len(kanjiLiterals) && len(kanjiLiterals) > 1 {
			for idx, lit := range kanjiLiterals {
				parts = append(parts, Part{Kanji: string(lit), Kana: readings[idx]})
			}
		} else {
			parts = append(parts, Part{Kanji: kanjiRun, Kana: strings.Join(readings, "|")})
		}
		i = end + 1
	}
	flushPlain()
	return parts, nil
}

func indexRune(runes []rune, from int, target rune) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == target {
			return i
		}
	}
	return -1
}
