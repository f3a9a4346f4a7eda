package relevance

import (
	"math"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/jisho-engine/dictsearch/internal/jptext"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// ForeignGlossScore scores a word matched by a foreign-language gloss
// query, per spec.md §4.8's "Foreign-gloss word scoring" paragraph.
// similarity is an optional vector-space score in [0,1] (0 when none is
// available). resultLanguage is the language the candidate Output was
// produced under; userLang is the searcher's preferred language.
func ForeignGlossScore(w types.Word, queryStr string, resultLanguage, userLang types.Language, similarity float32) int {
	score := int(similarity * 25)

	if w.IsCommon() {
		score += 10
	}
	score += w.JLPTLevel

	if !w.IsKatakanaWord() {
		score += 8
	}

	if resultLanguage == userLang {
		score += 12
	}

	match, ok := FindGlossMatch(w, queryStr)
	if !ok {
		return score
	}

	var divisor int
	switch {
	case match.Mode == modeExact && !match.CaseIgnored:
		divisor = 10
	case match.Mode == modeExact && match.CaseIgnored:
		divisor = 20
	case match.Mode != modeExact && !match.CaseIgnored:
		divisor = 50
	default:
		divisor = 80
	}
	score += calcLikeliness(match) / divisor

	if match.InParentheses {
		penalty := score
		if penalty > 10 {
			penalty = 10
		}
		if penalty < 0 {
			penalty = 0
		}
		score -= penalty
	} else {
		score += 30
	}

	return score
}

// NativeJapaneseScore scores a word matched by a Japanese-language
// query (kanji, kana or meaning), per spec.md §4.8's "Native-Japanese
// word scoring" paragraph.
func NativeJapaneseScore(w types.Word, queryStr string, similarity float32) int {
	score := int(similarity * 10)

	reading := w.Reading
	switch {
	case queryStr == "":
		// No literal to compare against: no exact or prefix bonus.
	case reading.Surface() == queryStr || reading.Kana == queryStr:
		score += 50
		if reading.IsKanaOnly() {
			score += 10
		}
	case strings.HasPrefix(reading.Surface(), queryStr):
		score += 4
	}

	score += w.JLPTLevel * 2

	if w.IsCommon() {
		score += 20
	}

	for _, alt := range w.Alternative {
		if queryStr != "" && alt.Kana == queryStr {
			score += 45
			break
		}
	}

	return score
}

// formatKanjiReadingQuery strips the JMdict okurigana/affix punctuation
// ('.' marks the okurigana boundary, '-' marks a prefix/suffix reading)
// so the requested reading compares cleanly against a word's plain kana
// reading.
func formatKanjiReadingQuery(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}

func isAllHiragana(s string) bool {
	found := false
	for _, r := range s {
		if r == '.' || r == '-' {
			continue
		}
		if !jptext.IsHiragana(r) {
			return false
		}
		found = true
	}
	return found
}

// KanjiReadingScore scores a word matched by a kanji-reading query
// (e.g. "生 い"), per spec.md §4.8's "Kanji-reading word scoring"
// paragraph. rawReading is the requested reading exactly as parsed by
// the query layer (query.KanjiReading.Reading), punctuation included.
func KanjiReadingScore(w types.Word, rawReading string, similarity float32) int {
	score := int(similarity * 25)

	formatted := formatKanjiReadingQuery(rawReading)
	kanaReading := w.Reading.Kana

	if isAllHiragana(rawReading) {
		// Kun reading: only a direct match counts, and not when the
		// stored reading is a bound prefix/suffix form.
		if kanaReading == formatted &&
			!strings.HasPrefix(rawReading, "-") && !strings.HasSuffix(rawReading, "-") {
			score += 20
		}
	} else {
		// On reading: compare hiragana-normalized forms.
		kanaHira := jptext.ToHiragana(kanaReading)
		formattedHira := jptext.ToHiragana(formatted)
		switch {
		case kanaHira == formattedHira:
			score += 100
		case formattedHira != "" && strings.Contains(kanaHira, formattedHira):
			score += (20 - levenshtein.Distance(kanaHira, formattedHira, nil)) * 2
		}
	}

	if w.IsCommon() {
		score += 8
	}
	score += w.JLPTLevel

	return score
}

// suggestionRomajiPenalty is the small handicap applied to suggestions
// reached only via the romaji->hiragana parallel attempt (§4.1), so
// native-script hits always outrank their romaji-derived duplicates.
const suggestionRomajiPenalty = 20

// SuggestionScore scores one suggestion candidate, per spec.md §4.8's
// "Suggestions" paragraph. primaryText is the candidate's primary
// display text, occurrences its corpus frequency, fromRomaji marks a
// candidate surfaced through the romaji-conversion path rather than a
// direct index hit.
func SuggestionScore(primaryText, queryStr string, occurrences int, fromRomaji bool) int {
	var score int
	if primaryText == queryStr {
		score = 400
	} else {
		score = int(math.Log2(float64(occurrences+1)*4)) + 65
	}
	if fromRomaji {
		score -= suggestionRomajiPenalty
	}
	return score
}
