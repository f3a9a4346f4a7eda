package furigana

import (
	"strings"

	"github.com/jisho-engine/dictsearch/internal/jptext"
)

// kanaChunk pairs a run of kanji (plus any attached symbols/roman letters)
// with the kana substring that reads it.
type kanaChunk struct {
	kanji string
	kana  string
}

// isKanjiRunRune reports whether r belongs to a "kanji run" as understood
// by the alignment algorithm: kanji itself, or the symbols/roman letters
// that can appear glued to a kanji compound (e.g. "１つ" or "Tシャツ").
func isKanjiRunRune(r rune) bool {
	return jptext.IsKanji(r) || jptext.IsRomanLetter(r) || jptext.IsSymbol(r)
}

// mapReadings walks kanji and kana in lock-step, splitting kanji into
// alternating (kanji-run, attached-okurigana) groups and using each
// okurigana group as a literal anchor to discover how much of kana the
// preceding kanji run consumes. Returns nil if no consistent alignment
// can be found.
func mapReadings(kanji, kana string) []kanaChunk {
	kanaRunes := []rune{}
	for _, r := range kana {
		if !jptext.IsSymbol(r) {
			kanaRunes = append(kanaRunes, r)
		}
	}
	kanjiRunes := []rune(kanji)

	kanaPos := stripUntilKanji(kanjiRunes)
	kIdx := kanaPos // index into kanjiRunes of the first kanji-run rune

	var result []kanaChunk

	for {
		if kanaPos >= len(kanaRunes) {
			break
		}
		currKana := kanaRunes[kanaPos:]

		partKanji, partKana, consumed := toNextKanji(kanjiRunes[kIdx:])

		if len(partKana) == 0 {
			// trailing kanji run with no following okurigana: it consumes
			// whatever kana remains.
			result = append(result, kanaChunk{
				kanji: string(partKanji),
				kana:  string(currKana),
			})
			break
		}

		hasMoreKanjiAfter := hasKanjiAfter(kanjiRunes[kIdx:], consumed)

		var currKanji []rune
		found := false
		counter := 1
		for {
			if kanaPos >= len(kanaRunes) {
				break
			}
			currKanji = append(currKanji, kanaRunes[kanaPos])
			kanaPos++

			if counter < len(partKanji) {
				counter++
				continue
			}

			if startsWith(currKana, currKanji, partKana, !hasMoreKanjiAfter) {
				found = true
				break
			}

			if len(currKanji) >= len(currKana) || kanaPos >= len(kanaRunes) {
				break
			}
			counter++
		}

		if !found {
			return nil
		}

		result = append(result, kanaChunk{
			kanji: string(partKanji),
			kana:  string(currKanji),
		})

		kIdx += consumed + len(partKana)
		kanaPos += len(partKana)
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// toNextKanji returns the kanji-run runes starting at the front of r, the
// kana runes immediately following that run (the "okurigana anchor"),
// and the count of runes consumed for the kanji run itself.
func toNextKanji(r []rune) (kanjiPart, kanaPart []rune, consumed int) {
	i := 0
	for i < len(r) && isKanjiRunRune(r[i]) && !jptext.IsKana(r[i]) {
		i++
	}
	kanjiPart = r[:i]
	consumed = i
	j := i
	for j < len(r) && jptext.IsKana(r[j]) {
		j++
	}
	kanaPart = r[i:j]
	return
}

// hasKanjiAfter reports whether r has any kanji/roman-letter runes after offset.
func hasKanjiAfter(r []rune, offset int) bool {
	if offset >= len(r) {
		return false
	}
	for _, c := range r[offset:] {
		if jptext.IsKanji(c) || jptext.IsRomanLetter(c) {
			return true
		}
	}
	return false
}

// startsWith reports whether arr starts with a followed by b (hiragana
// normalized). If last is true, a+b must cover arr exactly.
func startsWith(arr, a, b []rune, last bool) bool {
	if last {
		if len(a)+len(b) != len(arr) {
			return false
		}
	} else if len(a)+len(b) > len(arr) {
		return false
	}
	for i, c := range a {
		if jptext.ToHiragana(string(arr[i])) != jptext.ToHiragana(string(c)) {
			return false
		}
	}
	for i, c := range b {
		if jptext.ToHiragana(string(arr[i+len(a)])) != jptext.ToHiragana(string(c)) {
			return false
		}
	}
	return true
}

// stripUntilKanji returns the rune-count prefix of r that is neither
// kanji, symbol, nor roman letter (i.e. a leading kana run to skip over).
func stripUntilKanji(r []rune) int {
	i := 0
	for i < len(r) {
		if isKanjiRunRune(r[i]) {
			break
		}
		i++
	}
	return i
}

// normalizeReadingEntry strips the okurigana dot from a kun reading,
// truncating at it, then lowers the whole thing to hiragana and trims
// leading/trailing dashes (prefix/suffix markers).
func normalizeReadingEntry(r string) string {
	r = strings.ReplaceAll(r, "-", "")
	if idx := strings.Index(r, "."); idx >= 0 {
		r = r[:idx]
	}
	return jptext.ToHiragana(r)
}
