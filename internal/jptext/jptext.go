// Package jptext provides character classification, kana/romaji conversion
// and whitespace-free run segmentation over Japanese text.
package jptext

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// rune ranges for the scripts we care about.
const (
	hiraganaStart = 0x3041
	hiraganaEnd   = 0x3096
	katakanaStart = 0x30A1
	katakanaEnd   = 0x30FA
	kanjiStartCJK = 0x4E00
	kanjiEndCJK   = 0x9FFF
	kanjiStartExt = 0x3400
	kanjiEndExt   = 0x4DBF
)

// IsHiragana reports whether r is in the hiragana block.
func IsHiragana(r rune) bool { return r >= hiraganaStart && r <= hiraganaEnd }

// IsKatakana reports whether r is in the katakana block (includes the
// katakana middle dot and prolonged sound mark, which behave like kana
// for segmentation purposes).
func IsKatakana(r rune) bool {
	return (r >= katakanaStart && r <= katakanaEnd) || r == 'ー' || r == '・'
}

// IsKana reports whether r is hiragana or katakana.
func IsKana(r rune) bool { return IsHiragana(r) || IsKatakana(r) }

// IsKanji reports whether r is a CJK ideograph (including iteration marks).
func IsKanji(r rune) bool {
	return (r >= kanjiStartCJK && r <= kanjiEndCJK) ||
		(r >= kanjiStartExt && r <= kanjiEndExt) ||
		r == '々' || r == '〆' || r == '〇'
}

// IsRomanLetter reports whether r is an ASCII letter, used while scanning
// mixed Japanese/romaji runs (e.g. "Tシャツ").
func IsRomanLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// IsSymbol reports whether r is punctuation/symbol that should be treated
// as transparent when scanning for kanji/kana runs (full-width and ASCII
// punctuation, whitespace, digits).
func IsSymbol(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	if IsKana(r) || IsKanji(r) || IsRomanLetter(r) {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsNumber(r)
}

// IsRadical reports whether r can appear as a requested radical:
// either a dedicated Kangxi Radicals / Radicals Supplement code point,
// or an ordinary kanji rune — KRADFILE-style decomposition data (the
// shape internal/store's RadicalIndex is built from) stores components
// as plain CJK ideographs (木, 人, 亻), not the separate Unicode
// radical block, so a radical request built from the same vocabulary
// has to accept both.
func IsRadical(r rune) bool {
	if (r >= 0x2F00 && r <= 0x2FDF) || (r >= 0x2E80 && r <= 0x2EFF) {
		return true
	}
	return IsKanji(r)
}

// IsJapanese reports whether every non-symbol rune of s is kana, kanji or
// a Japanese-specific punctuation mark.
func IsJapanese(s string) bool {
	found := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if IsKana(r) || IsKanji(r) || r == '。' || r == '、' || r == '「' || r == '」' || r == '々' {
			found = true
			continue
		}
		if unicode.IsPunct(r) || unicode.IsNumber(r) {
			continue
		}
		return false
	}
	return found
}

// HasKanji reports whether s contains at least one kanji rune.
func HasKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}

// HasKana reports whether s contains at least one kana rune.
func HasKana(s string) bool {
	for _, r := range s {
		if IsKana(r) {
			return true
		}
	}
	return false
}

// HasSymbol reports whether s contains at least one symbol/punctuation rune.
func HasSymbol(s string) bool {
	for _, r := range s {
		if IsSymbol(r) {
			return true
		}
	}
	return false
}

// KanjiCount returns the number of kanji runes in s.
func KanjiCount(s string) int {
	n := 0
	for _, r := range s {
		if IsKanji(r) {
			n++
		}
	}
	return n
}

// RealStringLen returns the number of code points (not bytes) in s.
func RealStringLen(s string) int {
	return len([]rune(s))
}

// StripEnd trims the n trailing code points of s. Trimming more than the
// string holds returns the empty string; it never panics on multi-byte
// runes.
func StripEnd(s string, n int) string {
	r := []rune(s)
	if n >= len(r) {
		return ""
	}
	if n <= 0 {
		return s
	}
	return string(r[:len(r)-n])
}

// ToHiragana normalizes half-width forms to full-width first (via
// golang.org/x/text/width, so input scraped from half-width katakana
// sources normalizes the same as native full-width text), then shifts
// every katakana rune down into the hiragana block.
func ToHiragana(s string) string {
	s = width.Widen.String(s)
	runes := []rune(s)
	for i, r := range runes {
		if r >= katakanaStart && r <= katakanaEnd {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

// ToKatakana shifts every hiragana rune up into the katakana block.
func ToKatakana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= hiraganaStart && r <= hiraganaEnd {
			runes[i] = r + 0x60
		}
	}
	return string(runes)
}

// romajiDigraphs are the consonant digraphs that can legitimately appear
// as an incomplete trailing fragment of a longer romaji word being typed
// (e.g. "ky" while typing "kyou").
var romajiDigraphs = []string{"sh", "ch", "ts", "ky", "ny", "my", "hy"}

// IsRomaji reports whether s looks like a Latin-alphabet transliteration
// of Japanese: every rune must decompose into a run of known moras
// (the same table RomajiToHiragana converts against), tolerating a
// single incomplete trailing kana grapheme (a bare consonant digraph
// or a standalone "n") left over at the end so that suggestions can
// fire while the user is still typing (e.g. "ky" while typing "kyou").
func IsRomaji(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsRomanLetter(r) && r != '-' && r != '\'' {
			return false
		}
	}
	lower := strings.NewReplacer("-", "", "'", "").Replace(strings.ToLower(s))
	if lower == "" {
		return false
	}

	if decomposesIntoMoras(lower) {
		return true
	}
	for _, d := range romajiDigraphs {
		if rest, ok := strings.CutSuffix(lower, d); ok && (rest == "" || decomposesIntoMoras(rest)) {
			return true
		}
	}
	return false
}

// decomposesIntoMoras reports whether s can be fully consumed by the
// same greedy longest-mora matching (with sokuon doubling) that
// RomajiToHiragana uses to convert, leaving no unmatched tail.
func decomposesIntoMoras(s string) bool {
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		if i+1 < len(runes) && runes[i] == runes[i+1] && strings.ContainsRune(doubledConsonants, runes[i]) {
			i++
			continue
		}
		matched := longestMoraAt(runes, i)
		if matched == "" {
			return false
		}
		i += len([]rune(matched))
	}
	return true
}

// TextParts splits s into the maximal-run segmentation used by the
// furigana generator: alternating kana-only runs and kanji-bearing runs
// (kanji mixed with symbols/roman letters counts as part of the
// kanji-bearing run so okurigana boundaries stay attached to their
// kanji).
func TextParts(s string) []string {
	runes := []rune(s)
	var parts []string
	var cur strings.Builder
	var curIsKanjiRun bool
	started := false

	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}

	isKanjiRunRune := func(r rune) bool {
		return IsKanji(r) || IsRomanLetter(r) || IsSymbol(r)
	}

	for _, r := range runes {
		isKanjiRun := isKanjiRunRune(r) && !IsKana(r)
		if !started {
			started = true
			curIsKanjiRun = isKanjiRun
		} else if isKanjiRun != curIsKanjiRun {
			flush()
			curIsKanjiRun = isKanjiRun
		}
		cur.WriteRune(r)
	}
	flush()
	return parts
}
