package jptext

import "strings"

// romajiMoras is a Hepburn mora table. It is an unordered map; the
// longest match comes from longestMoraAt, which looks up 3-, then 2-,
// then 1-letter keys (so "kya" wins over "ka"), so RomajiToHiragana
// never has to special-case digraphs.
var romajiMoras = map[string]string{
	"kya": "きゃ", "kyu": "きゅ", "kyo": "きょ",
	"sha": "しゃ", "shu": "しゅ", "sho": "しょ", "shi": "し",
	"cha": "ちゃ", "chu": "ちゅ", "cho": "ちょ", "chi": "ち", "tsu": "つ",
	"nya": "にゃ", "nyu": "にゅ", "nyo": "にょ",
	"hya": "ひゃ", "hyu": "ひゅ", "hyo": "ひょ",
	"mya": "みゃ", "myu": "みゅ", "myo": "みょ",
	"rya": "りゃ", "ryu": "りゅ", "ryo": "りょ",
	"gya": "ぎゃ", "gyu": "ぎゅ", "gyo": "ぎょ",
	"ja": "じゃ", "ju": "じゅ", "jo": "じょ", "ji": "じ",
	"bya": "びゃ", "byu": "びゅ", "byo": "びょ",
	"pya": "ぴゃ", "pyu": "ぴゅ", "pyo": "ぴょ",
	"fu": "ふ",

	"ka": "か", "ki": "き", "ku": "く", "ke": "け", "ko": "こ",
	"sa": "さ", "su": "す", "se": "せ", "so": "そ",
	"ta": "た", "te": "て", "to": "と",
	"na": "な", "ni": "に", "nu": "ぬ", "ne": "ね", "no": "の",
	"ha": "は", "hi": "ひ", "he": "へ", "ho": "ほ",
	"ma": "ま", "mi": "み", "mu": "む", "me": "め", "mo": "も",
	"ya": "や", "yu": "ゆ", "yo": "よ",
	"ra": "ら", "ri": "り", "ru": "る", "re": "れ", "ro": "ろ",
	"wa": "わ", "wo": "を",
	"ga": "が", "gi": "ぎ", "gu": "ぐ", "ge": "げ", "go": "ご",
	"za": "ざ", "zu": "ず", "ze": "ぜ", "zo": "ぞ",
	"da": "だ", "di": "ぢ", "du": "づ", "de": "で", "do": "ど",
	"ba": "ば", "bi": "び", "bu": "ぶ", "be": "べ", "bo": "ぼ",
	"pa": "ぱ", "pi": "ぴ", "pu": "ぷ", "pe": "ぺ", "po": "ぽ",

	"a": "あ", "i": "い", "u": "う", "e": "え", "o": "お",
	"n": "ん",
}

// doubledConsonants are the single consonants that, when repeated before
// another mora ("kk", "tt", ...), romanize the geminate っ rather than
// starting a new mora of their own.
const doubledConsonants = "kstpbdgzjrh"

// RomajiToHiragana converts a Hepburn-romanized string to hiragana on a
// best-effort basis: greedy longest-mora matching with sokuon (small
// っ) doubling and a trailing "n" read as ん. Runs of input that don't
// match any known mora are copied through unchanged (so mixed input
// like "tokyo123" degrades gracefully rather than losing characters).
// Used by the suggestion search's parallel romaji attempt (spec.md
// §4.1/§4.7); no library in the retrieved example pack performs this
// conversion in-process (the ichiran wrappers only call out to an
// external service), so this table is hand-written rather than ported.
func RomajiToHiragana(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var out strings.Builder
	runes := []rune(s)
	i := 0
	for i < len(runes) {
		if i+1 < len(runes) && runes[i] == runes[i+1] && strings.ContainsRune(doubledConsonants, runes[i]) {
			out.WriteRune('っ')
			i++
			continue
		}
		if matched := longestMoraAt(runes, i); matched != "" {
			out.WriteString(romajiMoras[matched])
			i += len([]rune(matched))
			continue
		}
		out.WriteRune(runes[i])
		i++
	}
	return out.String()
}

// longestMoraAt returns the longest key of romajiMoras matching runes
// starting at i, trying 3 letters then 2 then 1.
func longestMoraAt(runes []rune, i int) string {
	for length := 3; length >= 1; length-- {
		if i+length > len(runes) {
			continue
		}
		cand := string(runes[i : i+length])
		if _, ok := romajiMoras[cand]; ok {
			return cand
		}
	}
	return ""
}
