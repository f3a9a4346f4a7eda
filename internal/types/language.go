// Package types holds the data model shared across the dictionary search
// engine: words, kanji, radicals, sentences and the small enums (language,
// part of speech, misc tags) that tag them.
package types

import "strings"

// Language is an ISO-639-ish content language tag used for glosses,
// translations and per-language indexes. Only the languages the bundled
// JMdict-simplified/JMnedict-simplified artifacts actually ship are
// enumerated; unknown codes fall back to LangUnknown.
type Language string

const (
	LangEnglish    Language = "eng"
	LangGerman     Language = "ger"
	LangFrench     Language = "fre"
	LangSpanish    Language = "spa"
	LangDutch      Language = "dut"
	LangRussian    Language = "rus"
	LangHungarian  Language = "hun"
	LangSwedish    Language = "swe"
	LangSlovenian  Language = "slv"
	LangJapanese   Language = "jpn"
	LangUnknown    Language = ""
)

// ParseLanguage maps a language-prefix code (as used in the `xx:` query
// override and in cookies) to a Language. Returns (lang, true) on success.
func ParseLanguage(code string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "eng", "en":
		return LangEnglish, true
	case "ger", "de":
		return LangGerman, true
	case "fre", "fr":
		return LangFrench, true
	case "spa", "es":
		return LangSpanish, true
	case "dut", "nl":
		return LangDutch, true
	case "rus", "ru":
		return LangRussian, true
	case "hun", "hu":
		return LangHungarian, true
	case "swe", "sv":
		return LangSwedish, true
	case "slv", "sl":
		return LangSlovenian, true
	case "jpn", "ja":
		return LangJapanese, true
	default:
		return LangUnknown, false
	}
}

// AllContentLanguages lists every language the index store may hold a
// foreign-word/name/sentence index for (excludes Japanese itself, which
// has its own "native" indexes).
func AllContentLanguages() []Language {
	return []Language{
		LangEnglish, LangGerman, LangFrench, LangSpanish,
		LangDutch, LangRussian, LangHungarian, LangSwedish, LangSlovenian,
	}
}

// QueryLang is the language family detected for a raw query string.
type QueryLang int

const (
	QueryLangUndetected QueryLang = iota
	QueryLangJapanese
	QueryLangForeign
	QueryLangKorean
)

func (q QueryLang) String() string {
	switch q {
	case QueryLangJapanese:
		return "Japanese"
	case QueryLangForeign:
		return "Foreign"
	case QueryLangKorean:
		return "Korean"
	default:
		return "Undetected"
	}
}
