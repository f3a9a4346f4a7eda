package query

import (
	"strings"
	"unicode"

	"github.com/jisho-engine/dictsearch/internal/jptext"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// maxQueryRunes caps the query body length after tag extraction,
// per spec.md §4.4 step 3.
const maxQueryRunes = 400

// Form is the detected shape of a query body (spec.md §3).
type Form int

const (
	FormUndetected Form = iota
	FormTagOnly
	FormSingleWord
	FormMultiWords
	FormKanjiReading
	FormRegex
)

// KanjiReading holds the literal/reading pair for Form == FormKanjiReading.
type KanjiReading struct {
	Literal rune
	Reading string
}

// Settings are the user-configurable knobs that ride along with every
// query but don't affect parsing, only downstream ranking/pagination.
type Settings struct {
	PreferredLanguage types.Language
	ShowEnglish       bool
	PageSize          int
	EnglishOnTop      bool
}

// Query is the fully parsed, structured form of a raw user query string.
type Query struct {
	Body         string
	OriginalBody string

	LanguageOverride types.Language
	HasOverride      bool

	Lang   types.QueryLang
	Target SearchTarget
	Tags   []Tag
	Form   Form
	Kanji  KanjiReading

	Page       int
	PageOffset int
	WordIndex  int

	Settings Settings
}

// Parser parses raw query strings into Query values.
type Parser struct {
	DefaultTarget SearchTarget
	Settings      Settings
	Page          int
	WordIndex     int
}

// Parse runs the full pipeline from spec.md §4.4 over raw.
// Returns ok=false when the query must be rejected (empty body with no
// empty-allowed tag).
func (p Parser) Parse(raw string) (Query, bool) {
	original := raw

	stripped, override, hasOverride := stripLanguageOverride(raw)

	body, tags := extractTags(stripped)
	body = strings.ReplaceAll(body, "%", "")
	body = truncateRunes(strings.TrimSpace(body), maxQueryRunes)

	if body == "" && !anyEmptyAllowed(tags) {
		return Query{}, false
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	pageSize := p.Settings.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	q := Query{
		Body:             body,
		OriginalBody:     original,
		LanguageOverride: override,
		HasOverride:      hasOverride,
		Lang:             detectLanguage(body),
		Target:           resolveTarget(tags, p.DefaultTarget),
		Tags:             tags,
		Page:             page,
		PageOffset:       (page - 1) * pageSize,
		WordIndex:        p.WordIndex,
		Settings:         p.Settings,
	}
	q.Form, q.Kanji = detectForm(body, tags)

	return q, true
}

func anyEmptyAllowed(tags []Tag) bool {
	for _, t := range tags {
		if t.IsEmptyAllowed() {
			return true
		}
	}
	return false
}

func resolveTarget(tags []Tag, fallback SearchTarget) SearchTarget {
	for _, t := range tags {
		if t.Kind == TagSearchTarget {
			return t.Target
		}
	}
	return fallback
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// stripLanguageOverride strips a leading "xx:" prefix when xx parses as
// a known content language, mirroring strip_lang_override's guard that
// the colon appears within the first 3 runes and the query is long
// enough to have something after it.
func stripLanguageOverride(q string) (rest string, lang types.Language, ok bool) {
	idx := strings.IndexByte(q, ':')
	if idx < 0 || idx > 3 || len(q) < 5 {
		return q, types.LangUnknown, false
	}
	candidate := strings.TrimSpace(q[:idx])
	lang, ok = types.ParseLanguage(candidate)
	if !ok {
		return q, types.LangUnknown, false
	}
	return strings.TrimSpace(q[idx+1:]), lang, true
}

// detectLanguage computes the Japanese-character ratio over the query
// with formatting characters (kanji-reading punctuation) stripped, per
// spec.md §4.4 step 5.
func detectLanguage(body string) types.QueryLang {
	cleaned := formatForLangDetect(body)
	if cleaned == "" {
		return types.QueryLangUndetected
	}

	if isStrictHangul(cleaned) {
		return types.QueryLangKorean
	}

	total, japanese := 0, 0
	for _, r := range cleaned {
		total++
		if isJapaneseRune(r) {
			japanese++
		}
	}
	if total == 0 {
		return types.QueryLangUndetected
	}

	pct := int((float64(japanese) / float64(total)) * 100)
	switch {
	case pct == 40:
		return types.QueryLangUndetected
	case pct < 40:
		return types.QueryLangForeign
	default:
		return types.QueryLangJapanese
	}
}

// formatForLangDetect drops regex escapes (spec.md §4.4 step 5) and the
// punctuation that a kanji-reading query ("音 おと") carries, matching
// strip_regex followed by format_kanji_reading.
func formatForLangDetect(s string) string {
	s = StripRegexSyntax(s)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

func isStrictHangul(s string) bool {
	found := false
	for _, r := range s {
		if unicode.Is(unicode.Hangul, r) {
			found = true
			continue
		}
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		return false
	}
	return found
}

// detectForm classifies the query body into its Form, per spec.md §4.4
// step 6.
func detectForm(body string, tags []Tag) (Form, KanjiReading) {
	if body == "" {
		if anyEmptyAllowed(tags) {
			return FormTagOnly, KanjiReading{}
		}
		return FormUndetected, KanjiReading{}
	}

	if kr, ok := parseKanjiReading(body); ok {
		return FormKanjiReading, kr
	}

	if IsRegexQuery(body) {
		return FormRegex, KanjiReading{}
	}

	if jptext.IsJapanese(body) {
		return FormSingleWord, KanjiReading{}
	}

	if !hasJapanese(body) {
		if strings.Contains(body, " ") {
			return FormMultiWords, KanjiReading{}
		}
		return FormSingleWord, KanjiReading{}
	}

	return FormUndetected, KanjiReading{}
}

// isJapaneseRune is the per-rune building block behind jptext.IsJapanese,
// reused here for the character-ratio computation in detectLanguage.
func isJapaneseRune(r rune) bool {
	return jptext.IsKana(r) || jptext.IsKanji(r) || r == '。' || r == '、' || r == '「' || r == '」' || r == '々'
}

func hasJapanese(s string) bool {
	for _, r := range s {
		if isJapaneseRune(r) {
			return true
		}
	}
	return false
}

// parseKanjiReading detects the "<kanji> <reading>" shape: exactly one
// kanji literal, a space, and an all-Japanese reading, with the whole
// body at least 3 runes long (spec.md's "don't allow queries like
// '音楽 おと'" guard against a multi-kanji head).
func parseKanjiReading(body string) (KanjiReading, bool) {
	if jptext.RealStringLen(body) < 3 || !strings.Contains(body, " ") {
		return KanjiReading{}, false
	}
	parts := strings.SplitN(body, " ", 2)
	if len(parts) != 2 {
		return KanjiReading{}, false
	}
	literal := strings.TrimSpace(parts[0])
	reading := strings.TrimSpace(parts[1])
	if reading == "" {
		return KanjiReading{}, false
	}

	literalRunes := []rune(literal)
	if len(literalRunes) != 1 || !jptext.IsKanji(literalRunes[0]) {
		return KanjiReading{}, false
	}
	if !jptext.IsJapanese(formatForLangDetect(reading)) {
		return KanjiReading{}, false
	}

	return KanjiReading{Literal: literalRunes[0], Reading: reading}, true
}
