package query

import (
	"regexp"
	"strings"

	"github.com/jisho-engine/dictsearch/internal/jptext"
)

// regexMetaChars are the regex-syntax runes a query body can carry
// when the user writes a character-class/wildcard pattern over kana or
// kanji, e.g. "[むめ]す" or "食べ.*". Mirrors the escapes
// strip_regex/RegexSQuery strip out before language-ratio detection in
// the original parser.
const regexMetaChars = `.[]*+?()|^$\`

// IsRegexQuery reports whether body is a native-script regex scan
// query: it must contain at least one regex metacharacter, compile as
// a valid regular expression, and reduce (once the regex syntax is
// stripped) to nothing but kana/kanji literals. Plain foreign text
// that happens to contain e.g. a bare "." never qualifies once the
// remaining runes fail the kana/kanji check below.
func IsRegexQuery(body string) bool {
	if !strings.ContainsAny(body, regexMetaChars) {
		return false
	}
	if _, err := regexp.Compile(body); err != nil {
		return false
	}

	literal := StripRegexSyntax(body)
	if literal == "" {
		return false
	}
	for _, r := range literal {
		if !jptext.IsKana(r) && !jptext.IsKanji(r) {
			return false
		}
	}
	return true
}

// StripRegexSyntax removes regex metacharacters from body, leaving
// only the literal characters a reader would recognize, for the
// Japanese-ratio computation in detectLanguage (spec.md §4.4 step 5:
// "over the query minus regex escapes").
func StripRegexSyntax(body string) string {
	var b strings.Builder
	b.Grow(len(body))
	for _, r := range body {
		if strings.ContainsRune(regexMetaChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CompileNativeRegex compiles a query body into a regexp anchored to
// match a whole term, for scanning the native-word index's posting-list
// keys (internal/store.TermIndex.Regex). Returns ok=false on invalid
// syntax rather than surfacing a compile error, since a rejected regex
// form simply yields no candidates.
func CompileNativeRegex(body string) (*regexp.Regexp, bool) {
	re, err := regexp.Compile("^(?:" + body + ")$")
	if err != nil {
		return nil, false
	}
	return re, true
}
