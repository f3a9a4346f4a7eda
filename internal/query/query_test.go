package query

import (
	"testing"

	"github.com/jisho-engine/dictsearch/internal/types"
	"github.com/stretchr/testify/require"
)

func TestStripLanguageOverride(t *testing.T) {
	rest, lang, ok := stripLanguageOverride("eng: dog")
	require.True(t, ok)
	require.Equal(t, types.LangEnglish, lang)
	require.Equal(t, "dog", rest)
}

func TestStripLanguageOverrideRejectsUnknownPrefix(t *testing.T) {
	rest, _, ok := stripLanguageOverride("egn: dog")
	require.False(t, ok)
	require.Equal(t, "egn: dog", rest)
}

func TestStripLanguageOverrideRejectsShortQuery(t *testing.T) {
	_, _, ok := stripLanguageOverride("eng:")
	require.False(t, ok)
}

func TestExtractTagsDropsInvalidSilently(t *testing.T) {
	body, tags := extractTags("犬 #n5 #bogus #kanji")
	require.Equal(t, "犬", body)
	require.Len(t, tags, 2)
}

func TestParseRejectsEmptyBodyWithoutTag(t *testing.T) {
	p := Parser{}
	_, ok := p.Parse("   ")
	require.False(t, ok)
}

func TestParseAcceptsTagOnlyJLPTQuery(t *testing.T) {
	p := Parser{}
	q, ok := p.Parse("#n5")
	require.True(t, ok)
	require.Equal(t, FormTagOnly, q.Form)
}

func TestParseForeignGlossQuery(t *testing.T) {
	p := Parser{}
	q, ok := p.Parse("dog")
	require.True(t, ok)
	require.Equal(t, types.QueryLangForeign, q.Lang)
	require.Equal(t, FormSingleWord, q.Form)
}

func TestParseJapaneseSingleWord(t *testing.T) {
	p := Parser{}
	q, ok := p.Parse("いぬ")
	require.True(t, ok)
	require.Equal(t, types.QueryLangJapanese, q.Lang)
	require.Equal(t, FormSingleWord, q.Form)
}

func TestParseKanjiReadingForm(t *testing.T) {
	p := Parser{}
	q, ok := p.Parse("音 おと")
	require.True(t, ok)
	require.Equal(t, FormKanjiReading, q.Form)
	require.Equal(t, '音', q.Kanji.Literal)
	require.Equal(t, "おと", q.Kanji.Reading)
}

func TestParseKanjiReadingRejectsMultiKanjiHead(t *testing.T) {
	p := Parser{}
	q, _ := p.Parse("音楽 おと")
	require.NotEqual(t, FormKanjiReading, q.Form)
}

func TestParseMultiWordForeignQuery(t *testing.T) {
	p := Parser{}
	q, ok := p.Parse("big dog")
	require.True(t, ok)
	require.Equal(t, FormMultiWords, q.Form)
}

func TestParseTruncatesTo400Runes(t *testing.T) {
	long := make([]rune, 500)
	for i := range long {
		long[i] = 'a'
	}
	p := Parser{}
	q, ok := p.Parse(string(long))
	require.True(t, ok)
	require.Len(t, []rune(q.Body), maxQueryRunes)
}

func TestParsePageOffset(t *testing.T) {
	p := Parser{Page: 3, Settings: Settings{PageSize: 10}}
	q, ok := p.Parse("dog")
	require.True(t, ok)
	require.Equal(t, 20, q.PageOffset)
}

func TestResolveTargetOverride(t *testing.T) {
	p := Parser{DefaultTarget: TargetWords}
	q, ok := p.Parse("犬 #kanji")
	require.True(t, ok)
	require.Equal(t, TargetKanji, q.Target)
}
