package relevance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jisho-engine/dictsearch/internal/types"
)

func dogWord() types.Word {
	return types.Word{
		Sequence: 1001,
		Reading:  types.Reading{Kana: "いぬ", Kanji: "犬"},
		Priority: []string{"news1", "ichi1"},
		Senses: []types.Sense{
			{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "dog"}, {Text: "canine (Canis lupus familiaris)"}}},
		},
	}
}

func TestFindGlossMatchExactBeforeSubstring(t *testing.T) {
	w := types.Word{Senses: []types.Sense{
		{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "a doghouse"}, {Text: "dog"}}},
	}}

	m, ok := FindGlossMatch(w, "dog")
	require.True(t, ok)
	require.Equal(t, modeExact, m.Mode)
	require.Equal(t, 1, m.SensePos)
	require.False(t, m.CaseIgnored)
}

func TestFindGlossMatchFallsBackToCaseInsensitive(t *testing.T) {
	w := types.Word{Senses: []types.Sense{
		{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "Dog"}}},
	}}

	m, ok := FindGlossMatch(w, "dog")
	require.True(t, ok)
	require.Equal(t, modeExact, m.Mode)
	require.True(t, m.CaseIgnored)
}

func TestFindGlossMatchDetectsParentheticalOnlyMatch(t *testing.T) {
	w := types.Word{Senses: []types.Sense{
		{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "pet (dog or cat)"}}},
	}}

	m, ok := FindGlossMatch(w, "dog or cat")
	require.True(t, ok)
	require.True(t, m.InParentheses)
}

func TestForeignGlossScoreExactCommonWordWithUserLanguageMatch(t *testing.T) {
	w := dogWord()
	score := ForeignGlossScore(w, "dog", types.LangEnglish, types.LangEnglish, 0)

	// +10 common, +0 jlpt, +8 not katakana, +12 result lang == user lang,
	// +likeliness(100)/10=10 exact case-sensitive, +30 not in parens.
	require.Equal(t, 10+8+12+10+30, score)
}

func TestForeignGlossScoreNoMatchStillScoresBaseBonuses(t *testing.T) {
	w := dogWord()
	score := ForeignGlossScore(w, "zzz-no-match", types.LangEnglish, types.LangEnglish, 0)
	require.Equal(t, 10+8+12, score)
}

func TestForeignGlossScorePenalizesParentheticalMatch(t *testing.T) {
	w := types.Word{
		Senses: []types.Sense{
			{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "pet (slang: dog)"}}},
		},
	}
	score := ForeignGlossScore(w, "slang: dog", types.LangEnglish, types.LangGerman, 0)
	require.Less(t, score, 30)
}

func TestNativeJapaneseScoreExactKanjiMatch(t *testing.T) {
	w := types.Word{
		Reading:  types.Reading{Kana: "いぬ", Kanji: "犬"},
		Priority: []string{"news1"},
	}
	score := NativeJapaneseScore(w, "犬", 0)
	require.Equal(t, 50+20, score)
}

func TestNativeJapaneseScoreKanaOnlyBonus(t *testing.T) {
	w := types.Word{Reading: types.Reading{Kana: "ねこ"}}
	score := NativeJapaneseScore(w, "ねこ", 0)
	require.Equal(t, 50+10, score)
}

func TestNativeJapaneseScorePrefixMatch(t *testing.T) {
	w := types.Word{Reading: types.Reading{Kana: "たべる", Kanji: "食べる"}}
	score := NativeJapaneseScore(w, "食べ", 0)
	require.Equal(t, 4, score)
}

func TestNativeJapaneseScoreAlternativeReadingMatch(t *testing.T) {
	w := types.Word{
		Reading:     types.Reading{Kana: "しちがつ", Kanji: "七月"},
		Alternative: []types.Reading{{Kana: "なながつ"}},
	}
	score := NativeJapaneseScore(w, "なながつ", 0)
	require.Equal(t, 45, score)
}

func TestKanjiReadingScoreKunMatch(t *testing.T) {
	w := types.Word{Reading: types.Reading{Kana: "いきる", Kanji: "生きる"}, Priority: []string{"ichi1"}}
	score := KanjiReadingScore(w, "いきる", 0)
	require.Equal(t, 20+8, score)
}

func TestKanjiReadingScoreRejectsBoundSuffixReading(t *testing.T) {
	w := types.Word{Reading: types.Reading{Kana: "いきる", Kanji: "生きる"}}
	score := KanjiReadingScore(w, "-いきる", 0)
	require.Equal(t, 0, score)
}

func TestKanjiReadingScoreOnExactMatch(t *testing.T) {
	w := types.Word{Reading: types.Reading{Kana: "セイ", Kanji: "生"}}
	score := KanjiReadingScore(w, "セイ", 0)
	require.Equal(t, 100, score)
}

func TestKanjiReadingScoreOnPartialMatchUsesLevenshtein(t *testing.T) {
	w := types.Word{Reading: types.Reading{Kana: "セイカツ", Kanji: "生活"}}
	score := KanjiReadingScore(w, "セイ", 0)
	// hiragana forms "せいかつ" contains "せい", levenshtein distance 2
	// (two trailing insertions) => (20-2)*2 = 36.
	require.Equal(t, 36, score)
}

func TestSuggestionScoreExactMatchIsMaximal(t *testing.T) {
	require.Equal(t, 400, SuggestionScore("neko", "neko", 3, false))
}

func TestSuggestionScoreRomajiPenalty(t *testing.T) {
	native := SuggestionScore("ねこ", "ね", 10, false)
	romaji := SuggestionScore("ねこ", "ね", 10, true)
	require.Equal(t, native-suggestionRomajiPenalty, romaji)
}

func TestSuggestionScoreIncreasesWithOccurrences(t *testing.T) {
	low := SuggestionScore("ねこ", "ね", 1, false)
	high := SuggestionScore("ねこ", "ね", 1000, false)
	require.Less(t, low, high)
}
