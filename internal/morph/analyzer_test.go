package morph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer()
	require.NoError(t, err)
	return a
}

func TestParseEmptyInput(t *testing.T) {
	a := newTestAnalyzer(t)
	require.Nil(t, a.Parse("   "))
}

func TestParseSingleInflectedVerb(t *testing.T) {
	a := newTestAnalyzer(t)
	items := a.Parse("食べない")
	require.NotEmpty(t, items)
	require.Contains(t, items[0].Inflections, Negative)
}

func TestParseSentenceSplitsIntoMultipleWords(t *testing.T) {
	a := newTestAnalyzer(t)
	items := a.Parse("猫が寝ている")
	require.GreaterOrEqual(t, len(items), 2)
}

func TestWordItemLemmaFallsBackToSurface(t *testing.T) {
	w := WordItem{Surface: "走る"}
	require.Equal(t, "走る", w.Lemma())
	w.Lexeme = "走る"
	require.Equal(t, "走る", w.Lemma())
}

func TestDedupSortInflectionsOrdersAndDedupes(t *testing.T) {
	got := dedupSortInflections([]Inflection{Past, Negative, Past, TeForm})
	require.Equal(t, []Inflection{Negative, TeForm, Past}, got)
}

func TestAllLexemesAreInflectionsRejectsEmpty(t *testing.T) {
	require.False(t, allLexemesAreInflections(nil))
}
