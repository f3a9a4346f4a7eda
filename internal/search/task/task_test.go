package task

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jisho-engine/dictsearch/internal/types"
)

type fakeDoc struct {
	id    int
	score float32
}

type fakeRetriever struct {
	docs []fakeDoc
	pos  int
}

func (r *fakeRetriever) Next() (fakeDoc, bool) {
	if r.pos >= len(r.docs) {
		return fakeDoc{}, false
	}
	d := r.docs[r.pos]
	r.pos++
	return d, true
}

type fakeEngine struct {
	docs []fakeDoc
}

func (e fakeEngine) MakeQuery(q string, lang types.Language, hasLang bool) (string, bool) {
	return q, true
}

func (e fakeEngine) RetrieveFor(q string, lang types.Language, hasLang bool) Retriever[fakeDoc] {
	return &fakeRetriever{docs: e.docs}
}

func (e fakeEngine) DocToOutput(d fakeDoc) []int {
	return []int{d.id}
}

func fakeScorer(out int, doc fakeDoc, query string) float32 {
	return doc.score
}

func TestFindOrdersDescendingByScore(t *testing.T) {
	engine := fakeEngine{docs: []fakeDoc{{1, 0.2}, {2, 0.9}, {3, 0.5}}}
	st := New[string, fakeDoc, int](engine, "q")
	st.Scorer = fakeScorer

	page, total := st.Find()
	require.Equal(t, 3, total)
	require.Equal(t, []int{2, 3, 1}, page)
}

func TestFindRespectsOffsetAndLimit(t *testing.T) {
	engine := fakeEngine{docs: []fakeDoc{{1, 0.2}, {2, 0.9}, {3, 0.5}, {4, 0.7}}}
	st := New[string, fakeDoc, int](engine, "q")
	st.Scorer = fakeScorer
	st.Limit = 2
	st.Offset = 1

	page, total := st.Find()
	require.Equal(t, 4, total)
	require.Equal(t, []int{4, 3}, page)
}

func TestFindAppliesThreshold(t *testing.T) {
	engine := fakeEngine{docs: []fakeDoc{{1, 0.1}, {2, 0.9}}}
	st := New[string, fakeDoc, int](engine, "q")
	st.Scorer = fakeScorer
	st.Threshold = 0.5

	page, _ := st.Find()
	require.Equal(t, []int{2}, page)
}

func TestFindOffsetBeyondTotalReturnsEmptyPage(t *testing.T) {
	engine := fakeEngine{docs: []fakeDoc{{1, 0.1}}}
	st := New[string, fakeDoc, int](engine, "q")
	st.Scorer = fakeScorer
	st.Offset = 5

	page, total := st.Find()
	require.Nil(t, page)
	require.Equal(t, 1, total)
}

func TestDedupKeepsHigherScore(t *testing.T) {
	engine := fakeEngine{docs: []fakeDoc{{1, 0.3}, {1, 0.8}}}
	st := New[string, fakeDoc, int](engine, "q")
	st.Scorer = fakeScorer

	page, total := st.Find()
	require.Equal(t, 2, total)
	require.Equal(t, []int{1}, page)
}

func TestEstimateResultCountAccurateWhenUnderLimit(t *testing.T) {
	engine := fakeEngine{docs: []fakeDoc{{1, 0.1}, {2, 0.2}}}
	st := New[string, fakeDoc, int](engine, "q")
	st.Scorer = fakeScorer
	st.EstLimit = 100

	g := st.EstimateResultCount()
	require.Equal(t, GuessAccurate, g.Kind)
	require.Equal(t, 2, g.Count)
}

func TestEstimateResultCountMoreThanWhenOverLimit(t *testing.T) {
	docs := make([]fakeDoc, 10)
	for i := range docs {
		docs[i] = fakeDoc{id: i, score: 0.1}
	}
	engine := fakeEngine{docs: docs}
	st := New[string, fakeDoc, int](engine, "q")
	st.Scorer = fakeScorer
	st.EstLimit = 3

	g := st.EstimateResultCount()
	require.Equal(t, GuessMoreThan, g.Kind)
	require.Equal(t, 3, g.Count)
}

func TestEstimateResultCountZeroIsAccurate(t *testing.T) {
	engine := fakeEngine{docs: nil}
	st := New[string, fakeDoc, int](engine, "q")
	st.Scorer = fakeScorer

	g := st.EstimateResultCount()
	require.Equal(t, GuessAccurate, g.Kind)
	require.Equal(t, 0, g.Count)
}
