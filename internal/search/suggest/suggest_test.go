package suggest

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/store"
	"github.com/jisho-engine/dictsearch/internal/types"
)

func testStorage(t *testing.T) *store.Storage {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.InitStorage(db))

	require.NoError(t, store.PutWord(db, types.Word{
		Sequence: 1,
		Reading:  types.Reading{Kana: "ねこ", Kanji: "猫"},
		Priority: []string{"news1"},
		Senses: []types.Sense{
			{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "cat"}}},
		},
	}))
	require.NoError(t, store.PutWord(db, types.Word{
		Sequence: 2,
		Reading:  types.Reading{Kana: "ねこぜ"},
		Senses: []types.Sense{
			{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "cat-like thing"}}},
		},
	}))

	s := store.New()
	require.NoError(t, s.Load(db))
	return s
}

func newEngine(t *testing.T) *Engine {
	return &Engine{
		Storage:             testStorage(t),
		Parser:              query.Parser{},
		IndexLanguage:       types.LangEnglish,
		RelevanceMultiplier: defaultRelevanceMultiplier,
		FrequencyWeight:     1,
		StepBudget:          defaultStepBudget,
	}
}

func TestRetrieveForExactReadingMatch(t *testing.T) {
	e := newEngine(t)
	q, ok := e.MakeQuery("ねこ", types.LangUnknown, false)
	require.True(t, ok)

	r := e.RetrieveFor(q, types.LangUnknown, false)
	var texts []string
	for {
		d, ok := r.Next()
		if !ok {
			break
		}
		texts = append(texts, d.Text)
	}
	require.Contains(t, texts, "ねこ")
}

func TestRetrieveForLongestPrefixExpansionFindsLongerEntries(t *testing.T) {
	e := newEngine(t)
	q, ok := e.MakeQuery("ねこぜん", types.LangUnknown, false)
	require.True(t, ok)

	r := e.RetrieveFor(q, types.LangUnknown, false)
	var docs []Doc
	for {
		d, ok := r.Next()
		if !ok {
			break
		}
		docs = append(docs, d)
	}
	require.NotEmpty(t, docs)
	require.True(t, docs[len(docs)-1].FromPrefix)
}

func TestRetrieveForRomajiParallelAttempt(t *testing.T) {
	e := newEngine(t)
	q, ok := e.MakeQuery("neko", types.LangUnknown, false)
	require.True(t, ok)

	r := e.RetrieveFor(q, types.LangUnknown, false)
	var found bool
	for {
		d, ok := r.Next()
		if !ok {
			break
		}
		if d.FromRomaji {
			found = true
			require.Equal(t, "ねこ", d.Text)
		}
	}
	require.True(t, found)
}

func TestScorerExactTextMatchIsMaximal(t *testing.T) {
	e := newEngine(t)
	score := e.Scorer("ねこ", Doc{Sequence: 1, Text: "ねこ"}, query.Query{Body: "ねこ"})
	require.Equal(t, float32(400), score)
}

func TestScorerDiscountsPrefixExpansionHits(t *testing.T) {
	e := newEngine(t)
	q := query.Query{Body: "ねこぜん"}
	exact := e.Scorer("ねこぜ", Doc{Sequence: 2, Text: "ねこぜ", FromPrefix: false}, q)
	prefix := e.Scorer("ねこぜ", Doc{Sequence: 2, Text: "ねこぜ", FromPrefix: true}, q)
	require.Less(t, prefix, exact)
}

func TestScorerPenalizesRomajiOrigin(t *testing.T) {
	e := newEngine(t)
	q := query.Query{Body: "ねこ"}
	native := e.Scorer("ねこ", Doc{Sequence: 1, Text: "ねこぜ"}, q)
	romaji := e.Scorer("ねこ", Doc{Sequence: 1, Text: "ねこぜ", FromRomaji: true}, q)
	require.Less(t, romaji, native)
}
