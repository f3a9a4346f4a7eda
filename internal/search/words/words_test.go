package words

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
		Reading:  types.Reading{Kana: "いぬ", Kanji: "犬"},
		Priority: []string{"news1"},
		Senses: []types.Sense{
			{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "dog"}}},
		},
	}))
	require.NoError(t, store.PutWord(db, types.Word{
		Sequence: 2,
		Reading:  types.Reading{Kana: "せいかつ", Kanji: "生活"},
		Senses: []types.Sense{
			{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "life"}, {Text: "living"}}},
		},
	}))

	s := store.New()
	require.NoError(t, s.Load(db))
	return s
}

func TestEngineRetrievesNativeExactMatch(t *testing.T) {
	e := &Engine{Storage: testStorage(t), Parser: query.Parser{}, IndexLanguage: types.LangEnglish}
	q, ok := e.MakeQuery("犬", types.LangUnknown, false)
	require.True(t, ok)

	r := e.RetrieveFor(q, types.LangUnknown, false)
	w, ok := r.Next()
	require.True(t, ok)
	require.Equal(t, int32(1), w.Sequence)

	_, ok = r.Next()
	require.False(t, ok)
}

func TestEngineRetrievesForeignGloss(t *testing.T) {
	e := &Engine{Storage: testStorage(t), Parser: query.Parser{}, IndexLanguage: types.LangEnglish}
	q, ok := e.MakeQuery("dog", types.LangUnknown, false)
	require.True(t, ok)

	r := e.RetrieveFor(q, types.LangUnknown, false)
	w, ok := r.Next()
	require.True(t, ok)
	require.Equal(t, int32(1), w.Sequence)
}

func TestEngineRetrieveKanjiReadingConstrainsBySurfaceAndKana(t *testing.T) {
	e := &Engine{Storage: testStorage(t), Parser: query.Parser{}, IndexLanguage: types.LangEnglish}
	q, ok := e.MakeQuery("生 せい", types.LangUnknown, false)
	require.True(t, ok)
	require.Equal(t, query.FormKanjiReading, q.Form)

	r := e.RetrieveFor(q, types.LangUnknown, false)
	w, ok := r.Next()
	require.True(t, ok)
	require.Equal(t, int32(2), w.Sequence)
	_, ok = r.Next()
	require.False(t, ok)
}

func TestDocToOutputReturnsSequence(t *testing.T) {
	e := &Engine{}
	out := e.DocToOutput(types.Word{Sequence: 42})
	require.Equal(t, []int32{42}, out)
}

func TestScorerDispatchesByFormAndLanguage(t *testing.T) {
	e := &Engine{Storage: testStorage(t), Parser: query.Parser{}, IndexLanguage: types.LangEnglish}
	dog := types.Word{
		Sequence: 1,
		Reading:  types.Reading{Kana: "いぬ", Kanji: "犬"},
		Priority: []string{"news1"},
		Senses: []types.Sense{
			{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "dog"}}},
		},
	}
	q, ok := e.MakeQuery("dog", types.LangUnknown, false)
	require.True(t, ok)

	score := e.Scorer(1, dog, q)
	require.Greater(t, score, float32(0))
}
