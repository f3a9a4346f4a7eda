package names

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

	require.NoError(t, store.PutName(db, types.Name{
		Sequence:     1,
		Reading:      types.Reading{Kana: "たなか", Kanji: "田中"},
		Tags:         []string{"surname"},
		Translations: []string{"Tanaka"},
	}))

	s := store.New()
	require.NoError(t, s.Load(db))
	return s
}

func TestRetrieveForNativeExactMatch(t *testing.T) {
	e := &Engine{Storage: testStorage(t), Parser: query.Parser{}, IndexLanguage: types.LangEnglish}
	q, ok := e.MakeQuery("田中", types.LangUnknown, false)
	require.True(t, ok)

	r := e.RetrieveFor(q, types.LangUnknown, false)
	n, ok := r.Next()
	require.True(t, ok)
	require.Equal(t, int32(1), n.Sequence)
}

func TestRetrieveForForeignTranslation(t *testing.T) {
	e := &Engine{Storage: testStorage(t), Parser: query.Parser{}, IndexLanguage: types.LangEnglish}
	q, ok := e.MakeQuery("tanaka", types.LangUnknown, false)
	require.True(t, ok)

	r := e.RetrieveFor(q, types.LangUnknown, false)
	n, ok := r.Next()
	require.True(t, ok)
	require.Equal(t, int32(1), n.Sequence)
}

func TestScorerBoostsExactReadingAndTranslationMatch(t *testing.T) {
	e := &Engine{}
	n := types.Name{Reading: types.Reading{Kana: "たなか", Kanji: "田中"}, Translations: []string{"Tanaka"}}
	q := query.Query{Body: "田中"}
	require.Equal(t, float32(20), e.Scorer(1, n, q))

	q2 := query.Query{Body: "tanaka"}
	require.Equal(t, float32(20), e.Scorer(1, n, q2))
}
