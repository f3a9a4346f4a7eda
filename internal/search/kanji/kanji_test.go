package kanji

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

	require.NoError(t, store.PutKanji(db, types.Kanji{
		Literal:   "犬",
		Frequency: 350,
		JLPTLevel: 4,
		Meanings:  []string{"dog"},
	}))
	require.NoError(t, store.PutKanji(db, types.Kanji{
		Literal:   "猫",
		Frequency: 1800,
		Meanings:  []string{"cat"},
	}))

	s := store.New()
	require.NoError(t, s.Load(db))
	return s
}

func TestRetrieveByLiteralExtractsDistinctKanji(t *testing.T) {
	e := &Engine{Storage: testStorage(t), Parser: query.Parser{}, IndexLanguage: types.LangEnglish}
	q, ok := e.MakeQuery("犬犬猫", types.LangUnknown, false)
	require.True(t, ok)

	r := e.RetrieveFor(q, types.LangUnknown, false)
	var got []string
	for {
		k, ok := r.Next()
		if !ok {
			break
		}
		got = append(got, k.Literal)
	}
	require.Equal(t, []string{"犬", "猫"}, got)
}

func TestRetrieveByMeaningUsesForeignQuery(t *testing.T) {
	e := &Engine{Storage: testStorage(t), Parser: query.Parser{}, IndexLanguage: types.LangEnglish}
	q, ok := e.MakeQuery("dog", types.LangUnknown, false)
	require.True(t, ok)

	r := e.RetrieveFor(q, types.LangUnknown, false)
	k, ok := r.Next()
	require.True(t, ok)
	require.Equal(t, "犬", k.Literal)

	_, ok = r.Next()
	require.False(t, ok)
}

func TestScorerFavorsFrequentCommonKanji(t *testing.T) {
	e := &Engine{}
	common := types.Kanji{Literal: "犬", Frequency: 350, JLPTLevel: 4}
	rare := types.Kanji{Literal: "猫", Frequency: 1800}
	require.Greater(t, e.Scorer("犬", common, query.Query{}), e.Scorer("猫", rare, query.Query{}))
}
