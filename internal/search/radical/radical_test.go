package radical

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

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
		Literal:       "休",
		StrokeCount:   6,
		Decomposition: []string{"亻", "木"},
	}))
	require.NoError(t, store.PutKanji(db, types.Kanji{
		Literal:       "林",
		StrokeCount:   8,
		Decomposition: []string{"木", "木"},
	}))

	s := store.New()
	require.NoError(t, s.Load(db))
	return s
}

func TestLookupFindsKanjiByAllRadicals(t *testing.T) {
	resp, err := Lookup(testStorage(t), []rune{'亻', '木'})
	require.NoError(t, err)
	require.Contains(t, resp.KanjiByStrokeCount[6], '休')
	require.NotContains(t, resp.KanjiByStrokeCount[8], '林')
}

func TestLookupRejectsEmptyAfterFiltering(t *testing.T) {
	_, err := Lookup(testStorage(t), []rune{'a', 'b'})
	require.ErrorIs(t, err, ErrNoRadicals)
}

func TestLookupDropsDuplicates(t *testing.T) {
	resp, err := Lookup(testStorage(t), []rune{'木', '木', '亻'})
	require.NoError(t, err)
	require.Contains(t, resp.KanjiByStrokeCount[6], '休')
}

func TestLookupRejectsMoreThan12DistinctRadicals(t *testing.T) {
	many := make([]rune, 13)
	for i := range many {
		many[i] = rune(0x2F00 + i) // distinct Kangxi Radicals block code points
	}
	_, err := Lookup(testStorage(t), many)
	require.ErrorIs(t, err, ErrTooManyRadicals)
}

func TestLookupComputesStillSelectableRadicals(t *testing.T) {
	resp, err := Lookup(testStorage(t), []rune{'木'})
	require.NoError(t, err)
	require.Contains(t, resp.PossibleRadicals, '亻')
	require.NotContains(t, resp.PossibleRadicals, '木')
}
