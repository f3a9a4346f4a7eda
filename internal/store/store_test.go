package store

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/jisho-engine/dictsearch/internal/types"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	require.NoError(t, InitStorage(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutAndLoadWord(t *testing.T) {
	db := openTestDB(t)

	w := types.Word{
		Sequence: 1001,
		Reading:  types.Reading{Kana: "いぬ", Kanji: "犬"},
		Priority: []string{"news1"},
		Senses: []types.Sense{
			{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "dog"}}},
		},
	}
	require.NoError(t, PutWord(db, w))

	words, err := loadWords(db)
	require.NoError(t, err)
	require.Len(t, words, 1)
	require.Equal(t, "犬", words[0].Reading.Kanji)
	require.True(t, words[0].IsCommon())
	require.Equal(t, []string{"dog"}, words[0].Senses[0].GlossTexts())
}

func TestStorageLoadAndGetIndexFallback(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, PutWord(db, types.Word{
		Sequence: 1,
		Reading:  types.Reading{Kana: "いぬ", Kanji: "犬"},
		Senses:   []types.Sense{{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "dog"}}}},
	}))

	s := New()
	require.NoError(t, s.Load(db))

	en := s.GetIndex(types.LangEnglish)
	require.NotNil(t, en)
	require.Equal(t, PostingList{1}, en.ForeignWords.Get("dog"))

	fallback := s.GetIndex(types.Language("xyz"))
	require.Same(t, en, fallback)
}

func TestPutAndLoadName(t *testing.T) {
	db := openTestDB(t)

	n := types.Name{
		Sequence:     5000001,
		Reading:      types.Reading{Kana: "たなか", Kanji: "田中"},
		Tags:         []string{"surname"},
		Translations: []string{"Tanaka"},
	}
	require.NoError(t, PutName(db, n))

	s := New()
	require.NoError(t, s.Load(db))

	got, ok := s.Name(5000001)
	require.True(t, ok)
	require.Equal(t, "田中", got.Reading.Kanji)

	en := s.GetIndex(types.LangEnglish)
	require.Equal(t, PostingList{5000001}, en.NamesForeign.Get("tanaka"))
	require.Equal(t, PostingList{5000001}, en.NamesNative.Get("田中"))
}

func TestRadicalIndexKanjiByRadicals(t *testing.T) {
	idx := newRadicalIndex()
	idx.Add('氵', "海")
	idx.Add('毎', "海")
	idx.Add('氵', "河")

	got := idx.KanjiByRadicals([]rune{'氵', '毎'})
	require.Equal(t, []string{"海"}, got)
}

func TestTermIndexAddIsIdempotentAndSorted(t *testing.T) {
	idx := newTermIndex()
	idx.Add("いぬ", 3)
	idx.Add("いぬ", 1)
	idx.Add("いぬ", 3)
	require.Equal(t, PostingList{1, 3}, idx.Get("いぬ"))
}
