package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/jisho-engine/dictsearch/internal/compose"
	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/store"
	"github.com/jisho-engine/dictsearch/internal/types"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, store.InitStorage(db))

	require.NoError(t, store.PutWord(db, types.Word{
		Sequence: 1,
		Reading:  types.Reading{Kana: "ねこ", Kanji: "猫"},
		Priority: []string{"ichi1"},
		Senses: []types.Sense{
			{Language: types.LangEnglish, Glosses: []types.Gloss{{Text: "cat"}}, PartOfSpeech: []string{"n"}},
		},
	}))
	require.NoError(t, store.PutKanji(db, types.Kanji{
		Literal:       "休",
		Meanings:      []string{"rest"},
		Decomposition: []string{"亻", "木"},
	}))

	storage := store.New()
	require.NoError(t, storage.Load(db))

	return &Server{
		Storage:         storage,
		Composer:        &compose.Composer{Storage: storage},
		DefaultSettings: query.Settings{PreferredLanguage: types.LangEnglish, ShowEnglish: true, PageSize: 10},
	}
}

func TestHandleSearchReturnsWordMatch(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/search?s=%E7%8C%AB&t=0", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	words, _ := body["words"].([]any)
	require.Len(t, words, 1)
}

func TestHandleSearchRejectsUnknownTarget(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/search?s=foo&t=9", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearchRejectsEmptyQuery(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/search?s=&t=0", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearchSetsRequestIDHeader(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/search?s=%E7%8C%AB&t=0", nil)
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestHandleRadicalFindsMatchingKanji(t *testing.T) {
	srv := testServer(t)
	body := `{"radicals":["亻"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/radical", strings.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleRadicalRejectsEmptyRadicalSet(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/radical", strings.NewReader(`{"radicals":["a"]}`))
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettingsFromCookiesOverridesDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	req.AddCookie(&http.Cookie{Name: cookieLanguage, Value: "ger"})
	req.AddCookie(&http.Cookie{Name: cookieShowEnglish, Value: "false"})

	settings := settingsFromCookies(req, query.Settings{PreferredLanguage: types.LangEnglish, ShowEnglish: true})
	require.Equal(t, types.LangGerman, settings.PreferredLanguage)
	require.False(t, settings.ShowEnglish)
}
