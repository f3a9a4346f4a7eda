// Package httpapi is the thin net/http + gorilla/mux transport layer
// of spec.md §6: it parses the request (query params, settings
// cookies), drives the C7 search-target adapters, hands the raw
// results to internal/compose, and encodes the JSON response. It holds
// no search logic of its own — every handler is parse → search →
// compose → encode, following the teacher's own main.go pattern of
// keeping the binary's glue code thin and pushing behavior into
// packages.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jisho-engine/dictsearch/internal/apperr"
	"github.com/jisho-engine/dictsearch/internal/compose"
	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/search/kanji"
	"github.com/jisho-engine/dictsearch/internal/search/names"
	"github.com/jisho-engine/dictsearch/internal/search/radical"
	"github.com/jisho-engine/dictsearch/internal/search/sentences"
	"github.com/jisho-engine/dictsearch/internal/search/task"
	"github.com/jisho-engine/dictsearch/internal/search/words"
	"github.com/jisho-engine/dictsearch/internal/store"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// Server wires a Storage and a Composer into the two endpoints of
// spec.md §6.
type Server struct {
	Storage         *store.Storage
	Composer        *compose.Composer
	DefaultSettings query.Settings
}

// Router builds the gorilla/mux router for the two endpoints.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/search", s.withRequestID(s.handleSearch)).Methods(http.MethodGet)
	r.HandleFunc("/api/radical", s.withRequestID(s.handleRadical)).Methods(http.MethodPost)
	return r
}

// withRequestID tags every request with a uuid-based request id carried
// in the response header and in the request-scoped logger, mirroring
// ragent's use of google/uuid for request/session identifiers.
func (s *Server) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)
		logger := log.With().Str("request_id", reqID).Str("path", r.URL.Path).Logger()
		next(w, r.WithContext(logger.WithContext(r.Context())))
	}
}

func reqLogger(r *http.Request) *zerolog.Logger {
	return zerolog.Ctx(r.Context())
}

// parseTargetParam maps spec.md §6's t=0..3 query param to query.SearchTarget.
func parseTargetParam(raw string) (query.SearchTarget, bool) {
	switch raw {
	case "", "0":
		return query.TargetWords, true
	case "1":
		return query.TargetKanji, true
	case "2":
		return query.TargetSentences, true
	case "3":
		return query.TargetNames, true
	default:
		return 0, false
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	target, ok := parseTargetParam(q.Get("t"))
	if !ok {
		writeError(w, r, apperr.Input("unknown search target %q", q.Get("t")))
		return
	}

	page, _ := strconv.Atoi(q.Get("p"))
	wordIndex, _ := strconv.Atoi(q.Get("i"))

	settings := settingsFromCookies(r, s.DefaultSettings)
	if lang := q.Get("l"); lang != "" {
		if parsed, ok := types.ParseLanguage(lang); ok {
			settings.PreferredLanguage = parsed
		}
	}

	parser := query.Parser{DefaultTarget: target, Settings: settings, Page: page, WordIndex: wordIndex}
	queryStr := q.Get("s")

	parsed, ok := parser.Parse(queryStr)
	if !ok {
		writeError(w, r, apperr.Input("empty query body"))
		return
	}

	results, guess := s.runSearch(parsed, parser, queryStr)
	resp := s.Composer.Compose(parsed, results)
	resp.Guess = guess

	writeJSON(w, http.StatusOK, resp)
}

// runSearch drives the C7 adapter(s) selected by the parsed query's
// target, following spec.md §4.9's "given task results" input shape.
// Only the adapter matching Target runs; the others return empty
// slices, matching the original's per-target page design (one search
// target is active per request, not all four at once).
func (s *Server) runSearch(q query.Query, parser query.Parser, queryStr string) (compose.TaskResults, *task.Guess) {
	var results compose.TaskResults
	var guess task.Guess

	switch q.Target {
	case query.TargetKanji:
		t := kanji.New(s.Storage, parser, q.Settings.PreferredLanguage, queryStr)
		outs, _ := t.Find()
		for _, literal := range outs {
			if k, ok := s.Storage.Kanji(literal); ok {
				results.Kanji = append(results.Kanji, k)
			}
		}
		guess = t.EstimateResultCount()
	case query.TargetSentences:
		t := sentences.New(s.Storage, parser, q.Settings.PreferredLanguage, queryStr)
		outs, _ := t.Find()
		for _, id := range outs {
			if sent, ok := s.Storage.Sentence(id); ok {
				results.Sentences = append(results.Sentences, sent)
			}
		}
		guess = t.EstimateResultCount()
	case query.TargetNames:
		t := names.New(s.Storage, parser, q.Settings.PreferredLanguage, queryStr)
		outs, _ := t.Find()
		for _, seq := range outs {
			if n, ok := s.Storage.Name(seq); ok {
				results.Names = append(results.Names, n)
			}
		}
		guess = t.EstimateResultCount()
	default:
		t := words.New(s.Storage, parser, q.Settings.PreferredLanguage, queryStr)
		outs, _ := t.Find()
		for _, seq := range outs {
			if word, ok := s.Storage.Word(seq); ok {
				results.Words = append(results.Words, word)
			}
		}
		guess = t.EstimateResultCount()
	}

	return results, &guess
}

type radicalRequest struct {
	Radicals []string `json:"radicals"`
}

type radicalResponse struct {
	Kanji            map[string][]string `json:"kanji"`
	PossibleRadicals []string             `json:"possible_radicals"`
}

func (s *Server) handleRadical(w http.ResponseWriter, r *http.Request) {
	var req radicalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperr.Input("malformed radical request: %v", err))
		return
	}

	var radicals []rune
	for _, lit := range req.Radicals {
		radicals = append(radicals, []rune(lit)...)
	}

	resp, err := radical.Lookup(s.Storage, radicals)
	if err != nil {
		writeError(w, r, apperr.New(apperr.KindInput, err.Error()))
		return
	}

	out := radicalResponse{Kanji: make(map[string][]string)}
	for stroke, literals := range resp.KanjiByStrokeCount {
		key := strconv.Itoa(stroke)
		for _, lit := range literals {
			out.Kanji[key] = append(out.Kanji[key], string(lit))
		}
	}
	for _, r := range resp.PossibleRadicals {
		out.PossibleRadicals = append(out.PossibleRadicals, string(r))
	}

	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	reqLogger(r).Warn().Err(err).Str("kind", string(kind)).Msg("request failed")
	writeJSON(w, apperr.StatusCode(kind), map[string]string{"error": err.Error()})
}
