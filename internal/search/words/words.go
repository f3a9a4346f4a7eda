// Package words implements the word search-target adapter of spec.md
// §4.7: native-index retrieval for Japanese/KanjiReading queries,
// foreign-index retrieval for Foreign queries, wired to the relevance
// scorers of internal/search/relevance.
package words

import (
	"strings"

	"github.com/jisho-engine/dictsearch/internal/jptext"
	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/search/common"
	"github.com/jisho-engine/dictsearch/internal/search/relevance"
	"github.com/jisho-engine/dictsearch/internal/search/task"
	"github.com/jisho-engine/dictsearch/internal/store"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// Engine retrieves and scores Word documents for one search request.
// IndexLanguage is the content language this engine instance queries
// (the composer runs one Engine per language it needs results from,
// e.g. the user's preferred language and, separately, English when
// show_english is set).
type Engine struct {
	Storage       *store.Storage
	Parser        query.Parser
	IndexLanguage types.Language
}

var _ task.Engine[query.Query, types.Word, int32] = (*Engine)(nil)

// MakeQuery lowers queryStr through the shared query parser, applying
// lang as a language override when the caller supplies one (e.g. a
// request's explicit `l=` parameter), distinct from any `xx:` prefix
// the user typed into the query body itself.
func (e *Engine) MakeQuery(queryStr string, lang types.Language, hasLang bool) (query.Query, bool) {
	p := e.Parser
	if hasLang {
		p.Settings.PreferredLanguage = lang
	}
	return p.Parse(queryStr)
}

func (e *Engine) RetrieveFor(q query.Query, _ types.Language, _ bool) task.Retriever[types.Word] {
	switch {
	case q.Form == query.FormKanjiReading:
		return e.retrieveKanjiReading(q)
	case q.Form == query.FormRegex:
		return e.retrieveRegex(q)
	case q.Lang == types.QueryLangForeign:
		return e.retrieveForeign(q)
	default:
		return e.retrieveNative(q)
	}
}

// retrieveRegex scans the native index's regex scan index for every
// reading the query's compiled pattern fully matches, per spec.md
// §4.5's regex scan index.
func (e *Engine) retrieveRegex(q query.Query) task.Retriever[types.Word] {
	ix := e.Storage.GetIndex(types.LangJapanese)
	re, ok := query.CompileNativeRegex(q.Body)
	if !ok {
		return common.NewIDRetriever(nil, e.Storage.Word)
	}
	return common.NewIDRetriever(ix.NativeWords.Regex(re), e.Storage.Word)
}

func (e *Engine) retrieveNative(q query.Query) task.Retriever[types.Word] {
	ix := e.Storage.GetIndex(types.LangJapanese)
	ids := ix.NativeWords.Get(q.Body)
	if len(ids) == 0 {
		ids = ix.NativeWords.Prefix(q.Body)
	}
	return common.NewIDRetriever(ids, e.Storage.Word)
}

func (e *Engine) retrieveForeign(q query.Query) task.Retriever[types.Word] {
	ix := e.Storage.GetIndex(e.IndexLanguage)
	term := strings.ToLower(q.Body)
	ids := ix.ForeignWords.Get(term)
	if len(ids) == 0 {
		ids = ix.ForeignWords.Prefix(term)
	}
	return common.NewIDRetriever(ids, e.Storage.Word)
}

// retrieveKanjiReading constrains candidates to words whose kanji
// surface contains the requested literal AND whose kana reading
// hiragana-normalizes to (contains) the requested reading, per
// spec.md §4.7's Words paragraph.
//
// Prefix/suffix-only readings are not filtered out here.
// relevance.KanjiReadingScore withholds its kun match bonus only when
// the requested reading itself starts or ends with '-'; the kanji's
// stored on/kun readings are not checked for '-' markers on this path.
func (e *Engine) retrieveKanjiReading(q query.Query) task.Retriever[types.Word] {
	ix := e.Storage.GetIndex(types.LangJapanese)
	literal := string(q.Kanji.Literal)
	candidates := ix.KanjiInWords.Get(literal)
	wanted := jptext.ToHiragana(strings.Trim(q.Kanji.Reading, ".-"))

	filtered := make([]int32, 0, len(candidates))
	for _, seq := range candidates {
		w, ok := e.Storage.Word(seq)
		if !ok || w.Reading.Kanji == "" || !strings.Contains(w.Reading.Kanji, literal) {
			continue
		}
		if wanted != "" && !strings.Contains(jptext.ToHiragana(w.Reading.Kana), wanted) {
			continue
		}
		filtered = append(filtered, seq)
	}
	return common.NewIDRetriever(filtered, e.Storage.Word)
}

func (e *Engine) DocToOutput(w types.Word) []int32 { return []int32{w.Sequence} }

// Scorer wires the relevance package's scoring formulas in by query
// form, matching the original system's per-form order.rs functions.
func (e *Engine) Scorer(_ int32, doc types.Word, q query.Query) float32 {
	switch {
	case q.Form == query.FormKanjiReading:
		return float32(relevance.KanjiReadingScore(doc, q.Kanji.Reading, 0))
	case q.Form == query.FormRegex:
		// No single literal to compare the reading against, so skip
		// NativeJapaneseScore's exact/prefix bonus and rank regex hits
		// by frequency/JLPT/commonness alone.
		return float32(relevance.NativeJapaneseScore(doc, "", 0))
	case q.Lang == types.QueryLangForeign:
		return float32(relevance.ForeignGlossScore(doc, q.Body, e.IndexLanguage, q.Settings.PreferredLanguage, 0))
	default:
		return float32(relevance.NativeJapaneseScore(doc, q.Body, 0))
	}
}

// New builds a ready-to-run SearchTask for queryStr against storage,
// scoped to indexLanguage.
func New(storage *store.Storage, parser query.Parser, indexLanguage types.Language, queryStr string) *task.SearchTask[query.Query, types.Word, int32] {
	e := &Engine{Storage: storage, Parser: parser, IndexLanguage: indexLanguage}
	t := task.New[query.Query, types.Word, int32](e, queryStr)
	t.Scorer = e.Scorer
	return t
}
