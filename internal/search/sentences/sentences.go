// Package sentences implements the sentence search-target adapter of
// spec.md §4.7: native-index retrieval over the Japanese text's
// text_parts segmentation, foreign-index retrieval over whitespace
// tokens of the translation in the index's language.
package sentences

import (
	"strings"

	"github.com/jisho-engine/dictsearch/internal/jptext"
	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/search/common"
	"github.com/jisho-engine/dictsearch/internal/search/task"
	"github.com/jisho-engine/dictsearch/internal/store"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// Engine retrieves and scores Sentence documents for one search request.
type Engine struct {
	Storage       *store.Storage
	Parser        query.Parser
	IndexLanguage types.Language
}

var _ task.Engine[query.Query, types.Sentence, int64] = (*Engine)(nil)

func (e *Engine) MakeQuery(queryStr string, lang types.Language, hasLang bool) (query.Query, bool) {
	p := e.Parser
	if hasLang {
		p.Settings.PreferredLanguage = lang
	}
	return p.Parse(queryStr)
}

func (e *Engine) RetrieveFor(q query.Query, _ types.Language, _ bool) task.Retriever[types.Sentence] {
	lookup := func(id int64) (types.Sentence, bool) { return e.Storage.Sentence(id) }

	if q.Lang == types.QueryLangForeign {
		ix := e.Storage.GetIndex(e.IndexLanguage)
		var ids []int32
		for _, tok := range strings.Fields(strings.ToLower(q.Body)) {
			ids = append(ids, ix.SentencesForeign.Get(tok)...)
		}
		return common.NewIDRetriever(toInt64(ids), lookup)
	}

	ix := e.Storage.GetIndex(types.LangJapanese)
	var ids []int32
	for _, part := range jptext.TextParts(q.Body) {
		ids = append(ids, ix.SentencesNative.Get(part)...)
	}
	return common.NewIDRetriever(toInt64(dedupInt32(ids)), lookup)
}

func toInt64(ids []int32) []int64 {
	out := make([]int64, len(ids))
	for i, v := range ids {
		out[i] = int64(v)
	}
	return out
}

func dedupInt32(ids []int32) []int32 {
	seen := make(map[int32]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (e *Engine) DocToOutput(s types.Sentence) []int64 { return []int64{s.ID} }

// Scorer favors sentences whose Japanese text contains the query body
// verbatim over ones that only matched a tokenized part of it. Like
// kanji and names, no sentence-scoring source was retrieved from the
// original system, so this is a new heuristic.
func (e *Engine) Scorer(_ int64, doc types.Sentence, q query.Query) float32 {
	if strings.Contains(doc.Japanese, q.Body) {
		return 10
	}
	if text, ok := doc.Translations[e.IndexLanguage]; ok && strings.Contains(strings.ToLower(text), strings.ToLower(q.Body)) {
		return 5
	}
	return 0
}

// New builds a ready-to-run SearchTask for queryStr against storage.
func New(storage *store.Storage, parser query.Parser, indexLanguage types.Language, queryStr string) *task.SearchTask[query.Query, types.Sentence, int64] {
	e := &Engine{Storage: storage, Parser: parser, IndexLanguage: indexLanguage}
	t := task.New[query.Query, types.Sentence, int64](e, queryStr)
	t.Scorer = e.Scorer
	return t
}
