// Package kanji implements the kanji search-target adapter of
// spec.md §4.7: lookup by literal set extracted from the query, and
// lookup by meaning via the kanji-meaning index. Radical-composition
// search (§4.7's third mode) is its own standalone service,
// internal/search/radical, since it's reached through a separate
// POST endpoint rather than the text search box.
package kanji

import (
	"strings"

	"github.com/jisho-engine/dictsearch/internal/jptext"
	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/search/common"
	"github.com/jisho-engine/dictsearch/internal/search/task"
	"github.com/jisho-engine/dictsearch/internal/store"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// Engine retrieves and scores Kanji documents for one search request.
type Engine struct {
	Storage       *store.Storage
	Parser        query.Parser
	IndexLanguage types.Language
}

var _ task.Engine[query.Query, types.Kanji, string] = (*Engine)(nil)

func (e *Engine) MakeQuery(queryStr string, lang types.Language, hasLang bool) (query.Query, bool) {
	p := e.Parser
	if hasLang {
		p.Settings.PreferredLanguage = lang
	}
	return p.Parse(queryStr)
}

func (e *Engine) RetrieveFor(q query.Query, _ types.Language, _ bool) task.Retriever[types.Kanji] {
	if q.Lang == types.QueryLangForeign {
		return e.retrieveByMeaning(q)
	}
	return e.retrieveByLiteral(q)
}

// retrieveByLiteral extracts the distinct kanji runes of the query
// body, in the order they first appear.
func (e *Engine) retrieveByLiteral(q query.Query) task.Retriever[types.Kanji] {
	seen := make(map[string]struct{})
	var literals []string
	for _, r := range q.Body {
		if !jptext.IsKanji(r) {
			continue
		}
		lit := string(r)
		if _, ok := seen[lit]; ok {
			continue
		}
		seen[lit] = struct{}{}
		literals = append(literals, lit)
	}
	return common.NewIDRetriever(literals, e.Storage.Kanji)
}

func (e *Engine) retrieveByMeaning(q query.Query) task.Retriever[types.Kanji] {
	ix := e.Storage.GetIndex(e.IndexLanguage)
	literals := ix.KanjiLiteralsByMeaning[strings.ToLower(q.Body)]
	return common.NewIDRetriever(literals, e.Storage.Kanji)
}

func (e *Engine) DocToOutput(k types.Kanji) []string { return []string{k.Literal} }

// Scorer ranks common, frequent kanji above rare ones. The original
// system's order.rs only defines word scorers; no kanji-scoring source
// was retrieved, so this is a new heuristic (noted in DESIGN.md) rather
// than a ported formula: lower dictionary-frequency rank and a lower
// JLPT level number both raise the score (level 1 adds 5, level 5 adds 1).
func (e *Engine) Scorer(_ string, doc types.Kanji, _ query.Query) float32 {
	var score float32
	if doc.Frequency > 0 {
		score += float32(2501-doc.Frequency) / 100
	}
	if doc.JLPTLevel > 0 {
		score += float32(6 - doc.JLPTLevel)
	}
	return score
}

// New builds a ready-to-run SearchTask for queryStr against storage,
// scoped to indexLanguage (used for meaning-search lookups).
func New(storage *store.Storage, parser query.Parser, indexLanguage types.Language, queryStr string) *task.SearchTask[query.Query, types.Kanji, string] {
	e := &Engine{Storage: storage, Parser: parser, IndexLanguage: indexLanguage}
	t := task.New[query.Query, types.Kanji, string](e, queryStr)
	t.Scorer = e.Scorer
	return t
}
