// Package names implements the name search-target adapter of
// spec.md §4.7: native-index retrieval for Japanese queries,
// foreign-index retrieval (over English transliterations/glosses) for
// Foreign queries.
package names

import (
	"strings"

	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/search/common"
	"github.com/jisho-engine/dictsearch/internal/search/task"
	"github.com/jisho-engine/dictsearch/internal/store"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// Engine retrieves and scores Name documents for one search request.
type Engine struct {
	Storage       *store.Storage
	Parser        query.Parser
	IndexLanguage types.Language
}

var _ task.Engine[query.Query, types.Name, int32] = (*Engine)(nil)

func (e *Engine) MakeQuery(queryStr string, lang types.Language, hasLang bool) (query.Query, bool) {
	p := e.Parser
	if hasLang {
		p.Settings.PreferredLanguage = lang
	}
	return p.Parse(queryStr)
}

func (e *Engine) RetrieveFor(q query.Query, _ types.Language, _ bool) task.Retriever[types.Name] {
	if q.Lang == types.QueryLangForeign {
		ix := e.Storage.GetIndex(types.LangEnglish)
		term := strings.ToLower(q.Body)
		ids := ix.NamesForeign.Get(term)
		if len(ids) == 0 {
			ids = ix.NamesForeign.Prefix(term)
		}
		return common.NewIDRetriever(ids, e.Storage.Name)
	}

	ix := e.Storage.GetIndex(types.LangJapanese)
	ids := ix.NamesNative.Get(q.Body)
	if len(ids) == 0 {
		ids = ix.NamesNative.Prefix(q.Body)
	}
	return common.NewIDRetriever(ids, e.Storage.Name)
}

func (e *Engine) DocToOutput(n types.Name) []int32 { return []int32{n.Sequence} }

// Scorer boosts an exact reading/translation match over a prefix hit.
// No name-scoring source was retrieved from the original system (§4.8
// covers only word and suggestion scoring), so this is a new, modest
// heuristic rather than a ported formula.
func (e *Engine) Scorer(_ int32, doc types.Name, q query.Query) float32 {
	var score float32
	if doc.Reading.Kana == q.Body || doc.Reading.Kanji == q.Body {
		score += 20
	}
	for _, t := range doc.Translations {
		if strings.EqualFold(t, q.Body) {
			score += 20
			break
		}
	}
	return score
}

// New builds a ready-to-run SearchTask for queryStr against storage.
func New(storage *store.Storage, parser query.Parser, indexLanguage types.Language, queryStr string) *task.SearchTask[query.Query, types.Name, int32] {
	e := &Engine{Storage: storage, Parser: parser, IndexLanguage: indexLanguage}
	t := task.New[query.Query, types.Name, int32](e, queryStr)
	t.Scorer = e.Scorer
	return t
}
