// Package suggest implements the suggestion search-target adapter of
// spec.md §4.7: an exact-index lookup over the Japanese reading,
// layered with a bounded longest-prefix expansion and a parallel
// romaji→hiragana attempt, scored by relevance.SuggestionScore.
package suggest

import (
	"strings"

	"github.com/jisho-engine/dictsearch/internal/jptext"
	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/search/relevance"
	"github.com/jisho-engine/dictsearch/internal/search/task"
	"github.com/jisho-engine/dictsearch/internal/store"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// defaultStepBudget bounds how many runes the longest-prefix expansion
// will trim off the query tail before giving up.
const defaultStepBudget = 3

// defaultRelevanceMultiplier discounts a prefix-expansion hit relative
// to an exact hit (spec.md §4.7's "configurable relevance-multiplier").
const defaultRelevanceMultiplier = 0.6

// Doc is one candidate suggestion: the sequence it was sourced from, the
// text it's suggesting (a reading, possibly a truncated prefix of the
// query), and whether it arrived via the romaji→hiragana side-channel.
type Doc struct {
	Sequence   int32
	Text       string
	FromRomaji bool
	FromPrefix bool
}

// Engine retrieves and scores Suggestion documents for one search
// request. RelevanceMultiplier and StepBudget tune the longest-prefix
// expansion layer; FrequencyWeight scales how much WordFrequency
// (common-word occurrence counts) contributes to the final score.
type Engine struct {
	Storage             *store.Storage
	Parser              query.Parser
	IndexLanguage       types.Language
	RelevanceMultiplier float32
	FrequencyWeight     float32
	StepBudget          int
}

var _ task.Engine[query.Query, Doc, string] = (*Engine)(nil)

func (e *Engine) MakeQuery(queryStr string, lang types.Language, hasLang bool) (query.Query, bool) {
	p := e.Parser
	if hasLang {
		p.Settings.PreferredLanguage = lang
	}
	return p.Parse(queryStr)
}

type suggestRetriever struct {
	docs []Doc
	pos  int
}

func (r *suggestRetriever) Next() (Doc, bool) {
	if r.pos >= len(r.docs) {
		return Doc{}, false
	}
	d := r.docs[r.pos]
	r.pos++
	return d, true
}

func (e *Engine) RetrieveFor(q query.Query, _ types.Language, _ bool) task.Retriever[Doc] {
	ix := e.indexFor(q)
	body := q.Body
	seen := make(map[string]struct{})
	var docs []Doc

	add := func(seq int32, text string, fromRomaji, fromPrefix bool) {
		key := text
		if fromRomaji {
			key = "romaji:" + key
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		docs = append(docs, Doc{Sequence: seq, Text: text, FromRomaji: fromRomaji, FromPrefix: fromPrefix})
	}

	for _, seq := range ix.Suggestions.Get(body) {
		add(seq, body, false, false)
	}

	budget := e.StepBudget
	if budget <= 0 {
		budget = defaultStepBudget
	}
	trimmed := body
	for step := 0; step < budget && jptext.RealStringLen(trimmed) > 1; step++ {
		trimmed = jptext.StripEnd(trimmed, 1)
		ids := ix.Suggestions.Prefix(trimmed)
		if len(ids) == 0 {
			continue
		}
		for _, seq := range ids {
			add(seq, trimmed, false, true)
		}
		break
	}

	if jptext.IsRomaji(body) {
		hira := jptext.RomajiToHiragana(body)
		for _, seq := range ix.Suggestions.Get(hira) {
			add(seq, hira, true, false)
		}
	}

	return &suggestRetriever{docs: docs}
}

func (e *Engine) indexFor(q query.Query) *store.Index {
	if q.Lang == types.QueryLangForeign {
		return e.Storage.GetIndex(e.IndexLanguage)
	}
	return e.Storage.GetIndex(types.LangJapanese)
}

func (e *Engine) DocToOutput(d Doc) []string { return []string{d.Text} }

// Scorer wires relevance.SuggestionScore in, weighting the common-word
// occurrence count by FrequencyWeight before passing it through the
// log2 formula.
func (e *Engine) Scorer(_ string, doc Doc, q query.Query) float32 {
	ix := e.indexFor(q)
	occurrences := ix.WordFrequency[doc.Sequence]
	weight := e.FrequencyWeight
	if weight <= 0 {
		weight = 1
	}
	weighted := int(float32(occurrences) * weight)
	score := float32(relevance.SuggestionScore(doc.Text, strings.TrimSpace(q.Body), weighted, doc.FromRomaji))
	if doc.FromPrefix {
		multiplier := e.RelevanceMultiplier
		if multiplier <= 0 {
			multiplier = defaultRelevanceMultiplier
		}
		score *= multiplier
	}
	return score
}

// New builds a ready-to-run SearchTask for queryStr against storage,
// scoped to indexLanguage, with default prefix-expansion tuning.
func New(storage *store.Storage, parser query.Parser, indexLanguage types.Language, queryStr string) *task.SearchTask[query.Query, Doc, string] {
	e := &Engine{
		Storage:             storage,
		Parser:              parser,
		IndexLanguage:       indexLanguage,
		RelevanceMultiplier: defaultRelevanceMultiplier,
		FrequencyWeight:     1,
		StepBudget:          defaultStepBudget,
	}
	t := task.New[query.Query, Doc, string](e, queryStr)
	t.Scorer = e.Scorer
	return t
}
