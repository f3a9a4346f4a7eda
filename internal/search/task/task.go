// Package task implements the generic search engine of spec.md §4.6: a
// pipeline parameterized over a capability set (query lowering,
// retrieval, document explosion, scoring) shared by every search-target
// adapter in internal/search/{words,kanji,names,sentences,suggest}.
package task

import "github.com/jisho-engine/dictsearch/internal/types"

// Retriever yields candidate documents one at a time.
type Retriever[D any] interface {
	Next() (D, bool)
}

// Engine is the capability set a search-target adapter implements.
// Q is the engine's lowered query type, D is the retrieved document
// type, O is the user-visible output type.
type Engine[Q any, D any, O any] interface {
	// MakeQuery lowers the raw query string (and optional language) into
	// the engine's own query representation. ok is false when the
	// engine can't act on this query at all.
	MakeQuery(queryStr string, lang types.Language, hasLang bool) (q Q, ok bool)

	// RetrieveFor returns a cursor over candidate documents for query.
	RetrieveFor(query Q, lang types.Language, hasLang bool) Retriever[D]

	// DocToOutput explodes one document into 0..n user-visible outputs.
	DocToOutput(doc D) []O
}

// Scorer computes the relevance of one output within its source
// document and query context.
type Scorer[Q any, D any, O any] func(out O, doc D, query Q) float32

// GuessKind classifies a result-count estimate (spec.md §4.6).
type GuessKind int

const (
	GuessAccurate GuessKind = iota
	GuessMoreThan
	GuessUndefined
)

func (g GuessKind) String() string {
	switch g {
	case GuessAccurate:
		return "Accurate"
	case GuessMoreThan:
		return "MoreThan"
	default:
		return "Undefined"
	}
}

// Guess is an approximate result count, accurate up to EstLimit.
type Guess struct {
	Count int
	Kind  GuessKind
}

// SearchTask carries one search request through Engine's pipeline.
// O must be comparable so StableUniquePrioContainerMax can dedup by
// output identity.
type SearchTask[Q any, D any, O comparable] struct {
	Engine Engine[Q, D, O]

	QueryStr string
	Lang     types.Language
	HasLang  bool

	ItemFilter   func(D) bool
	ResultFilter func(O) bool
	Scorer       Scorer[Q, D, O]

	Threshold float32
	Limit     int
	Offset    int
	EstLimit  int
}

// New returns a SearchTask with the defaults the original system uses:
// limit 1000, offset 0, no threshold, estimation limit 100.
func New[Q any, D any, O comparable](engine Engine[Q, D, O], queryStr string) *SearchTask[Q, D, O] {
	return &SearchTask[Q, D, O]{
		Engine:   engine,
		QueryStr: queryStr,
		Limit:    1000,
		EstLimit: 100,
	}
}

// HasThreshold reports whether threshold filtering is active; a
// threshold of 0 disables it (spec.md §4.6 edge cases).
func (t *SearchTask[Q, D, O]) HasThreshold() bool { return t.Threshold > 0 }

// Find runs the full FIND algorithm and returns the requested page
// together with the total number of outputs pushed through scoring.
func (t *SearchTask[Q, D, O]) Find() ([]O, int) {
	cap := t.Limit + t.Offset
	pq := newStablePrio[O](cap)
	t.run(pq, true)
	return pq.page(t.Offset, t.Limit), pq.totalPushed()
}

// EstimateResultCount approximates the total result count without
// materializing or scoring the full result set, per spec.md §4.6's
// Estimation paragraph.
func (t *SearchTask[Q, D, O]) EstimateResultCount() Guess {
	counter := newMaxCounter(t.EstLimit + 1)
	t.run(counter, false)

	estimated := counter.val()
	kind := GuessUndefined
	if estimated <= t.EstLimit || estimated == 0 {
		kind = GuessAccurate
	} else {
		kind = GuessMoreThan
	}

	count := estimated
	if count > t.EstLimit {
		count = t.EstLimit
	}
	return Guess{Count: count, Kind: kind}
}

// pushable is the common interface stablePrio and maxCounter satisfy:
// accept one scored output, report whether the caller should keep
// pulling more candidates.
type pushable[O any] interface {
	push(score float32, value O) bool
}

// countingPushable adapts maxCounter (which doesn't care about O) to
// the pushable[O] interface.
type countingPushable[O any] struct{ *maxCounter }

func (c countingPushable[O]) push(float32, O) bool { return c.maxCounter.push() }

func (t *SearchTask[Q, D, O]) run(out any, sort bool) {
	query, ok := t.Engine.MakeQuery(t.QueryStr, t.Lang, t.HasLang)
	if !ok {
		return
	}

	var p pushable[O]
	switch v := out.(type) {
	case *stablePrio[O]:
		p = v
	case *maxCounter:
		p = countingPushable[O]{v}
	default:
		return
	}

	retr := t.Engine.RetrieveFor(query, t.Lang, t.HasLang)

	for {
		doc, ok := retr.Next()
		if !ok {
			return
		}

		if t.ItemFilter != nil && !t.ItemFilter(doc) {
			continue
		}

		outputs := t.Engine.DocToOutput(doc)
		if len(outputs) == 0 {
			continue
		}
		if t.ResultFilter != nil {
			outputs = filterSlice(outputs, t.ResultFilter)
		}

		for _, o := range outputs {
			var score float32
			if sort || t.HasThreshold() {
				if t.Scorer != nil {
					score = t.Scorer(o, doc, query)
				}
			}
			if t.HasThreshold() && score < t.Threshold {
				continue
			}
			if !p.push(score, o) {
				return
			}
		}
	}
}

func filterSlice[O any](in []O, keep func(O) bool) []O {
	out := in[:0]
	for _, o := range in {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
