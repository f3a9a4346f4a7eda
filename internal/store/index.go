package store

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jisho-engine/dictsearch/internal/jptext"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// PostingList is a sorted, deduplicated list of sequence identifiers.
type PostingList []int32

// TermIndex is a simple exact-term inverted index over a string key
// (a reading, a gloss token, a meaning word) to the sequence
// identifiers of the documents that carry it. Unlike jotoba's
// n-gram/IDF-weighted search index, lookups here are exact or
// prefix-scanned over the term set; the retrieval cursor
// (internal/search/task) is what applies scoring and ranking on top.
type TermIndex struct {
	postings map[string]PostingList
}

func newTermIndex() *TermIndex {
	return &TermIndex{postings: make(map[string]PostingList)}
}

// Add records that seq carries term.
func (idx *TermIndex) Add(term string, seq int32) {
	if term == "" {
		return
	}
	list := idx.postings[term]
	n := len(list)
	at := sort.Search(n, func(i int) bool { return list[i] >= seq })
	if at < n && list[at] == seq {
		return
	}
	list = append(list, 0)
	copy(list[at+1:], list[at:])
	list[at] = seq
	idx.postings[term] = list
}

// Get returns the posting list for an exact term match.
func (idx *TermIndex) Get(term string) PostingList {
	return idx.postings[term]
}

// Prefix returns the union of posting lists for every term with the
// given prefix, used by suggestion indexes.
func (idx *TermIndex) Prefix(prefix string) PostingList {
	seen := map[int32]struct{}{}
	var out PostingList
	for term, list := range idx.postings {
		if !strings.HasPrefix(term, prefix) {
			continue
		}
		for _, s := range list {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Regex is the regex scan index (spec.md §4.5's "regex scan index",
// `regex: RegexSearchIndex` in the original's word store): rather than
// a separate posting structure, it scans the exact-term keys already
// held by this index and unions the posting lists of every term the
// compiled pattern fully matches. A linear scan is the right shape for
// this index specifically because a character-class/wildcard query
// ("[むめ]す") can't be resolved by a single map lookup or prefix walk
// the way NativeWords.Get/Prefix can.
func (idx *TermIndex) Regex(pattern *regexp.Regexp) PostingList {
	seen := map[int32]struct{}{}
	var out PostingList
	for term, list := range idx.postings {
		if !pattern.MatchString(term) {
			continue
		}
		for _, s := range list {
			if _, ok := seen[s]; !ok {
				seen[s] = struct{}{}
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Terms returns every distinct term currently indexed.
func (idx *TermIndex) Terms() []string {
	out := make([]string, 0, len(idx.postings))
	for t := range idx.postings {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// RadicalIndex maps a radical literal to the set of kanji literals
// whose decomposition contains it.
type RadicalIndex struct {
	byRadical map[rune][]string
}

func newRadicalIndex() *RadicalIndex {
	return &RadicalIndex{byRadical: make(map[rune][]string)}
}

func (r *RadicalIndex) Add(radical rune, kanjiLiteral string) {
	list := r.byRadical[radical]
	for _, k := range list {
		if k == kanjiLiteral {
			return
		}
	}
	r.byRadical[radical] = append(list, kanjiLiteral)
}

// KanjiByRadicals returns the kanji literals whose decomposition
// contains every radical in radicals, per spec.md §4.7(c).
func (r *RadicalIndex) KanjiByRadicals(radicals []rune) []string {
	if len(radicals) == 0 {
		return nil
	}
	counts := map[string]int{}
	for _, rad := range radicals {
		seenThisRadical := map[string]struct{}{}
		for _, k := range r.byRadical[rad] {
			if _, ok := seenThisRadical[k]; ok {
				continue
			}
			seenThisRadical[k] = struct{}{}
			counts[k]++
		}
	}
	var out []string
	for k, c := range counts {
		if c >= len(radicals) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// FrequencyTable is a relevance side-table mapping a sequence id to a
// pre-computed frequency/rank statistic consulted by the relevance
// scorers (internal/search/relevance) without re-deriving it per query.
type FrequencyTable map[int32]int

// Index is the full set of indexes for one content language, per
// spec.md §4.5.
type Index struct {
	Lang types.Language

	NativeWords *TermIndex // kana/kanji reading -> word sequence
	ForeignWords *TermIndex // lowercase gloss token -> word sequence

	// KanjiInWords maps a single kanji literal to the sequences of words
	// whose kanji surface form contains it, so a KanjiReading query
	// ("生 い") can find every word containing 生 without scanning the
	// whole corpus. Language-independent like NativeWords, so it's
	// populated identically in every per-language Index.
	KanjiInWords *TermIndex

	// KanjiLiteralsByMeaning maps a lowercase meaning word to the kanji
	// literals whose meaning list contains it. Kept as a plain map rather
	// than a TermIndex since kanji are identified by literal, not by an
	// integer sequence id.
	KanjiLiteralsByMeaning map[string][]string

	NamesNative  *TermIndex
	NamesForeign *TermIndex

	SentencesNative  *TermIndex
	SentencesForeign *TermIndex

	Suggestions *TermIndex

	WordFrequency FrequencyTable
}

func newIndex(lang types.Language) *Index {
	return &Index{
		Lang:                   lang,
		NativeWords:            newTermIndex(),
		ForeignWords:           newTermIndex(),
		KanjiInWords:           newTermIndex(),
		KanjiLiteralsByMeaning: make(map[string][]string),
		NamesNative:            newTermIndex(),
		NamesForeign:           newTermIndex(),
		SentencesNative:        newTermIndex(),
		SentencesForeign:       newTermIndex(),
		Suggestions:            newTermIndex(),
		WordFrequency:          make(FrequencyTable),
	}
}

// indexWord adds a word's readings and glosses to lang's indexes.
func (ix *Index) indexWord(w types.Word) {
	ix.NativeWords.Add(w.Reading.Kana, w.Sequence)
	if w.Reading.Kanji != "" {
		ix.NativeWords.Add(w.Reading.Kanji, w.Sequence)
		for _, r := range w.Reading.Kanji {
			if jptext.IsKanji(r) {
				ix.KanjiInWords.Add(string(r), w.Sequence)
			}
		}
	}
	ix.Suggestions.Add(w.Reading.Kana, w.Sequence)

	for _, sense := range w.Senses {
		if sense.Language != ix.Lang {
			continue
		}
		for _, g := range sense.GlossTexts() {
			ix.ForeignWords.Add(strings.ToLower(g), w.Sequence)
		}
	}
	if w.IsCommon() {
		ix.WordFrequency[w.Sequence] = ix.WordFrequency[w.Sequence] + 1
	}
}

func (ix *Index) indexKanjiMeaning(literal, meaning string) {
	meaning = strings.ToLower(strings.TrimSpace(meaning))
	if meaning == "" {
		return
	}
	list := ix.KanjiLiteralsByMeaning[meaning]
	for _, l := range list {
		if l == literal {
			return
		}
	}
	ix.KanjiLiteralsByMeaning[meaning] = append(list, literal)
}

// indexName adds a name's readings to lang's native name index, and its
// translations to the English index (JMnedict-simplified ships English
// transliterations/glosses only, unlike Word.Senses which is tagged
// per-language).
func (ix *Index) indexName(n types.Name) {
	ix.NamesNative.Add(n.Reading.Kana, n.Sequence)
	if n.Reading.Kanji != "" {
		ix.NamesNative.Add(n.Reading.Kanji, n.Sequence)
	}
	if ix.Lang != types.LangEnglish {
		return
	}
	for _, t := range n.Translations {
		ix.NamesForeign.Add(strings.ToLower(t), n.Sequence)
	}
}

func (ix *Index) indexSentence(s types.Sentence) {
	for _, part := range jptext.TextParts(s.Japanese) {
		ix.SentencesNative.Add(part, int32(s.ID))
	}
	if text, ok := s.Translations[ix.Lang]; ok {
		for _, tok := range strings.Fields(strings.ToLower(text)) {
			ix.SentencesForeign.Add(tok, int32(s.ID))
		}
	}
}
