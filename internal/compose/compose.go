// Package compose implements the result composer of spec.md §4.9:
// merges per-target task results, applies the language and PosSimple
// filters, and derives the display-ready fields (reading triplet,
// audio path, accent rendering, collocations, transitive/intransitive
// counterparts) that turn a Word into the API's word shape.
package compose

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jisho-engine/dictsearch/internal/query"
	"github.com/jisho-engine/dictsearch/internal/search/task"
	"github.com/jisho-engine/dictsearch/internal/store"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// TaskResults bundles the raw outputs of one search request's C7 tasks,
// keyed by target, before filtering and display derivation.
type TaskResults struct {
	Words     []types.Word
	Kanji     []types.Kanji
	Sentences []types.Sentence
	Names     []types.Name
	Guess     *task.Guess
}

// ReadingView is a word's display-ready reading triplet.
type ReadingView struct {
	Kana     string `json:"kana"`
	Kanji    string `json:"kanji,omitempty"`
	Furigana string `json:"furigana,omitempty"`
}

// SenseView is a display-ready sense.
type SenseView struct {
	Glosses      []string       `json:"glosses"`
	PartOfSpeech []string       `json:"pos,omitempty"`
	Language     types.Language `json:"language"`
	Dialect      []string       `json:"dialect,omitempty"`
	Field        []string       `json:"field,omitempty"`
	Information  string         `json:"information,omitempty"`
	Antonym      []string       `json:"antonym,omitempty"`
	Xref         []string       `json:"xref,omitempty"`
	Misc         []string       `json:"misc,omitempty"`
}

// AccentPart is one (span, high) run of the pitch-accent rendering.
type AccentPart struct {
	Span               string `json:"span"`
	High               bool   `json:"high"`
	FirstBorder        bool   `json:"first_border,omitempty"`
	ContinuationBorder bool   `json:"continuation_border,omitempty"`
}

// WordResult is the fully composed, display-ready word entry.
type WordResult struct {
	Sequence                int32               `json:"sequence"`
	Common                  bool                `json:"common"`
	Reading                 ReadingView         `json:"reading"`
	Senses                  []SenseView         `json:"senses"`
	Audio                   string              `json:"audio,omitempty"`
	AltReadings             []string            `json:"alt_readings,omitempty"`
	Accent                  []AccentPart        `json:"accent,omitempty"`
	Collocations            []types.Collocation `json:"collocations,omitempty"`
	TransitiveCounterpart   []int32             `json:"transitive_counterpart,omitempty"`
	IntransitiveCounterpart []int32             `json:"intransitive_counterpart,omitempty"`
}

// Response is the final, client-facing API payload (spec.md §6). Kanji,
// Sentences and Names carry their storage-layer json tags (or the lack
// thereof) verbatim — only Words goes through full display composition.
type Response struct {
	Kanji     []types.Kanji    `json:"kanji,omitempty"`
	Words     []WordResult     `json:"words,omitempty"`
	Sentences []types.Sentence `json:"sentences,omitempty"`
	Names     []types.Name     `json:"names,omitempty"`
	Guess     *task.Guess      `json:"guess,omitempty"`
}

// Composer merges and enriches raw task results into an API response.
type Composer struct {
	Storage *store.Storage
	// AudioRoot is the directory audio files live under, named
	// "<sequence>.mp3"; empty disables the audio-path lookup entirely
	// (no stat calls are made).
	AudioRoot string
}

// Compose implements spec.md §4.9's merge/filter/enrich pipeline.
// Kanji, Sentences and Names pass through unchanged: the filtering and
// enrichment spec.md §4.9 describes applies only to Words.
func (c *Composer) Compose(q query.Query, results TaskResults) Response {
	words := make([]WordResult, 0, len(results.Words))
	for _, w := range results.Words {
		if wr, ok := c.composeWord(w, q); ok {
			words = append(words, wr)
		}
	}

	return Response{
		Kanji:     results.Kanji,
		Words:     words,
		Sentences: results.Sentences,
		Names:     results.Names,
		Guess:     results.Guess,
	}
}

func (c *Composer) composeWord(w types.Word, q query.Query) (WordResult, bool) {
	kept := languageFilteredSenses(w.SensesByLanguage(), q.Settings)
	if len(kept) == 0 {
		return WordResult{}, false
	}

	if pos, ok := requestedPos(q.Tags); ok {
		kept = filterByPos(kept, pos)
		if len(kept) == 0 {
			return WordResult{}, false
		}
	}

	senses := make([]SenseView, len(kept))
	for i, s := range kept {
		senses[i] = SenseView{
			Glosses:      s.GlossTexts(),
			PartOfSpeech: s.PartOfSpeech,
			Language:     s.Language,
			Dialect:      s.Dialect,
			Field:        s.Field,
			Information:  s.Information,
			Antonym:      s.Antonym,
			Xref:         s.Xref,
			Misc:         s.Misc,
		}
	}

	alt := make([]string, len(w.Alternative))
	for i, a := range w.Alternative {
		alt[i] = a.Surface()
	}

	return WordResult{
		Sequence:                w.Sequence,
		Common:                  w.IsCommon(),
		Reading:                 ReadingView{Kana: w.Reading.Kana, Kanji: w.Reading.Kanji, Furigana: w.FuriganaRaw},
		Senses:                  senses,
		Audio:                   c.audioPath(w.Sequence),
		AltReadings:             alt,
		Accent:                  renderAccent(w.Reading.Kana, w.AccentPattern),
		Collocations:            c.resolveCollocations(w.CollocationSeqs, q.Settings.PreferredLanguage),
		TransitiveCounterpart:   w.TransitiveCounterpart,
		IntransitiveCounterpart: w.IntransitiveCounterpart,
	}, true
}

// languageFilteredSenses retains the senses of the preferred language
// and, when ShowEnglish is set (and the preferred language isn't
// already English), the English senses too. EnglishOnTop reorders
// English first; per spec.md §9 Open Questions it's a no-op when the
// preferred language already is English.
func languageFilteredSenses(byLang map[types.Language][]types.Sense, settings query.Settings) []types.Sense {
	pref := byLang[settings.PreferredLanguage]
	var eng []types.Sense
	if settings.ShowEnglish && settings.PreferredLanguage != types.LangEnglish {
		eng = byLang[types.LangEnglish]
	}
	if settings.EnglishOnTop && settings.PreferredLanguage != types.LangEnglish {
		out := make([]types.Sense, 0, len(pref)+len(eng))
		return append(append(out, eng...), pref...)
	}
	out := make([]types.Sense, 0, len(pref)+len(eng))
	return append(append(out, pref...), eng...)
}

func requestedPos(tags []query.Tag) (types.PosSimple, bool) {
	for _, t := range tags {
		if t.Kind == query.TagPartOfSpeech {
			return t.Pos, true
		}
	}
	return types.PosUnclassified, false
}

// filterByPos keeps senses carrying pos, applied after the senses have
// already been merged by language group, per spec.md §4.9.
func filterByPos(senses []types.Sense, pos types.PosSimple) []types.Sense {
	var kept []types.Sense
	for _, s := range senses {
		if s.HasPosSimple(pos) {
			kept = append(kept, s)
		}
	}
	return kept
}

func (c *Composer) audioPath(seq int32) string {
	if c.AudioRoot == "" {
		return ""
	}
	name := fmt.Sprintf("%d.mp3", seq)
	if _, err := os.Stat(filepath.Join(c.AudioRoot, name)); err != nil {
		return ""
	}
	return "/audio/" + name
}

func (c *Composer) resolveCollocations(seqs []int32, lang types.Language) []types.Collocation {
	if len(seqs) == 0 || c.Storage == nil {
		return nil
	}
	out := make([]types.Collocation, 0, len(seqs))
	for _, seq := range seqs {
		w, ok := c.Storage.Word(seq)
		if !ok {
			continue
		}
		out = append(out, types.Collocation{
			Sequence: seq,
			Reading:  w.Reading.Surface(),
			Gloss:    firstGloss(w, lang),
		})
	}
	return out
}

func firstGloss(w types.Word, lang types.Language) string {
	for _, s := range w.Senses {
		if s.Language == lang && len(s.Glosses) > 0 {
			return s.Glosses[0].Text
		}
	}
	for _, s := range w.Senses {
		if s.Language == types.LangEnglish && len(s.Glosses) > 0 {
			return s.Glosses[0].Text
		}
	}
	return ""
}
