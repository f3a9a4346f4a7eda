// Package ingest is the offline pipeline that turns the dictionary-data
// family of JSON artifacts (JMdict-simplified, its kanjidic2/JMnedict
// siblings, a sentence-corpus export, and KRADFILE-style kanji
// decomposition data) into the internal/store SQLite schema. It runs
// once, ahead of time; internal/httpapi never ingests at request time.
package ingest

// jmdictEntry mirrors one entry of jmdict-simplified's word JSON (the
// teacher's JMdictEntry, renamed and extended with the fields
// spec.md §3's Word needs that the teacher's importer never read:
// priority/common tags, misc/field/dialect/xref/antonym/info, and
// language-tagged glosses with a gloss type).
type jmdictEntry struct {
	Sequence int32           `json:"id"`
	Kanji    []jmdictElement `json:"kanji"`
	Kana     []jmdictElement `json:"kana"`
	Sense    []jmdictSense   `json:"sense"`
}

type jmdictElement struct {
	Text   string   `json:"text"`
	Common bool     `json:"common"`
	Tags   []string `json:"tags"`
}

type jmdictSense struct {
	PartOfSpeech []string      `json:"partOfSpeech"`
	Misc         []string      `json:"misc"`
	Field        []string      `json:"field"`
	Dialect      []string      `json:"dialect"`
	Info         []string      `json:"info"`
	Antonym      []string      `json:"antonym"`
	Related      []string      `json:"related"`
	Gloss        []jmdictGloss `json:"gloss"`
}

type jmdictGloss struct {
	Text string `json:"text"`
	Lang string `json:"lang"` // defaults to "eng" when absent
	Type string `json:"type"` // "", "literal", "figurative", "explanation"
}

// kanjidicEntry mirrors one entry of the kanjidic2-simplified sibling
// artifact: a flattened projection of KANJIDIC2's XML shape (which
// _examples/original_source parses directly with quick-xml) down to
// the same plain-JSON idiom jmdict-simplified uses.
type kanjidicEntry struct {
	Literal     string   `json:"literal"`
	Grade       int      `json:"grade"`
	StrokeCount int      `json:"strokeCount"`
	Frequency   int      `json:"frequency"`
	JLPTLevel   int      `json:"jlptLevel"`
	OnReadings  []string `json:"onReadings"`
	KunReadings []string `json:"kunReadings"`
	Nanori      []string `json:"nanori"`
	Meanings    []string `json:"meanings"`
	Variants    []string `json:"variants"`
}

// jmnedictEntry mirrors jmnedict-simplified's name JSON.
type jmnedictEntry struct {
	Sequence int32           `json:"id"`
	Kanji    []jmdictElement `json:"kanji"`
	Kana     []jmdictElement `json:"kana"`
	Tags     []string        `json:"tags"` // e.g. "surname", "place", "company"
	Translations []struct {
		Translation []string `json:"translation"`
	} `json:"translation"`
}

// sentenceEntry is this pipeline's own small JSON shape for an example
// sentence with its translations, not a named upstream format (no
// retrieved source ships a pre-simplified sentence-corpus JSON); it
// follows the same plain "id, text, per-language map" idiom as the
// three formats above rather than inventing a different convention.
type sentenceEntry struct {
	ID           int64             `json:"id"`
	Japanese     string            `json:"japanese"`
	Translations map[string]string `json:"translations"`
}

// decompositionEntry is one row of a KRADFILE-style kanji decomposition
// file: a kanji literal and the component literals it's drawn from.
type decompositionEntry struct {
	Literal    string   `json:"literal"`
	Components []string `json:"components"`
}
