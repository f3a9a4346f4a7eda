// Package morph wraps a Japanese morphological tokenizer and groups its
// output into inflection-aware word units, per spec.md §4.3.
package morph

import "sort"

// Inflection is one grammatical inflection carried by a WordItem.
type Inflection int

const (
	Negative Inflection = iota
	Polite
	TeForm
	Past
	Passive
	Causative
	CausativePassive
	Potential
	Tai
	Imperative
	Present
)

func (i Inflection) String() string {
	switch i {
	case Negative:
		return "Negative"
	case Polite:
		return "Polite"
	case TeForm:
		return "TeForm"
	case Past:
		return "Past"
	case Passive:
		return "Passive"
	case Causative:
		return "Causative"
	case CausativePassive:
		return "CausativePassive"
	case Potential:
		return "Potential"
	case Tai:
		return "Tai"
	case Imperative:
		return "Imperative"
	case Present:
		return "Present"
	default:
		return "Unknown"
	}
}

// WordClass is a coarse part-of-speech bucket, mapped from the
// tokenizer's raw IPADIC feature labels.
type WordClass int

const (
	ClassUnknown WordClass = iota
	ClassNoun
	ClassVerb
	ClassAuxVerb
	ClassAdjective
	ClassAdverb
	ClassPronoun
	ClassInterjection
	ClassSymbol
	ClassConjunction
	ClassSuffix
	ClassPrefix
	ClassPreNoun
	ClassParticle
	ClassSpace
)

func (c WordClass) String() string {
	switch c {
	case ClassNoun:
		return "Noun"
	case ClassVerb:
		return "Verb"
	case ClassAuxVerb:
		return "AuxVerb"
	case ClassAdjective:
		return "Adjective"
	case ClassAdverb:
		return "Adverb"
	case ClassPronoun:
		return "Pronoun"
	case ClassInterjection:
		return "Interjection"
	case ClassSymbol:
		return "Symbol"
	case ClassConjunction:
		return "Conjunction"
	case ClassSuffix:
		return "Suffix"
	case ClassPrefix:
		return "Prefix"
	case ClassPreNoun:
		return "PreNoun"
	case ClassParticle:
		return "Particle"
	case ClassSpace:
		return "Space"
	default:
		return "Unknown"
	}
}

// particleSub narrows ClassParticle to the subtypes relevant to
// inflection detection: a conjunction or sentence-ending particle is
// treated as an inflection-bearing tail morpheme, any other particle
// (case, adverbial, binding) is not.
type particleSub int

const (
	particleOther particleSub = iota
	particleConjunction
	particleSentenceEnding
)

// conjugationForm is the tokenizer's 活用形 (inflected form) feature,
// narrowed to the handful of forms the inflection rules care about.
type conjugationForm int

const (
	formOther conjugationForm = iota
	formPlain
	formImperative
	formNegative
	formConditional
	formContinuous
	formStem
)

// morpheme is one tokenizer output unit, classified into the fields
// the merge and inflection algorithms need.
type morpheme struct {
	surface     string
	lexeme      string
	reading     string
	start       int // rune offset into the analyzed text
	class       WordClass
	particle    particleSub
	conjugation conjugationForm
}

// isInflection mirrors the original parser's is_inflection: an
// auxiliary verb, or a conjunction/sentence-ending particle, can be
// absorbed into the preceding word as an inflection tail.
func (m morpheme) isInflection() bool {
	if m.class == ClassAuxVerb {
		return true
	}
	if m.class == ClassParticle {
		return m.particle == particleConjunction || m.particle == particleSentenceEnding
	}
	return false
}

// isWord reports whether the morpheme can stand alone as a word head.
func (m morpheme) isWord() bool {
	if m.isInflection() {
		return false
	}
	switch m.class {
	case ClassAdjective, ClassAdverb, ClassPronoun, ClassPrefix, ClassPreNoun,
		ClassSuffix, ClassSymbol, ClassConjunction, ClassParticle, ClassNoun, ClassVerb:
		return true
	default:
		return false
	}
}

// inflectionLexemes is the fixed set of ~13 inflection-carrying
// lexemes the original system special-cases by surface/lexeme text
// rather than by grammatical class alone.
var inflectionLexemes = map[string]struct{}{
	"ない": {}, "ます": {}, "て": {}, "だ": {}, "た": {}, "です": {},
	"れる": {}, "せる": {}, "られる": {}, "な": {}, "ぬ": {}, "で": {}, "たい": {},
}

func lexemeIsInflection(lexeme string) bool {
	_, ok := inflectionLexemes[lexeme]
	return ok
}

// allLexemesAreInflections reports whether every morpheme's lexeme is
// one of inflectionLexemes (the closed set is never empty-true).
func allLexemesAreInflections(ms []morpheme) bool {
	if len(ms) == 0 {
		return false
	}
	for _, m := range ms {
		if !lexemeIsInflection(m.lexeme) {
			return false
		}
	}
	return true
}

// inflectionFromConjugation maps a standalone single-morpheme query's
// conjugation form directly to an inflection tag.
func inflectionFromConjugation(f conjugationForm) (Inflection, bool) {
	switch f {
	case formImperative:
		return Imperative, true
	case formNegative:
		return Negative, true
	case formConditional:
		return Potential, true
	default:
		return 0, false
	}
}

// inflectionFromMorpheme is the lexeme-driven inflection table. だ is
// only an inflection when the morpheme it attaches to is in
// continuous (連用形) form; all other lexemes are unconditional.
func inflectionFromMorpheme(m morpheme, main *morpheme) (Inflection, bool) {
	if main != nil && m.lexeme == "だ" && main.conjugation != formContinuous {
		return 0, false
	}
	switch m.lexeme {
	case "ない", "ぬ":
		return Negative, true
	case "ます", "です":
		return Polite, true
	case "て":
		return TeForm, true
	case "だ", "た":
		return Past, true
	case "れる":
		return Passive, true
	case "せる":
		return Causative, true
	case "られる":
		return CausativePassive, true
	case "たい":
		return Tai, true
	case "":
		return Negative, true
	default:
		return 0, false
	}
}

func dedupSortInflections(in []Inflection) []Inflection {
	if len(in) == 0 {
		return nil
	}
	seen := map[Inflection]struct{}{}
	out := make([]Inflection, 0, len(in))
	for _, i := range in {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}

// WordItem is a main morpheme merged with its trailing inflection
// morphemes: the unit search and display operate on.
type WordItem struct {
	Surface      string
	Lexeme       string
	Reading      string
	WordClass    WordClass
	HasWordClass bool
	Start        int
	Inflections  []Inflection
	OriginalWord string
}

// Lemma returns the lexeme, falling back to the surface form when the
// tokenizer provided no dictionary form.
func (w WordItem) Lemma() string {
	if w.Lexeme == "" {
		return w.Surface
	}
	return w.Lexeme
}
