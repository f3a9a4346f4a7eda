package types

import "strings"

// PosSimple is the coarse, user-filterable part-of-speech projection
// named in spec.md §6 ("Tags in query body").
type PosSimple int

const (
	PosUnclassified PosSimple = iota
	PosAdverb
	PosAuxiliary
	PosConjunction
	PosNoun
	PosPrefix
	PosSuffix
	PosParticle
	PosVerb
	PosAdjective
	PosCounter
	PosExpression
	PosInterjection
	PosPronoun
	PosNumeric
	PosTransitive
	PosIntransitive
	PosSFX
)

var posSimpleNames = map[PosSimple]string{
	PosUnclassified: "Unclassified",
	PosAdverb:       "Adverb",
	PosAuxiliary:    "Auxiliary",
	PosConjunction:  "Conjunction",
	PosNoun:         "Noun",
	PosPrefix:       "Prefix",
	PosSuffix:       "Suffix",
	PosParticle:     "Particle",
	PosVerb:         "Verb",
	PosAdjective:    "Adjective",
	PosCounter:      "Counter",
	PosExpression:   "Expression",
	PosInterjection: "Interjection",
	PosPronoun:      "Pronoun",
	PosNumeric:      "Numeric",
	PosTransitive:   "Transitive",
	PosIntransitive: "Intransitive",
	PosSFX:          "SFX",
}

func (p PosSimple) String() string {
	if n, ok := posSimpleNames[p]; ok {
		return n
	}
	return "Unclassified"
}

// posAliases maps every full name and short alias accepted in query
// hashtags (spec.md §6) to its PosSimple. Both the long form
// ("adverb") and jotoba's occasionally-misspelled long forms
// ("auxilary", "conjungation") from the original source are accepted,
// since the spec explicitly names them.
var posAliases = map[string]PosSimple{
	"adverb":       PosAdverb,
	"adv":          PosAdverb,
	"auxilary":     PosAuxiliary,
	"auxiliary":    PosAuxiliary,
	"aux":          PosAuxiliary,
	"conjungation": PosConjunction,
	"conjunction":  PosConjunction,
	"conj":         PosConjunction,
	"noun":         PosNoun,
	"n":            PosNoun,
	"prefix":       PosPrefix,
	"pre":          PosPrefix,
	"suffix":       PosSuffix,
	"suf":          PosSuffix,
	"particle":     PosParticle,
	"prt":          PosParticle,
	"verb":         PosVerb,
	"v":            PosVerb,
	"adjective":    PosAdjective,
	"adj":          PosAdjective,
	"counter":      PosCounter,
	"ctr":          PosCounter,
	"expression":   PosExpression,
	"exp":          PosExpression,
	"interjection": PosInterjection,
	"int":          PosInterjection,
	"pronoun":      PosPronoun,
	"pn":           PosPronoun,
	"numeric":      PosNumeric,
	"num":          PosNumeric,
	"transitive":   PosTransitive,
	"vt":           PosTransitive,
	"intransitive": PosIntransitive,
	"vi":           PosIntransitive,
	"unclassified": PosUnclassified,
	"sfx":          PosSFX,
}

// ParsePosSimple parses a hashtag body (lowercase, without the leading
// '#') into a PosSimple tag. Unknown tokens return (0, false) and are
// silently dropped by the caller per spec.md §4.4.
func ParsePosSimple(s string) (PosSimple, bool) {
	p, ok := posAliases[strings.ToLower(strings.TrimSpace(s))]
	return p, ok
}

// jmdictPosPrefixes maps the abbreviation prefixes JMdict-simplified's
// `sense.partOfSpeech` actually ships (verb conjugation classes like
// "v5r"/"v1"/"vs-i", adjective classes like "adj-i"/"adj-na", noun
// subtypes like "n-suf") down to PosSimple, for raw tags ParsePosSimple's
// exact-alias table doesn't catch. ClassifyJMdictTag tries the exact
// aliases first (so "adj" resolves there) and these prefixes in list
// order after them; no two prefixes here overlap.
var jmdictPosPrefixes = []struct {
	prefix string
	simple PosSimple
}{
	{"adj-", PosAdjective},
	{"adv-", PosAdverb},
	{"aux-", PosAuxiliary},
	{"n-", PosNoun},
	{"v1", PosVerb},
	{"v2", PosVerb},
	{"v4", PosVerb},
	{"v5", PosVerb},
	{"vs-", PosVerb},
	{"vk", PosVerb},
	{"vz", PosVerb},
	{"vn", PosVerb},
	{"vr", PosVerb},
	{"v-unspec", PosVerb},
}

// ClassifyJMdictTag maps a raw JMdict-simplified part-of-speech tag to
// the coarse PosSimple tags it implies: the conjugation-class tag
// itself (e.g. "v5r" -> Verb, "adj-na" -> Adjective) plus, for verbs,
// the Transitive/Intransitive tag ("vt"/"vi" carry both).
func ClassifyJMdictTag(tag string) []PosSimple {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if p, ok := posAliases[tag]; ok {
		if p == PosTransitive || p == PosIntransitive {
			return []PosSimple{PosVerb, p}
		}
		return []PosSimple{p}
	}
	for _, m := range jmdictPosPrefixes {
		if strings.HasPrefix(tag, m.prefix) {
			return []PosSimple{m.simple}
		}
	}
	return nil
}
