package morph

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Analyzer wraps a kagome tokenizer instance against the IPADIC
// dictionary, the same tokenizer/dictionary pairing as the teacher
// project, repurposed here to produce WordItems instead of display
// tokens.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer builds an Analyzer backed by the bundled IPA dictionary.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Parse tokenizes input and groups the result into WordItems, per
// spec.md §4.3: an input that is a single inflected word surfaces as
// one merged WordItem; a sentence is split into one WordItem per
// content word with its trailing inflections absorbed.
func (a *Analyzer) Parse(input string) []WordItem {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}

	morphemes := a.tokenize(input)
	if len(morphemes) == 0 {
		return []WordItem{{Surface: input, OriginalWord: input}}
	}

	inflections := getInflections(inflectionTailMorphemes(morphemes), nil)

	isSentence := wordCount(morphemes) > 1 && !isWordInflection(morphemes)
	if isSentence {
		return parseSentence(morphemes)
	}

	if len(inflections) > 0 && isWordInflection(morphemes) && wordCount(morphemes) <= 1 {
		items := make([]WordItem, 0, len(morphemes))
		for _, m := range morphemes {
			if m.isInflection() {
				continue
			}
			items = append(items, WordItem{
				Surface:      m.surface,
				Lexeme:       m.lexeme,
				Reading:      m.reading,
				WordClass:    m.class,
				HasWordClass: true,
				Start:        m.start,
				Inflections:  inflections,
				OriginalWord: input,
			})
		}
		if len(items) > 0 {
			return items
		}
	}

	lexeme := ""
	if len(morphemes) == 1 {
		lexeme = morphemes[0].lexeme
	}
	return []WordItem{{Surface: input, Lexeme: lexeme, OriginalWord: ""}}
}

// tokenize runs the kagome tokenizer and classifies each morpheme
// from its raw IPADIC feature vector:
//
//	0: part of speech     1: sub-POS 1   2: sub-POS 2   3: sub-POS 3
//	4: conjugation type    5: conjugation form
//	6: base form (lexeme)  7: reading     8: pronunciation
func (a *Analyzer) tokenize(input string) []morpheme {
	tokens := a.t.Tokenize(input)
	result := make([]morpheme, 0, len(tokens))

	pos := 0
	for _, tok := range tokens {
		if tok.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(tok.Surface) == "" {
			pos += len([]rune(tok.Surface))
			continue
		}

		features := tok.Features()
		lexeme := tok.Surface
		if len(features) > 6 && features[6] != "*" {
			lexeme = features[6]
		}
		reading := ""
		if len(features) > 7 && features[7] != "*" {
			reading = features[7]
		}

		class, psub := classify(features)
		conj := formOther
		if len(features) > 5 {
			conj = classifyConjugation(features[5])
		}

		result = append(result, morpheme{
			surface:     tok.Surface,
			lexeme:      lexeme,
			reading:     reading,
			start:       pos,
			class:       class,
			particle:    psub,
			conjugation: conj,
		})
		pos += len([]rune(tok.Surface))
	}
	return result
}

func feature(features []string, i int) string {
	if i < len(features) {
		return features[i]
	}
	return ""
}

// classify maps IPADIC's top-level part-of-speech label (and, for
// particles, the sub-POS) onto WordClass. IPADIC tags auxiliary verbs
// as their own top-level POS (助動詞) rather than as a Verb subtype,
// unlike the unidic-based tagger the original inflection table was
// written against; that difference is absorbed here rather than in
// the inflection rules so the rest of the package reads identically.
func classify(features []string) (WordClass, particleSub) {
	switch feature(features, 0) {
	case "名詞":
		return ClassNoun, particleOther
	case "動詞":
		return ClassVerb, particleOther
	case "助動詞":
		return ClassAuxVerb, particleOther
	case "形容詞":
		return ClassAdjective, particleOther
	case "副詞":
		return ClassAdverb, particleOther
	case "連体詞":
		return ClassPreNoun, particleOther
	case "接続詞":
		return ClassConjunction, particleOther
	case "感動詞", "フィラー":
		return ClassInterjection, particleOther
	case "記号":
		return ClassSymbol, particleOther
	case "接頭詞":
		return ClassPrefix, particleOther
	case "代名詞":
		return ClassPronoun, particleOther
	case "助詞":
		switch feature(features, 1) {
		case "接続助詞":
			return ClassParticle, particleConjunction
		case "終助詞":
			return ClassParticle, particleSentenceEnding
		default:
			return ClassParticle, particleOther
		}
	default:
		return ClassUnknown, particleOther
	}
}

func classifyConjugation(raw string) conjugationForm {
	switch {
	case raw == "基本形":
		return formPlain
	case raw == "命令ｅ" || raw == "命令形" || raw == "命令ｉ" || raw == "命令ｙｏ" || raw == "命令ｒｏ":
		return formImperative
	case raw == "未然形" || raw == "未然ウ接続" || raw == "未然ヌ接続" || raw == "未然レル接続":
		return formNegative
	case raw == "仮定形" || raw == "仮定縮約１":
		return formConditional
	case strings.HasPrefix(raw, "連用"):
		return formContinuous
	case raw == "体言接続":
		return formStem
	default:
		return formOther
	}
}

func wordCount(ms []morpheme) int {
	n := 0
	for _, m := range ms {
		if m.isWord() {
			n++
		}
	}
	return n
}

// inflectionTailMorphemes returns the trailing run of morphemes that
// are all inflection-bearing, i.e. get_inflection_morphemes.
func inflectionTailMorphemes(ms []morpheme) []morpheme {
	end := len(ms)
	start := end
	for start > 0 && ms[start-1].isInflection() {
		start--
	}
	return ms[start:end]
}

// leadingNonInflectionMorphemes mirrors get_no_inflection_morphemes:
// the longest prefix before the first inflection morpheme.
func leadingNonInflectionMorphemes(ms []morpheme) []morpheme {
	i := 0
	for i < len(ms) && !ms[i].isInflection() {
		i++
	}
	return ms[:i]
}

// isWordInflection reports whether the whole input is a single word
// in some fixed inflected form (spec.md §4.3's (c) case).
func isWordInflection(ms []morpheme) bool {
	if wordCount(ms) > 1 {
		return false
	}
	if len(ms) > 0 {
		switch ms[0].conjugation {
		case formImperative, formStem, formNegative, formConditional:
			return true
		}
	}
	return allLexemesAreInflections(inflectionTailMorphemes(ms))
}

// getInflections derives the sorted, de-duplicated inflection tag set
// from a run of (typically trailing) morphemes.
func getInflections(ms []morpheme, main *morpheme) []Inflection {
	if len(ms) == 1 {
		if infl, ok := inflectionFromConjugation(ms[0].conjugation); ok {
			return []Inflection{infl}
		}
	}

	var mainRef *morpheme
	if main != nil {
		mainRef = main
	} else if len(ms) > 0 {
		lead := leadingNonInflectionMorphemes(ms)
		if len(lead) > 0 {
			mainRef = &lead[0]
		}
	}

	var out []Inflection
	for i := range ms {
		if infl, ok := inflectionFromMorpheme(ms[i], mainRef); ok {
			out = append(out, infl)
		}
	}
	return dedupSortInflections(out)
}

// morphemeCompounds splits a morpheme stream into runs, each a main
// morpheme followed by the inflection morphemes bound to it.
func morphemeCompounds(ms []morpheme) [][]morpheme {
	var groups [][]morpheme
	var curr []morpheme
	for _, m := range ms {
		if len(curr) > 0 {
			last := curr[len(curr)-1]
			if !isReallyInflection(m, last) {
				groups = append(groups, curr)
				curr = nil
			}
		}
		curr = append(curr, m)
	}
	if len(curr) > 0 {
		groups = append(groups, curr)
	}
	return groups
}

func isReallyInflection(m, mainMorpheme morpheme) bool {
	if m.lexeme == "だ" && mainMorpheme.conjugation != formContinuous {
		return false
	}
	return m.isInflection()
}

// parseSentence groups a multi-word input into one WordItem per
// content word, each carrying the inflections of its trailing aux run.
func parseSentence(ms []morpheme) []WordItem {
	groups := morphemeCompounds(ms)
	var items []WordItem

	for _, g := range groups {
		var head []morpheme
		var aux []morpheme
		for _, m := range g {
			if m.isInflection() {
				aux = append(aux, m)
			} else {
				head = append(head, m)
			}
		}

		if len(head) == 0 {
			for _, m := range aux {
				items = append(items, WordItem{Surface: m.surface, Lexeme: m.lexeme, Reading: m.reading, WordClass: m.class, HasWordClass: true, Start: m.start})
			}
			continue
		}

		it := head[0]
		inflections := getInflections(aux, &it)

		var suffix strings.Builder
		for _, m := range aux {
			suffix.WriteString(m.surface)
		}

		items = append(items, WordItem{
			Surface:      it.surface,
			Lexeme:       it.lexeme,
			Reading:      it.reading,
			WordClass:    it.class,
			HasWordClass: true,
			Start:        it.start,
			Inflections:  inflections,
			OriginalWord: it.surface + suffix.String(),
		})
	}

	return items
}
