package ingest

import (
	"strings"

	"github.com/jisho-engine/dictsearch/internal/furigana"
	"github.com/jisho-engine/dictsearch/internal/jptext"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// glossType maps jmdict-simplified's string gloss type to the GlossType
// enum, following the teacher's pattern of treating an absent/unknown
// tag as the zero value rather than an error.
func glossType(s string) types.GlossType {
	switch s {
	case "literal":
		return types.GlossLiteral
	case "figurative":
		return types.GlossFigurative
	case "explanation":
		return types.GlossExplanation
	default:
		return types.GlossNone
	}
}

func toLanguage(code string) types.Language {
	if code == "" {
		return types.LangEnglish
	}
	if lang, ok := types.ParseLanguage(code); ok {
		return lang
	}
	return types.LangUnknown
}

// toWord converts one jmdict-simplified entry to the canonical Word.
// It leaves Sense.PosSimple empty: the words tables have no column for
// it, and internal/store's derivePosSimple fills it from the raw
// part-of-speech tags when a Storage loads.
func toWord(e jmdictEntry, retrieve furigana.ReadingRetriever) types.Word {
	w := types.Word{Sequence: e.Sequence}

	if len(e.Kanji) > 0 {
		w.Reading.Kanji = e.Kanji[0].Text
		for _, k := range e.Kanji[1:] {
			w.Alternative = append(w.Alternative, types.Reading{Kanji: k.Text})
		}
	}
	if len(e.Kana) > 0 {
		w.Reading.Kana = jptext.ToHiragana(e.Kana[0].Text)
		for _, k := range e.Kana[1:] {
			w.Alternative = append(w.Alternative, types.Reading{Kana: jptext.ToHiragana(k.Text)})
		}
	}

	for _, el := range append(append([]jmdictElement{}, e.Kanji...), e.Kana...) {
		if el.Common {
			w.Priority = append(w.Priority, "ichi1")
			break
		}
	}

	for _, s := range e.Sense {
		sense := types.Sense{
			Language:     toLanguage(firstGlossLang(s.Gloss)),
			PartOfSpeech: s.PartOfSpeech,
			Misc:         s.Misc,
			Field:        s.Field,
			Dialect:      s.Dialect,
			Information:  strings.Join(s.Info, "; "),
			Antonym:      s.Antonym,
			Xref:         s.Related,
		}
		for _, g := range s.Gloss {
			sense.Glosses = append(sense.Glosses, types.Gloss{Text: g.Text, Type: glossType(g.Type)})
		}
		w.Senses = append(w.Senses, sense)
	}

	if w.Reading.Kanji != "" {
		w.FuriganaRaw = furigana.Generate(retrieve, w.Reading.Kanji, w.Reading.Kana)
		w.Reading.Furigana = w.FuriganaRaw
	}

	return w
}

// firstGlossLang finds the dominant language of a sense's glosses: the
// jmdict-simplified convention is that every gloss in one sense shares
// a language, so the first entry's lang tag stands in for the sense.
func firstGlossLang(glosses []jmdictGloss) string {
	if len(glosses) == 0 {
		return "eng"
	}
	return glosses[0].Lang
}

func toKanji(e kanjidicEntry) types.Kanji {
	k := types.Kanji{
		Literal:        e.Literal,
		StrokeCount:    e.StrokeCount,
		Grade:          e.Grade,
		JLPTLevel:      e.JLPTLevel,
		Frequency:      e.Frequency,
		Variants:       e.Variants,
		OnReadings:     e.OnReadings,
		KunReadings:    e.KunReadings,
		NanoriReadings: e.Nanori,
		Meanings:       e.Meanings,
	}
	return k
}

func toName(e jmnedictEntry) types.Name {
	n := types.Name{Sequence: e.Sequence, Tags: e.Tags}
	if len(e.Kanji) > 0 {
		n.Reading.Kanji = e.Kanji[0].Text
	}
	if len(e.Kana) > 0 {
		n.Reading.Kana = jptext.ToHiragana(e.Kana[0].Text)
	}
	for _, tr := range e.Translations {
		n.Translations = append(n.Translations, tr.Translation...)
	}
	return n
}

func toSentence(e sentenceEntry) types.Sentence {
	s := types.Sentence{ID: e.ID, Japanese: e.Japanese}
	if len(e.Translations) > 0 {
		s.Translations = make(map[types.Language]string, len(e.Translations))
		for code, text := range e.Translations {
			s.Translations[toLanguage(code)] = text
		}
	}
	return s
}
