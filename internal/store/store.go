// Package store owns the fully memory-resident, read-only search
// indexes (spec.md §4.5), built once at startup from the SQLite-backed
// corpus that internal/ingest populates.
package store

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/jisho-engine/dictsearch/internal/types"
)

// Storage owns one Index per content language plus the radical index
// and kanji corpus, all read-only once Load returns.
type Storage struct {
	mu sync.RWMutex

	byLang map[types.Language]*Index
	radicals *RadicalIndex

	kanji     map[string]types.Kanji
	words     map[int32]types.Word
	sentences map[int64]types.Sentence
	names     map[int32]types.Name

	warnedFallback map[types.Language]struct{}
}

// New returns an empty Storage; call Load to populate it.
func New() *Storage {
	return &Storage{
		byLang:         make(map[types.Language]*Index),
		radicals:       newRadicalIndex(),
		kanji:          make(map[string]types.Kanji),
		words:          make(map[int32]types.Word),
		sentences:      make(map[int64]types.Sentence),
		names:          make(map[int32]types.Name),
		warnedFallback: make(map[types.Language]struct{}),
	}
}

// Load reads the whole corpus out of db and builds every per-language
// index in memory. Intended to run once at process startup.
func (s *Storage) Load(db *sql.DB) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, lang := range types.AllContentLanguages() {
		s.byLang[lang] = newIndex(lang)
	}
	s.byLang[types.LangJapanese] = newIndex(types.LangJapanese)

	words, err := loadWords(db)
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	for _, w := range words {
		s.words[w.Sequence] = w
		for _, ix := range s.byLang {
			ix.indexWord(w)
		}
	}

	kanjiList, err := loadKanji(db)
	if err != nil {
		return fmt.Errorf("load kanji: %w", err)
	}
	for _, k := range kanjiList {
		s.kanji[k.Literal] = k
		for _, m := range k.Meanings {
			for _, ix := range s.byLang {
				ix.indexKanjiMeaning(k.Literal, m)
			}
		}
		for _, part := range k.Decomposition {
			for _, r := range part {
				s.radicals.Add(r, k.Literal)
			}
		}
	}

	sentences, err := loadSentences(db)
	if err != nil {
		return fmt.Errorf("load sentences: %w", err)
	}
	for _, sent := range sentences {
		s.sentences[sent.ID] = sent
		for _, ix := range s.byLang {
			ix.indexSentence(sent)
		}
	}

	names, err := loadNames(db)
	if err != nil {
		return fmt.Errorf("load names: %w", err)
	}
	for _, n := range names {
		s.names[n.Sequence] = n
		for _, ix := range s.byLang {
			ix.indexName(n)
		}
	}

	log.Info().
		Int("words", len(words)).
		Int("kanji", len(kanjiList)).
		Int("sentences", len(sentences)).
		Int("names", len(names)).
		Int("languages", len(s.byLang)).
		Msg("storage loaded")

	return nil
}

// GetIndex returns the index for lang, falling back to English when
// lang has no index of its own (spec.md §4.5's access contract). The
// fallback is logged once per language to avoid flooding the log with
// a warning per request.
func (s *Storage) GetIndex(lang types.Language) *Index {
	s.mu.RLock()
	ix, ok := s.byLang[lang]
	s.mu.RUnlock()
	if ok {
		return ix
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, warned := s.warnedFallback[lang]; !warned {
		s.warnedFallback[lang] = struct{}{}
		log.Warn().Str("language", string(lang)).Msg("no index for language, falling back to English")
	}
	return s.byLang[types.LangEnglish]
}

// Radicals returns the shared radical-composition index.
func (s *Storage) Radicals() *RadicalIndex {
	return s.radicals
}

// Kanji returns the kanji record for literal, if loaded.
func (s *Storage) Kanji(literal string) (types.Kanji, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	k, ok := s.kanji[literal]
	return k, ok
}

// Word returns the word record for sequence, if loaded.
func (s *Storage) Word(sequence int32) (types.Word, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.words[sequence]
	return w, ok
}

// Sentence returns the sentence record for id, if loaded.
func (s *Storage) Sentence(id int64) (types.Sentence, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sent, ok := s.sentences[id]
	return sent, ok
}

// Name returns the name record for sequence, if loaded.
func (s *Storage) Name(sequence int32) (types.Name, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.names[sequence]
	return n, ok
}

// KanjiReading resolves a kanji literal's kun/on readings, suitable as
// an internal/furigana.ReadingRetriever.
func (s *Storage) KanjiReading(literal string) (kun, on []string, ok bool) {
	k, found := s.Kanji(literal)
	if !found {
		return nil, nil, false
	}
	return k.KunReadings, k.OnReadings, true
}

// LoadedLanguages reports which content languages have an index built,
// for the startup completeness report (spec.md §4.5).
func (s *Storage) LoadedLanguages() []types.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Language, 0, len(s.byLang))
	for l := range s.byLang {
		out = append(out, l)
	}
	return out
}
