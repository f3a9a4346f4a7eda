package ingest

import (
	"encoding/json"
	"fmt"
	"os"
)

// decodeEntries reads path as either a bare JSON array of T or an
// object wrapping the array under wrapperKey (jmdict-simplified ships
// the latter, `{"words": [...]}`; this tries the wrapper first and
// falls back to a bare array), the same tolerance the teacher's
// LoadJMdictSimplified applies.
func decodeEntries[T any](path, wrapperKey string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var wrapped map[string]json.RawMessage
	dec := json.NewDecoder(f)
	if err := dec.Decode(&wrapped); err == nil {
		if raw, ok := wrapped[wrapperKey]; ok {
			var entries []T
			if err := json.Unmarshal(raw, &entries); err == nil {
				return entries, nil
			}
		}
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	var entries []T
	dec = json.NewDecoder(f)
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("%s: not a %q-wrapped object or a bare array: %w", path, wrapperKey, err)
	}
	return entries, nil
}

func loadJMdictWords(path string) ([]jmdictEntry, error) {
	return decodeEntries[jmdictEntry](path, "words")
}

func loadKanjidic(path string) ([]kanjidicEntry, error) {
	return decodeEntries[kanjidicEntry](path, "characters")
}

func loadJMnedictNames(path string) ([]jmnedictEntry, error) {
	return decodeEntries[jmnedictEntry](path, "words")
}

func loadSentenceCorpus(path string) ([]sentenceEntry, error) {
	return decodeEntries[sentenceEntry](path, "sentences")
}

func loadDecompositions(path string) ([]decompositionEntry, error) {
	return decodeEntries[decompositionEntry](path, "kanji")
}
