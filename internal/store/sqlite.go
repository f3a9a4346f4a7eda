package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jisho-engine/dictsearch/internal/furigana"
	"github.com/jisho-engine/dictsearch/internal/types"
)

// Executor is satisfied by *sql.DB and *sql.Tx, matching the teacher
// project's DBExecutor seam so ingestion can run inside a transaction.
type Executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

const fieldSep = "\x1f" // unit separator: joins repeated string fields within one column

func joinField(parts []string) string { return strings.Join(parts, fieldSep) }
func splitField(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, fieldSep)
}

func joinInts(parts []int32) string {
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = strconv.Itoa(int(p))
	}
	return strings.Join(strs, fieldSep)
}

func splitInts(s string) []int32 {
	if s == "" {
		return nil
	}
	fields := strings.Split(s, fieldSep)
	out := make([]int32, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		out = append(out, int32(n))
	}
	return out
}

// PutWord upserts a word row and its per-sense child rows.
func PutWord(db Executor, w types.Word) error {
	_, err := db.Exec(
		`INSERT INTO words (sequence, kana, kanji, furigana, is_common, jlpt_level)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(sequence) DO UPDATE SET
		   kana = excluded.kana, kanji = excluded.kanji,
		   furigana = excluded.furigana, is_common = excluded.is_common,
		   jlpt_level = excluded.jlpt_level`,
		w.Sequence, w.Reading.Kana, nullIfEmpty(w.Reading.Kanji), nullIfEmpty(w.Reading.Furigana),
		boolToInt(w.IsCommon()), nullIfZero(w.JLPTLevel),
	)
	if err != nil {
		return fmt.Errorf("upsert word %d: %w", w.Sequence, err)
	}

	if _, err := db.Exec(`DELETE FROM word_senses WHERE word_sequence = ?`, w.Sequence); err != nil {
		return fmt.Errorf("clear senses for word %d: %w", w.Sequence, err)
	}
	for _, sense := range w.Senses {
		_, err := db.Exec(
			`INSERT INTO word_senses (word_sequence, language, pos, misc, field, dialect, glosses)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			w.Sequence, string(sense.Language), joinField(sense.PartOfSpeech),
			joinField(sense.Misc), joinField(sense.Field), joinField(sense.Dialect),
			joinField(sense.GlossTexts()),
		)
		if err != nil {
			return fmt.Errorf("insert sense for word %d: %w", w.Sequence, err)
		}
	}
	return nil
}

// PutKanji upserts a kanji row, including its full KRADFILE-style
// decomposition (not just the single classification radical).
func PutKanji(db Executor, k types.Kanji) error {
	_, err := db.Exec(
		`INSERT INTO kanji (literal, stroke_count, grade, jlpt_level, frequency, on_readings, kun_readings, nanori, radical, decomposition, meanings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(literal) DO UPDATE SET
		   stroke_count = excluded.stroke_count, grade = excluded.grade,
		   jlpt_level = excluded.jlpt_level, frequency = excluded.frequency,
		   on_readings = excluded.on_readings, kun_readings = excluded.kun_readings,
		   nanori = excluded.nanori, radical = excluded.radical,
		   decomposition = COALESCE(NULLIF(excluded.decomposition, ''), decomposition),
		   meanings = excluded.meanings`,
		k.Literal, nullIfZero(k.StrokeCount), nullIfZero(k.Grade), nullIfZero(k.JLPTLevel), nullIfZero(k.Frequency),
		joinField(k.OnReadings), joinField(k.KunReadings), joinField(k.NanoriReadings), k.Radical,
		joinField(k.Decomposition), joinField(k.Meanings),
	)
	if err != nil {
		return fmt.Errorf("upsert kanji %s: %w", k.Literal, err)
	}
	return nil
}

// SetKanjiDecomposition sets a kanji's decomposition components,
// inserting a bare row for the literal if kanjidic data for it hasn't
// been ingested yet (the decomposition and character-reference sources
// are separate artifacts that don't have to arrive in any fixed order).
func SetKanjiDecomposition(db Executor, literal string, components []string) error {
	_, err := db.Exec(
		`INSERT INTO kanji (literal, on_readings, kun_readings, nanori, radical, decomposition, meanings)
		 VALUES (?, '', '', '', '', ?, '')
		 ON CONFLICT(literal) DO UPDATE SET decomposition = excluded.decomposition`,
		literal, joinField(components),
	)
	if err != nil {
		return fmt.Errorf("set decomposition for kanji %s: %w", literal, err)
	}
	return nil
}

// PutSentence upserts a sentence row and its translations.
func PutSentence(db Executor, s types.Sentence) error {
	_, err := db.Exec(
		`INSERT INTO sentences (id, japanese, furigana) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET japanese = excluded.japanese, furigana = excluded.furigana`,
		s.ID, s.Japanese, nullIfEmpty(s.Furigana),
	)
	if err != nil {
		return fmt.Errorf("upsert sentence %d: %w", s.ID, err)
	}
	for lang, text := range s.Translations {
		_, err := db.Exec(
			`INSERT INTO sentence_translations (sentence_id, language, text) VALUES (?, ?, ?)
			 ON CONFLICT(sentence_id, language) DO UPDATE SET text = excluded.text`,
			s.ID, string(lang), text,
		)
		if err != nil {
			return fmt.Errorf("upsert translation for sentence %d/%s: %w", s.ID, lang, err)
		}
	}
	return nil
}

// PutName upserts a name row.
func PutName(db Executor, n types.Name) error {
	_, err := db.Exec(
		`INSERT INTO names (sequence, kana, kanji, tag, translations) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(sequence) DO UPDATE SET
		   kana = excluded.kana, kanji = excluded.kanji,
		   tag = excluded.tag, translations = excluded.translations`,
		n.Sequence, n.Reading.Kana, nullIfEmpty(n.Reading.Kanji), joinField(n.Tags), joinField(n.Translations),
	)
	if err != nil {
		return fmt.Errorf("upsert name %d: %w", n.Sequence, err)
	}
	return nil
}

func loadNames(db *sql.DB) ([]types.Name, error) {
	rows, err := db.Query(`SELECT sequence, kana, kanji, tag, translations FROM names`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.Name
	for rows.Next() {
		var n types.Name
		var kanji, tag, translations sql.NullString
		if err := rows.Scan(&n.Sequence, &n.Reading.Kana, &kanji, &tag, &translations); err != nil {
			return nil, err
		}
		n.Reading.Kanji = kanji.String
		n.Tags = splitField(tag.String)
		n.Translations = splitField(translations.String)
		out = append(out, n)
	}
	return out, rows.Err()
}

// derivePosSimple maps a sense's raw JMdict part-of-speech tags down to
// the coarse PosSimple set, dropping tags that don't map to one (the
// tag set is deliberately permissive: any raw tag outside it is just
// not reflected in PosSimple). Falls back to ClassifyJMdictTag's
// prefix table for conjugation-class tags ("v5r", "adj-na") that
// ParsePosSimple's exact-alias table doesn't recognize.
func derivePosSimple(rawPos []string) []types.PosSimple {
	seen := make(map[types.PosSimple]struct{}, len(rawPos))
	var out []types.PosSimple
	add := func(p types.PosSimple) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, raw := range rawPos {
		if p, ok := types.ParsePosSimple(raw); ok {
			add(p)
			continue
		}
		for _, p := range types.ClassifyJMdictTag(raw) {
			add(p)
		}
	}
	return out
}

func loadWords(db *sql.DB) ([]types.Word, error) {
	rows, err := db.Query(`SELECT sequence, kana, kanji, furigana, is_common, jlpt_level FROM words`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int32]*types.Word)
	var order []int32
	for rows.Next() {
		var w types.Word
		var kanji, furi sql.NullString
		var isCommon int
		var jlpt sql.NullInt64
		if err := rows.Scan(&w.Sequence, &w.Reading.Kana, &kanji, &furi, &isCommon, &jlpt); err != nil {
			return nil, err
		}
		w.Reading.Kanji = kanji.String
		w.Reading.Furigana = furi.String
		w.FuriganaRaw = furi.String
		w.JLPTLevel = int(jlpt.Int64)
		if isCommon != 0 {
			w.Priority = []string{"news1"}
		}
		byID[w.Sequence] = &w
		order = append(order, w.Sequence)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	senseRows, err := db.Query(`SELECT word_sequence, language, pos, misc, field, dialect, glosses FROM word_senses`)
	if err != nil {
		return nil, err
	}
	defer senseRows.Close()
	for senseRows.Next() {
		var seq int32
		var lang, pos, misc, field, dialect, glosses string
		if err := senseRows.Scan(&seq, &lang, &pos, &misc, &field, &dialect, &glosses); err != nil {
			return nil, err
		}
		w, ok := byID[seq]
		if !ok {
			continue
		}
		rawPos := splitField(pos)
		sense := types.Sense{
			Language:     types.Language(lang),
			PartOfSpeech: rawPos,
			PosSimple:    derivePosSimple(rawPos),
			Misc:         splitField(misc),
			Field:        splitField(field),
			Dialect:      splitField(dialect),
		}
		for _, g := range splitField(glosses) {
			sense.Glosses = append(sense.Glosses, types.Gloss{Text: g})
		}
		w.Senses = append(w.Senses, sense)
	}
	if err := senseRows.Err(); err != nil {
		return nil, err
	}

	out := make([]types.Word, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out, nil
}

func loadKanji(db *sql.DB) ([]types.Kanji, error) {
	rows, err := db.Query(`SELECT literal, stroke_count, grade, jlpt_level, frequency, on_readings, kun_readings, nanori, radical, decomposition, meanings FROM kanji`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.Kanji
	for rows.Next() {
		var k types.Kanji
		var stroke, grade, jlpt, freq sql.NullInt64
		var on, kun, nanori, decomposition, meanings string
		if err := rows.Scan(&k.Literal, &stroke, &grade, &jlpt, &freq, &on, &kun, &nanori, &k.Radical, &decomposition, &meanings); err != nil {
			return nil, err
		}
		k.StrokeCount = int(stroke.Int64)
		k.Grade = int(grade.Int64)
		k.JLPTLevel = int(jlpt.Int64)
		k.Frequency = int(freq.Int64)
		k.OnReadings = splitField(on)
		k.KunReadings = splitField(kun)
		k.NanoriReadings = splitField(nanori)
		k.Meanings = splitField(meanings)
		k.Decomposition = splitField(decomposition)
		if len(k.Decomposition) == 0 && k.Radical != "" {
			k.Decomposition = []string{k.Radical}
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func loadSentences(db *sql.DB) ([]types.Sentence, error) {
	rows, err := db.Query(`SELECT id, japanese, furigana FROM sentences`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]*types.Sentence)
	var order []int64
	for rows.Next() {
		var s types.Sentence
		var furi sql.NullString
		if err := rows.Scan(&s.ID, &s.Japanese, &furi); err != nil {
			return nil, err
		}
		s.Furigana = furi.String
		s.Translations = make(map[types.Language]string)
		byID[s.ID] = &s
		order = append(order, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	trRows, err := db.Query(`SELECT sentence_id, language, text FROM sentence_translations`)
	if err != nil {
		return nil, err
	}
	defer trRows.Close()
	for trRows.Next() {
		var id int64
		var lang, text string
		if err := trRows.Scan(&id, &lang, &text); err != nil {
			return nil, err
		}
		if s, ok := byID[id]; ok {
			s.Translations[types.Language(lang)] = text
		}
	}
	if err := trRows.Err(); err != nil {
		return nil, err
	}

	out := make([]types.Sentence, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullIfZero(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// reindexFurigana regenerates a word's furigana using retrieve, for
// ingestion sources that don't ship a pre-computed furigana string.
func reindexFurigana(retrieve furigana.ReadingRetriever, w *types.Word) {
	if w.Reading.Kanji == "" || w.FuriganaRaw != "" {
		return
	}
	w.FuriganaRaw = furigana.Generate(retrieve, w.Reading.Kanji, w.Reading.Kana)
	w.Reading.Furigana = w.FuriganaRaw
}
