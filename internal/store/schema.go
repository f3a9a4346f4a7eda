package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// schemaSQL is the resident corpus schema: one table per dictionary
// family (words, kanji, radicals, sentences, names) plus the
// per-language child tables that hold glosses/translations. Ingestion
// writes here; (*Storage).Load reads the whole thing back into memory
// at startup.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS words (
	sequence      INTEGER PRIMARY KEY,
	kana          TEXT NOT NULL,
	kanji         TEXT,
	furigana      TEXT,
	is_common     INTEGER NOT NULL DEFAULT 0,
	jlpt_level    INTEGER,
	pitch_accent  TEXT
);

CREATE TABLE IF NOT EXISTS word_senses (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	word_sequence INTEGER NOT NULL REFERENCES words(sequence) ON DELETE CASCADE,
	language      TEXT NOT NULL,
	pos           TEXT,
	misc          TEXT,
	field         TEXT,
	dialect       TEXT,
	glosses       TEXT NOT NULL,
	gloss_type    TEXT
);
CREATE INDEX IF NOT EXISTS idx_word_senses_lang ON word_senses(language);
CREATE INDEX IF NOT EXISTS idx_word_senses_word ON word_senses(word_sequence);

CREATE TABLE IF NOT EXISTS kanji (
	literal       TEXT PRIMARY KEY,
	stroke_count  INTEGER,
	grade         INTEGER,
	jlpt_level    INTEGER,
	frequency     INTEGER,
	on_readings   TEXT,
	kun_readings  TEXT,
	nanori        TEXT,
	radical       TEXT,
	decomposition TEXT,
	meanings      TEXT
);

CREATE TABLE IF NOT EXISTS radicals (
	literal  TEXT PRIMARY KEY,
	stroke_count INTEGER,
	readings TEXT,
	meaning  TEXT
);

CREATE TABLE IF NOT EXISTS sentences (
	id       INTEGER PRIMARY KEY,
	japanese TEXT NOT NULL,
	furigana TEXT
);

CREATE TABLE IF NOT EXISTS sentence_translations (
	sentence_id INTEGER NOT NULL REFERENCES sentences(id) ON DELETE CASCADE,
	language    TEXT NOT NULL,
	text        TEXT NOT NULL,
	PRIMARY KEY (sentence_id, language)
);

CREATE TABLE IF NOT EXISTS names (
	sequence INTEGER PRIMARY KEY,
	kana     TEXT NOT NULL,
	kanji    TEXT,
	tag      TEXT,
	translations TEXT
);
`

// InitStorage applies the schema to db, idempotently.
func InitStorage(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
