package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jisho-engine/dictsearch/internal/furigana"
	"github.com/jisho-engine/dictsearch/internal/store"
)

// Pipeline drives the offline build of a dictionary Storage's SQLite
// backing store from raw JSON artifacts, reusing the teacher's
// two-stage worker-pool/batch-writer concurrency shape: a fixed pool
// of goroutines does the CPU-bound transform work (each source file is
// decoded in full before the pool starts) while a
// single BatchWriter serializes the SQLite writes into batched
// transactions.
type Pipeline struct {
	DB        *sql.DB
	Workers   int
	BatchSize int
	Logger    *zerolog.Logger
}

func (p *Pipeline) workers() int {
	if p.Workers <= 0 {
		return 4
	}
	return p.Workers
}

func (p *Pipeline) batchSize() int {
	if p.BatchSize <= 0 {
		return 200
	}
	return p.BatchSize
}

func (p *Pipeline) log(format string, args ...any) {
	if p.Logger == nil {
		return
	}
	p.Logger.Info().Msg(fmt.Sprintf(format, args...))
}

// run fans items out across a WorkerPool[T] — transform(item) runs
// concurrently in whichever worker goroutine dequeues it — and funnels
// the resulting WriteFuncs through a single BatchWriter, mirroring the
// teacher's producer/consumer split between CPU work and DB work. The
// returned count is the BatchWriter's own Flushed() tally: how many
// rows actually landed in SQLite, not how many entries were merely
// handed to the pool (those can still be sitting in an unflushed batch,
// or have failed transform, when the last item is submitted).
func run[T any](ctx context.Context, p *Pipeline, items []T, transform func(T) (WriteFunc, error)) (int, error) {
	bw := NewBatchWriter(p.DB, p.batchSize(), 200*time.Millisecond)

	var firstErr error
	var errMu sync.Mutex
	recordErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}
	bw.OnError = recordErr

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wp := NewWorkerPool(p.workers(), p.workers()*2, func(ctx context.Context, item T) error {
		write, err := transform(item)
		if err != nil {
			recordErr(err)
			return err
		}
		if err := bw.Submit(write); err != nil {
			recordErr(err)
			return err
		}
		return nil
	})
	wp.Start(ctx)

	for _, item := range items {
		if err := wp.Submit(item); err != nil {
			recordErr(err)
			break
		}
	}

	wp.Close()
	if err := bw.Close(); err != nil {
		recordErr(err)
	}

	return bw.Flushed(), firstErr
}

// IngestWords loads a jmdict-simplified word file and writes every
// entry's Word into storage.
func (p *Pipeline) IngestWords(ctx context.Context, path string) (int, error) {
	entries, err := loadJMdictWords(path)
	if err != nil {
		return 0, fmt.Errorf("load words from %s: %w", path, err)
	}
	p.log("ingest: loaded %d word entries from %s", len(entries), path)

	retrieve, err := p.kanjiReadingRetriever()
	if err != nil {
		return 0, err
	}

	return run(ctx, p, entries, func(e jmdictEntry) (WriteFunc, error) {
		w := toWord(e, retrieve)
		return func(ctx context.Context, tx *sql.Tx) error {
			return store.PutWord(tx, w)
		}, nil
	})
}

// IngestKanji loads a kanjidic2-simplified character file and writes
// every entry's Kanji into storage.
func (p *Pipeline) IngestKanji(ctx context.Context, path string) (int, error) {
	entries, err := loadKanjidic(path)
	if err != nil {
		return 0, fmt.Errorf("load kanji from %s: %w", path, err)
	}
	p.log("ingest: loaded %d kanji entries from %s", len(entries), path)

	return run(ctx, p, entries, func(e kanjidicEntry) (WriteFunc, error) {
		k := toKanji(e)
		return func(ctx context.Context, tx *sql.Tx) error {
			return store.PutKanji(tx, k)
		}, nil
	})
}

// IngestNames loads a jmnedict-simplified file and writes every
// entry's Name into storage.
func (p *Pipeline) IngestNames(ctx context.Context, path string) (int, error) {
	entries, err := loadJMnedictNames(path)
	if err != nil {
		return 0, fmt.Errorf("load names from %s: %w", path, err)
	}
	p.log("ingest: loaded %d name entries from %s", len(entries), path)

	return run(ctx, p, entries, func(e jmnedictEntry) (WriteFunc, error) {
		n := toName(e)
		return func(ctx context.Context, tx *sql.Tx) error {
			return store.PutName(tx, n)
		}, nil
	})
}

// IngestSentences loads an example-sentence corpus file and writes
// every entry's Sentence into storage.
func (p *Pipeline) IngestSentences(ctx context.Context, path string) (int, error) {
	entries, err := loadSentenceCorpus(path)
	if err != nil {
		return 0, fmt.Errorf("load sentences from %s: %w", path, err)
	}
	p.log("ingest: loaded %d sentence entries from %s", len(entries), path)

	return run(ctx, p, entries, func(e sentenceEntry) (WriteFunc, error) {
		s := toSentence(e)
		return func(ctx context.Context, tx *sql.Tx) error {
			return store.PutSentence(tx, s)
		}, nil
	})
}

// IngestDecompositions loads a KRADFILE-style kanji-decomposition file
// and merges each literal's components into its kanji row, independent
// of whether IngestKanji has run for that literal yet.
func (p *Pipeline) IngestDecompositions(ctx context.Context, path string) (int, error) {
	entries, err := loadDecompositions(path)
	if err != nil {
		return 0, fmt.Errorf("load decompositions from %s: %w", path, err)
	}
	p.log("ingest: loaded %d decomposition entries from %s", len(entries), path)

	return run(ctx, p, entries, func(e decompositionEntry) (WriteFunc, error) {
		return func(ctx context.Context, tx *sql.Tx) error {
			return store.SetKanjiDecomposition(tx, e.Literal, e.Components)
		}, nil
	})
}

// kanjiReadingRetriever builds a furigana.ReadingRetriever from the
// kanji rows already committed to storage, so word ingestion can
// derive furigana for entries the JSON source doesn't ship one for.
// Kanji ingestion should run before word ingestion for this to have
// anything to retrieve; if it's empty, furigana.Generate degrades to
// its single-block fallback rather than failing.
func (p *Pipeline) kanjiReadingRetriever() (furigana.ReadingRetriever, error) {
	rows, err := p.DB.Query(`SELECT literal, kun_readings, on_readings FROM kanji`)
	if err != nil {
		return nil, fmt.Errorf("load kanji readings: %w", err)
	}
	defer rows.Close()

	readings := make(map[string][2][]string)
	for rows.Next() {
		var literal, kun, on string
		if err := rows.Scan(&literal, &kun, &on); err != nil {
			return nil, err
		}
		readings[literal] = [2][]string{splitField(kun), splitField(on)}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return func(literal string) (kun, on []string, ok bool) {
		pair, found := readings[literal]
		return pair[0], pair[1], found
	}, nil
}

// splitField mirrors internal/store's unexported unit-separator split,
// duplicated here since kanji readings are read straight out of this
// package rather than through internal/store's public API.
func splitField(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\x1f")
}
