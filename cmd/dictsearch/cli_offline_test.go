package main_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func buildDictsearch(t *testing.T, dir string) string {
	t.Helper()
	bin := filepath.Join(dir, "dictsearch.bin")
	build := exec.Command("go", "build", "-o", bin, "github.com/jisho-engine/dictsearch/cmd/dictsearch")
	build.Stdout = os.Stdout
	build.Stderr = os.Stderr
	if err := build.Run(); err != nil {
		t.Fatalf("failed to build CLI: %v", err)
	}
	return bin
}

func TestCLI_IngestThenQuery(t *testing.T) {
	tmp := t.TempDir()
	bin := buildDictsearch(t, tmp)
	dbPath := filepath.Join(tmp, "dictsearch.db")

	wordsPath := filepath.Join(tmp, "words.json")
	words := `{"words":[{"id":1578850,"kanji":[{"text":"食べる","common":true}],"kana":[{"text":"たべる","common":true}],"sense":[{"partOfSpeech":["v1","vt"],"gloss":[{"text":"to eat","lang":"eng"}]}]}]}`
	if err := os.WriteFile(wordsPath, []byte(words), 0o644); err != nil {
		t.Fatalf("write words fixture: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	ingestCmd := exec.CommandContext(ctx, bin, "ingest", "--words", wordsPath)
	ingestCmd.Env = append(os.Environ(), "DICTSEARCH_DB="+dbPath)
	out, err := ingestCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("ingest failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(string(out), "ingested 1 words") {
		t.Fatalf("unexpected ingest output:\n%s", out)
	}

	queryCmd := exec.CommandContext(ctx, bin, "query", "食べる")
	queryCmd.Env = append(os.Environ(), "DICTSEARCH_DB="+dbPath)
	out, err = queryCmd.CombinedOutput()
	if err != nil {
		t.Fatalf("query failed: %v\noutput:\n%s", err, out)
	}
	if !strings.Contains(string(out), "to eat") {
		t.Fatalf("expected query output to contain the gloss, got:\n%s", out)
	}
}
