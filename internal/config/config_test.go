package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jisho-engine/dictsearch/internal/types"
)

func TestLoadAppliesDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dictsearch.db", cfg.DatabasePath)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, types.LangEnglish, cfg.DefaultLanguage)
	require.Equal(t, 10, cfg.PageSize)
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_path: custom.db\npage_size: 25\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "custom.db", cfg.DatabasePath)
	require.Equal(t, 25, cfg.PageSize)
}

func TestLoadMissingFileIsNotFatal(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("does-not-exist.yaml")
	require.NoError(t, err)
	require.Equal(t, "dictsearch.db", cfg.DatabasePath)
}

func TestLoadEnvOverridesFileAndDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("page_size: 25\n"), 0o644))
	t.Setenv("DICTSEARCH_PAGE_SIZE", "40")
	t.Setenv("DICTSEARCH_DEFAULT_LANGUAGE", "ger")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 40, cfg.PageSize)
	require.Equal(t, types.LangGerman, cfg.DefaultLanguage)
}

func TestLoadClampsPageSizeToValidRange(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DICTSEARCH_PAGE_SIZE", "0")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 1, cfg.PageSize)

	t.Setenv("DICTSEARCH_PAGE_SIZE", "500")
	cfg, err = Load("")
	require.NoError(t, err)
	require.Equal(t, 100, cfg.PageSize)
}

func TestLoadRejectsEmptyDatabasePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_path: \"\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
