package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, cfg.Analyzer.Custom())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "mdm.toml", `
[server]
listen = ":9090"

[index]
batch_size = 500

[analyzer]
stop_words = ["folder", ""]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, 100, cfg.Server.CacheSize)
	assert.Equal(t, "data/catalog.bleve", cfg.Index.Path)
	assert.Equal(t, 500, cfg.Index.BatchSize)
	assert.Equal(t, []string{"folder", ""}, cfg.Analyzer.StopWords)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "mdm.yaml", `
server:
  cache_size: 10
index:
  path: /tmp/index
analyzer:
  default_stop_words: true
  stop_words:
    - folder
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 10, cfg.Server.CacheSize)
	assert.Equal(t, "/tmp/index", cfg.Index.Path)
	require.NotNil(t, cfg.Analyzer.DefaultStopWords)
	assert.True(t, *cfg.Analyzer.DefaultStopWords)

	words, err := cfg.Analyzer.StopWordList()
	require.NoError(t, err)
	assert.Contains(t, words, "folder")
	assert.Contains(t, words, "the")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "mdm.json", `{}`))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "mdm.toml", `[server`))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAnalyzerFromConfig(t *testing.T) {
	a, err := AnalyzerConfig{}.Analyzer()
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "dog"}, a.Analyze("path", "the/Cat/and/the/Dog").Terms())

	stopFile := writeFile(t, "stop.txt", "cat\n")
	a, err = AnalyzerConfig{StopWords: []string{""}, StopWordsFile: stopFile}.Analyzer()
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "dog"}, a.Analyze("path", "/the/cat//dog/").Terms())

	off := false
	a, err = AnalyzerConfig{DefaultStopWords: &off}.Analyzer()
	require.NoError(t, err)
	assert.Equal(t, []string{"the", "cat"}, a.Analyze("path", "the/Cat").Terms())

	_, err = AnalyzerConfig{StopWordsFile: filepath.Join(t.TempDir(), "missing.txt")}.Analyzer()
	assert.Error(t, err)
}
