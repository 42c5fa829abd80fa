// Package config loads the settings shared by the catalog indexing tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	mdm "github.com/MauroDataMapper/gomdm"
)

// AppConfig captures configuration for the search server, the index and the path analyzer.
type AppConfig struct {
	Server   ServerConfig   `toml:"server" yaml:"server"`
	Index    IndexConfig    `toml:"index" yaml:"index"`
	Analyzer AnalyzerConfig `toml:"analyzer" yaml:"analyzer"`
}

// ServerConfig controls network settings.
type ServerConfig struct {
	Listen    string `toml:"listen" yaml:"listen"`
	CacheSize int    `toml:"cache_size" yaml:"cache_size"`
}

// IndexConfig configures the on-disk bleve index.
type IndexConfig struct {
	Path      string `toml:"path" yaml:"path"`
	BatchSize int    `toml:"batch_size" yaml:"batch_size"`
}

// AnalyzerConfig selects the stop words removed from catalog paths.
// Custom words from the list and the file are merged, the default English
// list is only added when DefaultStopWords is true.
type AnalyzerConfig struct {
	StopWords        []string `toml:"stop_words" yaml:"stop_words"`
	StopWordsFile    string   `toml:"stop_words_file" yaml:"stop_words_file"`
	DefaultStopWords *bool    `toml:"default_stop_words" yaml:"default_stop_words"`
}

// DefaultConfig returns the baseline configuration used when no file is supplied.
func DefaultConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{Listen: ":8080", CacheSize: 100},
		Index:  IndexConfig{Path: "data/catalog.bleve", BatchSize: 10000},
	}
}

// Load reads the provided config path, merging it onto the defaults.
func Load(path string) (AppConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var fileCfg AppConfig
	switch ext {
	case ".toml":
		if err := toml.Unmarshal(content, &fileCfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &fileCfg); err != nil {
			return AppConfig{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return AppConfig{}, errors.New("config file must be .toml, .yaml, or .yml")
	}

	return mergeConfig(cfg, fileCfg), nil
}

func mergeConfig(base, override AppConfig) AppConfig {
	if override.Server.Listen != "" {
		base.Server.Listen = override.Server.Listen
	}
	if override.Server.CacheSize != 0 {
		base.Server.CacheSize = override.Server.CacheSize
	}
	if override.Index.Path != "" {
		base.Index.Path = override.Index.Path
	}
	if override.Index.BatchSize != 0 {
		base.Index.BatchSize = override.Index.BatchSize
	}
	if override.Analyzer.StopWords != nil {
		base.Analyzer.StopWords = override.Analyzer.StopWords
	}
	if override.Analyzer.StopWordsFile != "" {
		base.Analyzer.StopWordsFile = override.Analyzer.StopWordsFile
	}
	if override.Analyzer.DefaultStopWords != nil {
		base.Analyzer.DefaultStopWords = override.Analyzer.DefaultStopWords
	}
	return base
}

// Custom reports whether the analyzer replaces the default stop words,
// either with its own words or by turning the default list off
func (c AnalyzerConfig) Custom() bool {
	return c.StopWords != nil || c.StopWordsFile != "" ||
		(c.DefaultStopWords != nil && !*c.DefaultStopWords)
}

// StopWordList returns the configured stop words, nil when the default list applies
func (c AnalyzerConfig) StopWordList() ([]string, error) {
	if !c.Custom() {
		return nil, nil
	}

	words := make([]string, 0, len(c.StopWords))
	words = append(words, c.StopWords...)
	if c.StopWordsFile != "" {
		sw, err := mdm.LoadStopWords(c.StopWordsFile)
		if err != nil {
			return nil, err
		}
		words = append(words, sw.Words()...)
	}
	if c.DefaultStopWords != nil && *c.DefaultStopWords {
		words = append(words, mdm.DefaultStopWords().Words()...)
	}
	return words, nil
}

// Analyzer builds the path analyzer described by the configuration
func (c AnalyzerConfig) Analyzer() (*mdm.PathAnalyzer, error) {
	words, err := c.StopWordList()
	if err != nil {
		return nil, err
	}
	if words == nil {
		return mdm.NewPathAnalyzer(), nil
	}
	return mdm.NewPathAnalyzerWithStopWords(mdm.NewStopWords(words...)), nil
}
