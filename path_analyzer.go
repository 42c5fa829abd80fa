package mdm

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/blevesearch/bleve/analysis"
	"github.com/blevesearch/bleve/analysis/token/lowercase"
	"github.com/blevesearch/bleve/analysis/token/stop"
	"github.com/blevesearch/bleve/registry"
)

// PathAnalyzerName is the name of the path analyzer in the bleve registry
const PathAnalyzerName = "mdm_path"

// ErrInvalidInput is returned when the payload to analyze is not UTF-8 text
var ErrInvalidInput = errors.New("input is not valid UTF-8 text")

// PathAnalyzer turns catalog paths like "folder/subfolder/item" into search terms:
// split on "/", lowercase, then drop stop words. The stages always run in that order.
// A PathAnalyzer is safe for concurrent use.
type PathAnalyzer struct {
	stopWords *StopWords
	filters   []analysis.TokenFilter
}

// NewPathAnalyzer returns an analyzer using the default English stop words
func NewPathAnalyzer() *PathAnalyzer {
	return NewPathAnalyzerWithStopWords(nil)
}

// NewPathAnalyzerWithStopWords returns an analyzer removing sw, nil means the default list
func NewPathAnalyzerWithStopWords(sw *StopWords) *PathAnalyzer {
	if sw == nil {
		sw = DefaultStopWords()
	}
	return &PathAnalyzer{
		stopWords: sw,
		filters: []analysis.TokenFilter{
			lowercase.NewLowerCaseFilter(),
			stop.NewStopTokensFilter(sw.tokenMap()),
		},
	}
}

// StopWords returns the set this analyzer removes
func (a *PathAnalyzer) StopWords() *StopWords {
	return a.stopWords
}

// Analyze returns a fresh lazy stream of tokens for text.
// field is accepted for multi-field analysis frameworks and doesn't change the result.
func (a *PathAnalyzer) Analyze(field, text string) *TokenStream {
	return &TokenStream{
		input:   text,
		seg:     newSegmenter(text),
		filters: a.filters,
	}
}

// AnalyzeBytes is Analyze for raw payloads, rejecting anything that is not UTF-8
func (a *PathAnalyzer) AnalyzeBytes(field string, b []byte) (*TokenStream, error) {
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("field %s: %w", field, ErrInvalidInput)
	}
	return a.Analyze(field, string(b)), nil
}

// positionFilter renumbers tokens from 1 so that removed tokens leave no gap
type positionFilter struct{}

func (f *positionFilter) Filter(input analysis.TokenStream) analysis.TokenStream {
	for i, token := range input {
		token.Position = i + 1
	}
	return input
}

// AnalyzerConstructorPath builds the path analyzer for the bleve registry.
// The optional "stop_token_map" config entry names a token map replacing
// the default English stop words.
func AnalyzerConstructorPath(config map[string]interface{}, cache *registry.Cache) (*analysis.Analyzer, error) {
	tokenizer, err := cache.TokenizerNamed(PathTokenizerName)
	if err != nil {
		return nil, err
	}
	toLowerFilter, err := cache.TokenFilterNamed(lowercase.Name)
	if err != nil {
		return nil, err
	}

	tokenMap := DefaultStopWords().tokenMap()
	if name, ok := config["stop_token_map"].(string); ok && name != "" {
		tokenMap, err = cache.TokenMapNamed(name)
		if err != nil {
			return nil, fmt.Errorf("stop token map %s: %w", name, err)
		}
	}

	rv := analysis.Analyzer{
		Tokenizer: tokenizer,
		TokenFilters: []analysis.TokenFilter{
			toLowerFilter,
			stop.NewStopTokensFilter(tokenMap),
			&positionFilter{},
		},
	}
	return &rv, nil
}

func init() {
	registry.RegisterAnalyzer(PathAnalyzerName, AnalyzerConstructorPath)
}
