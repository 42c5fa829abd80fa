package mdm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/blevesearch/bleve/analysis"
	"github.com/blevesearch/bleve/analysis/lang/en"
)

// StopWords is an immutable set of terms removed from a token stream.
// Lookups are case sensitive, the default English list is lowercase.
type StopWords struct {
	tokens analysis.TokenMap
}

var (
	defaultStopWords     *StopWords
	defaultStopWordsOnce sync.Once
)

// DefaultStopWords returns the built-in English stop list, shared process wide
func DefaultStopWords() *StopWords {
	defaultStopWordsOnce.Do(func() {
		tm := analysis.NewTokenMap()
		// the list is compiled in, it can't fail to parse
		if err := tm.LoadBytes(en.EnglishStopWords); err != nil {
			panic(err)
		}
		defaultStopWords = &StopWords{tokens: tm}
	})
	return defaultStopWords
}

// NewStopWords builds a set from the given words, taken as is.
// The empty string is a valid member and removes empty segments.
func NewStopWords(words ...string) *StopWords {
	tm := analysis.NewTokenMap()
	for _, w := range words {
		tm.AddToken(w)
	}
	return &StopWords{tokens: tm}
}

// LoadStopWords reads a stop list file, one or more words per line,
// "#" or "|" start a comment
func LoadStopWords(filename string) (*StopWords, error) {
	tm := analysis.NewTokenMap()
	if err := tm.LoadFile(filename); err != nil {
		return nil, fmt.Errorf("can't load stop words from %s: %w", filename, err)
	}
	return &StopWords{tokens: tm}, nil
}

// Contains reports whether term is a stop word
func (s *StopWords) Contains(term string) bool {
	_, ok := s.tokens[term]
	return ok
}

func (s *StopWords) Len() int {
	return len(s.tokens)
}

// Words returns the sorted members of the set
func (s *StopWords) Words() []string {
	words := make([]string, 0, len(s.tokens))
	for w := range s.tokens {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// tokenMap returns a private copy usable by bleve filters
func (s *StopWords) tokenMap() analysis.TokenMap {
	tm := make(analysis.TokenMap, len(s.tokens))
	for k, v := range s.tokens {
		tm[k] = v
	}
	return tm
}
