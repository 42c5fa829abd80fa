package mdm

import (
	"bytes"
	"strings"

	"github.com/blevesearch/bleve/analysis"
	"github.com/blevesearch/bleve/registry"
)

const (
	// PathDelimiter separates the segments of a catalog path, it is never emitted
	PathDelimiter = '/'

	// PathTokenizerName is the name of the path tokenizer in the bleve registry
	PathTokenizerName = "mdm_path"
)

// segmenter walks a path and returns the byte range of each segment.
// Consecutive, leading or trailing delimiters yield empty segments.
type segmenter struct {
	input string
	pos   int
	done  bool
}

func newSegmenter(input string) segmenter {
	// nothing to split
	return segmenter{input: input, done: len(input) == 0}
}

// next returns the [start, end) range of the next segment
func (s *segmenter) next() (start, end int, ok bool) {
	if s.done {
		return 0, 0, false
	}
	start = s.pos
	i := strings.IndexByte(s.input[start:], PathDelimiter)
	if i < 0 {
		s.done = true
		return start, len(s.input), true
	}
	end = start + i
	s.pos = end + 1
	return start, end, true
}

// SplitPath returns the raw segments of a path, before any normalization.
// Joining them back with the delimiter gives the original text.
func SplitPath(text string) []string {
	var segments []string
	seg := newSegmenter(text)
	for {
		start, end, ok := seg.next()
		if !ok {
			return segments
		}
		segments = append(segments, text[start:end])
	}
}

// PathTokenizer is a bleve tokenizer splitting on the path delimiter
type PathTokenizer struct{}

func NewPathTokenizer() *PathTokenizer {
	return &PathTokenizer{}
}

// Tokenize returns one token per segment, positions start at 1 as bleve expects
func (t *PathTokenizer) Tokenize(input []byte) analysis.TokenStream {
	rv := make(analysis.TokenStream, 0, bytes.Count(input, []byte{PathDelimiter})+1)
	seg := newSegmenter(string(input))
	for {
		start, end, ok := seg.next()
		if !ok {
			break
		}
		rv = append(rv, &analysis.Token{
			Term:     input[start:end],
			Start:    start,
			End:      end,
			Position: len(rv) + 1,
			Type:     analysis.AlphaNumeric,
		})
	}
	return rv
}

func PathTokenizerConstructor(config map[string]interface{}, cache *registry.Cache) (analysis.Tokenizer, error) {
	return NewPathTokenizer(), nil
}

func init() {
	registry.RegisterTokenizer(PathTokenizerName, PathTokenizerConstructor)
}
