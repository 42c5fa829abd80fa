package mdm

import (
	"fmt"

	"github.com/blevesearch/bleve/analysis"
)

// Token is a single term produced by the path analyzer.
// Start and End are byte offsets in the analyzed text, End excluded.
// Position counts emitted tokens only, starting at 0.
type Token struct {
	Text     string `json:"text"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Position int    `json:"position"`
}

func (t Token) String() string {
	return fmt.Sprintf("%q [%d:%d] @%d", t.Text, t.Start, t.End, t.Position)
}

// TokenStream lazily analyzes a path, segment by segment.
// It can be read once, call Analyze again for a fresh stream.
type TokenStream struct {
	input   string
	seg     segmenter
	filters []analysis.TokenFilter
	pos     int
	cur     Token
}

// Next advances to the next surviving token, false at the end of the stream
func (ts *TokenStream) Next() bool {
	for {
		start, end, ok := ts.seg.next()
		if !ok {
			ts.cur = Token{}
			return false
		}

		stream := analysis.TokenStream{&analysis.Token{
			Term:     []byte(ts.input[start:end]),
			Start:    start,
			End:      end,
			Position: ts.pos + 1,
			Type:     analysis.AlphaNumeric,
		}}
		for _, f := range ts.filters {
			stream = f.Filter(stream)
			if len(stream) == 0 {
				break
			}
		}
		if len(stream) == 0 {
			continue
		}

		ts.cur = Token{
			Text:     string(stream[0].Term),
			Start:    stream[0].Start,
			End:      stream[0].End,
			Position: ts.pos,
		}
		ts.pos++
		return true
	}
}

// Token returns the current token, valid after a successful Next
func (ts *TokenStream) Token() Token {
	return ts.cur
}

// Tokens drains the rest of the stream
func (ts *TokenStream) Tokens() []Token {
	var rv []Token
	for ts.Next() {
		rv = append(rv, ts.cur)
	}
	return rv
}

// Terms drains the rest of the stream and returns the token texts only
func (ts *TokenStream) Terms() []string {
	var rv []string
	for ts.Next() {
		rv = append(rv, ts.cur.Text)
	}
	return rv
}
