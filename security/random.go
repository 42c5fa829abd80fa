// Package security generates random strings and salts for credentials.
// Everything is drawn from a cryptographically strong source, there is no
// fallback to a weaker generator.
package security

import (
	"crypto/rand"
	stderrors "errors"
	"io"
	"math/big"
	"unicode"

	"github.com/go-errors/errors"
	"github.com/shengdoushi/base58"
)

const (
	// MinimumCodepoint is the first generated codepoint, "1"
	MinimumCodepoint = 49
	// MaximumCodepoint is the last generated codepoint, "z"
	MaximumCodepoint = 122

	SaltLength = 8
)

// Returned errors carry a stack trace and wrap these sentinels
var (
	ErrNoSecureSource = stderrors.New("no cryptographically strong random source available")
	ErrInvalidLength  = stderrors.New("length must not be negative")
)

// Generator draws characters uniformly from [MinimumCodepoint, MaximumCodepoint]
type Generator struct {
	source io.Reader
}

// NewGenerator wraps a random source, it must be cryptographically strong
func NewGenerator(source io.Reader) *Generator {
	return &Generator{source: source}
}

var defaultGenerator = NewGenerator(rand.Reader)

var codepointSpan = big.NewInt(MaximumCodepoint - MinimumCodepoint + 1)

func (g *Generator) codepoint() (rune, error) {
	n, err := rand.Int(g.source, codepointSpan)
	if err != nil {
		return 0, errors.WrapPrefix(ErrNoSecureSource, err.Error(), 0)
	}
	return rune(MinimumCodepoint + n.Int64()), nil
}

func (g *Generator) generate(length int, accept func(rune) bool) (string, error) {
	if length < 0 {
		return "", errors.New(ErrInvalidLength)
	}
	buf := make([]byte, 0, length)
	for len(buf) < length {
		r, err := g.codepoint()
		if err != nil {
			return "", err
		}
		if accept != nil && !accept(r) {
			continue
		}
		buf = append(buf, byte(r))
	}
	return string(buf), nil
}

func letterOrDigit(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Alphanumeric returns length letters and digits, punctuation of the range is rejected
func (g *Generator) Alphanumeric(length int) (string, error) {
	return g.generate(length, letterOrDigit)
}

// Full returns length characters taken from the whole range, punctuation included
func (g *Generator) Full(length int) (string, error) {
	return g.generate(length, nil)
}

// Salt returns SaltLength characters of the full range as bytes
func (g *Generator) Salt() ([]byte, error) {
	s, err := g.Full(SaltLength)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// APIKey returns n random bytes encoded in base58, easy to copy by hand
func (g *Generator) APIKey(n int) (string, error) {
	if n < 0 {
		return "", errors.New(ErrInvalidLength)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(g.source, b); err != nil {
		return "", errors.WrapPrefix(ErrNoSecureSource, err.Error(), 0)
	}
	return base58.Encode(b, base58.BitcoinAlphabet), nil
}

func GenerateAlphanumeric(length int) (string, error) {
	return defaultGenerator.Alphanumeric(length)
}

func GenerateFull(length int) (string, error) {
	return defaultGenerator.Full(length)
}

func GenerateSalt() ([]byte, error) {
	return defaultGenerator.Salt()
}

func GenerateAPIKey(n int) (string, error) {
	return defaultGenerator.APIKey(n)
}
