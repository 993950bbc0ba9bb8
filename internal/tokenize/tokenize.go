// Package tokenize segments raw text into ordered tokens for lexicon matching.
//
// Every tokenizer in this package follows one policy: invalid UTF-8 bytes are
// dropped, text is NFC-normalized, whitespace separates tokens and is never
// emitted, and punctuation or symbols pass through as single-rune tokens.
package tokenize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenizer produces an ordered token sequence from text. Implementations
// must be safe for concurrent use.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Func adapts a plain function to the Tokenizer interface.
type Func func(text string) []string

// Tokenize calls f(text).
func (f Func) Tokenize(text string) []string { return f(text) }

// Builder returns a tokenizer whose dictionary includes terms.
type Builder func(terms []string) Tokenizer

// Normalize drops invalid UTF-8 and applies NFC composition.
func Normalize(text string) string {
	return norm.NFC.String(strings.ToValidUTF8(text, ""))
}

func isHan(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

func isWordRune(r rune) bool {
	return !isHan(r) && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r))
}
