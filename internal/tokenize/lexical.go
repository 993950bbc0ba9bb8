package tokenize

import (
	"unicode"
	"unicode/utf8"
)

// Lexical is a forward maximum-matching tokenizer over a fixed dictionary.
//
// At each Han position the longest dictionary term starting there is emitted
// as one token. Han runs that match no term are passed to the fallback
// tokenizer, or split into single runes when there is none. Runs of other
// letters and digits are emitted whole, without dictionary lookup.
type Lexical struct {
	dict     map[string]struct{}
	maxRunes int
	fallback Tokenizer
}

// NewLexical builds a Lexical tokenizer. fallback may be nil.
func NewLexical(terms []string, fallback Tokenizer) *Lexical {
	l := &Lexical{
		dict:     make(map[string]struct{}, len(terms)),
		fallback: fallback,
	}
	for _, t := range terms {
		t = Normalize(t)
		if t == "" {
			continue
		}
		l.dict[t] = struct{}{}
		if n := utf8.RuneCountInString(t); n > l.maxRunes {
			l.maxRunes = n
		}
	}
	return l
}

// Tokenize implements Tokenizer.
func (l *Lexical) Tokenize(text string) []string {
	runes := []rune(Normalize(text))
	out := make([]string, 0, len(runes)/2+1)

	pending := -1
	flush := func(end int) {
		if pending < 0 {
			return
		}
		out = l.unmatched(out, runes[pending:end])
		pending = -1
	}

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case isHan(r):
			if n := l.longest(runes, i); n > 0 {
				flush(i)
				out = append(out, string(runes[i:i+n]))
				i += n
				continue
			}
			if pending < 0 {
				pending = i
			}
			i++
		case unicode.IsSpace(r):
			flush(i)
			i++
		case isWordRune(r):
			flush(i)
			j := i + 1
			for j < len(runes) && isWordRune(runes[j]) {
				j++
			}
			out = append(out, string(runes[i:j]))
			i = j
		default:
			flush(i)
			out = append(out, string(r))
			i++
		}
	}
	flush(len(runes))
	return out
}

func (l *Lexical) longest(runes []rune, at int) int {
	n := l.maxRunes
	if rest := len(runes) - at; rest < n {
		n = rest
	}
	for ; n > 0; n-- {
		if _, ok := l.dict[string(runes[at:at+n])]; ok {
			return n
		}
	}
	return 0
}

func (l *Lexical) unmatched(out []string, span []rune) []string {
	if l.fallback == nil {
		for _, r := range span {
			out = append(out, string(r))
		}
		return out
	}
	for _, tok := range l.fallback.Tokenize(string(span)) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
