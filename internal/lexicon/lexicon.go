// Package lexicon holds immutable term sets grouped into scored dimensions.
//
// A Registry is built once and never mutated, so it may be shared by any
// number of goroutines without locking. Matching is exact token equality.
package lexicon

import (
	"errors"
	"fmt"
)

// DefaultWeight is applied to lexicons declared without a weight.
const DefaultWeight = 1.0

// MaxKeywords caps ExtractKeywords.
const MaxKeywords = 10

var ErrEmptyLexicon = errors.New("lexicon has no terms")

// Lexicon is a named, weighted set of trigger terms.
type Lexicon struct {
	name   string
	weight float64
	terms  map[string]struct{}
	order  []string
}

// New builds a lexicon. A zero weight means DefaultWeight. Duplicate terms
// are kept once.
func New(name string, weight float64, terms []string) (*Lexicon, error) {
	if weight < 0 {
		return nil, fmt.Errorf("lexicon %q: negative weight %v", name, weight)
	}
	if weight == 0 {
		weight = DefaultWeight
	}
	l := &Lexicon{
		name:   name,
		weight: weight,
		terms:  make(map[string]struct{}, len(terms)),
	}
	for _, t := range terms {
		if t == "" {
			return nil, fmt.Errorf("lexicon %q: empty term", name)
		}
		if _, dup := l.terms[t]; dup {
			continue
		}
		l.terms[t] = struct{}{}
		l.order = append(l.order, t)
	}
	if len(l.order) == 0 {
		return nil, fmt.Errorf("lexicon %q: %w", name, ErrEmptyLexicon)
	}
	return l, nil
}

func (l *Lexicon) Name() string    { return l.name }
func (l *Lexicon) Weight() float64 { return l.weight }
func (l *Lexicon) Len() int        { return len(l.order) }

// Contains reports exact membership of tok.
func (l *Lexicon) Contains(tok string) bool {
	_, ok := l.terms[tok]
	return ok
}

// Terms returns the terms in declaration order.
func (l *Lexicon) Terms() []string {
	return append([]string(nil), l.order...)
}
