package catalog

import (
	"bemanai/internal/lexicon"
	"bemanai/internal/suggest"
	"fmt"
	"sort"
)

// Lexicon names inside a relationship dimension.
const (
	PositiveLexicon = "positive"
	NegativeLexicon = "negative"
)

// Registry builds a registry with one single-lexicon dimension per set.
func Registry(sets []TermSet) (*lexicon.Registry, error) {
	dims := make([]*lexicon.Dimension, 0, len(sets))
	for _, s := range sets {
		l, err := lexicon.New(s.Name, s.Weight, s.Terms)
		if err != nil {
			return nil, err
		}
		d, err := lexicon.NewDimension(s.Name, s.Weight, l)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return lexicon.NewRegistry(dims...)
}

// DimensionRegistry builds the relationship registry: each dimension carries
// a positive and a negative lexicon, either of which may be absent.
func DimensionRegistry(dims []Dimension) (*lexicon.Registry, error) {
	out := make([]*lexicon.Dimension, 0, len(dims))
	for _, d := range dims {
		var lexicons []*lexicon.Lexicon
		for _, side := range []struct {
			name  string
			terms []string
		}{{PositiveLexicon, d.Positive}, {NegativeLexicon, d.Negative}} {
			if len(side.terms) == 0 {
				continue
			}
			l, err := lexicon.New(side.name, 0, side.terms)
			if err != nil {
				return nil, fmt.Errorf("dimension %q: %w", d.Name, err)
			}
			lexicons = append(lexicons, l)
		}
		dim, err := lexicon.NewDimension(d.Name, d.Weight, lexicons...)
		if err != nil {
			return nil, err
		}
		out = append(out, dim)
	}
	return lexicon.NewRegistry(out...)
}

// Selector compiles pools into a selector. Keys are sorted so the selector
// does not depend on map order.
func Selector(pools map[string]Pool, fallback string) (*suggest.Selector, error) {
	keys := make([]string, 0, len(pools))
	for k := range pools {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	compiled := make([]suggest.Pool, 0, len(keys))
	for _, k := range keys {
		p := pools[k]
		policy, err := suggest.ParsePolicy(p.Policy)
		if err != nil {
			return nil, fmt.Errorf("pool %q: %w", k, err)
		}
		compiled = append(compiled, suggest.NewPool(k, policy, p.Entries))
	}
	return suggest.NewSelector(fallback, compiled...), nil
}

// Terms flattens the terms of several sets, for tokenizer dictionaries.
func Terms(sets ...[]TermSet) []string {
	var out []string
	for _, group := range sets {
		for _, s := range group {
			out = append(out, s.Terms...)
		}
	}
	return out
}
