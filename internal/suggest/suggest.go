// Package suggest selects suggestion text from keyed template pools.
package suggest

import (
	"fmt"
	"math/rand/v2"
)

// Policy is how entries are drawn from a pool.
type Policy int

const (
	// First takes entries in declared order.
	First Policy = iota
	// Random samples entries uniformly without replacement.
	Random
)

func (p Policy) String() string {
	switch p {
	case First:
		return "first"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses a policy name; the empty string is First.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "first":
		return First, nil
	case "random":
		return Random, nil
	default:
		return First, fmt.Errorf("unknown selection policy %q", s)
	}
}

// Pool is an ordered list of templates under one key.
type Pool struct {
	Key     string
	Policy  Policy
	Entries []string
}

// NewPool copies entries into a pool.
func NewPool(key string, policy Policy, entries []string) Pool {
	return Pool{Key: key, Policy: policy, Entries: append([]string(nil), entries...)}
}

// Selector resolves a classification value to suggestions. It is read-only
// after construction.
type Selector struct {
	pools    map[string]Pool
	keys     []string
	fallback string
	perm     func(n int) []int
}

// NewSelector indexes pools by key. fallback names the pool used for keys
// with no pool of their own; it may be empty or missing.
func NewSelector(fallback string, pools ...Pool) *Selector {
	s := &Selector{
		pools:    make(map[string]Pool, len(pools)),
		fallback: fallback,
		perm:     rand.Perm,
	}
	for _, p := range pools {
		if _, dup := s.pools[p.Key]; !dup {
			s.keys = append(s.keys, p.Key)
		}
		s.pools[p.Key] = p
	}
	return s
}

// WithPerm replaces the permutation source used by Random pools.
func (s *Selector) WithPerm(perm func(n int) []int) *Selector {
	cp := *s
	cp.perm = perm
	return &cp
}

// Has reports whether key has its own pool.
func (s *Selector) Has(key string) bool {
	_, ok := s.pools[key]
	return ok
}

// Keys lists pool keys in declaration order.
func (s *Selector) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Select returns up to k distinct entries from the pool for key, falling
// back to the default pool. Repeated entries are dropped before the cut to k,
// and k <= 0 returns every distinct entry. The result is never nil.
func (s *Selector) Select(key string, k int) []string {
	p, ok := s.pools[key]
	if !ok {
		p, ok = s.pools[s.fallback]
	}
	if !ok {
		return []string{}
	}
	var order []int
	switch p.Policy {
	case Random:
		order = s.perm(len(p.Entries))
	default:
		order = make([]int, len(p.Entries))
		for i := range order {
			order[i] = i
		}
	}
	seen := make(map[string]struct{}, len(order))
	out := []string{}
	for _, i := range order {
		e := p.Entries[i]
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
		if k > 0 && len(out) == k {
			break
		}
	}
	return out
}

// Merge concatenates groups, drops repeated strings and truncates to k.
// k <= 0 keeps everything.
func Merge(k int, groups ...[]string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, g := range groups {
		for _, s := range g {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
			if k > 0 && len(out) == k {
				return out
			}
		}
	}
	return out
}
