package lexicon

import "fmt"

// Dimension is a named axis scored by one or more lexicons, for example a
// relationship dimension with "positive" and "negative" lexicons.
type Dimension struct {
	name     string
	weight   float64
	lexicons []*Lexicon
}

// NewDimension builds a dimension. A zero weight means DefaultWeight.
func NewDimension(name string, weight float64, lexicons ...*Lexicon) (*Dimension, error) {
	if name == "" {
		return nil, fmt.Errorf("dimension name is empty")
	}
	if weight < 0 {
		return nil, fmt.Errorf("dimension %q: negative weight %v", name, weight)
	}
	if len(lexicons) == 0 {
		return nil, fmt.Errorf("dimension %q: no lexicons", name)
	}
	if weight == 0 {
		weight = DefaultWeight
	}
	return &Dimension{name: name, weight: weight, lexicons: lexicons}, nil
}

func (d *Dimension) Name() string    { return d.name }
func (d *Dimension) Weight() float64 { return d.weight }

// Lexicon returns the dimension's lexicon with the given name, or nil.
func (d *Dimension) Lexicon(name string) *Lexicon {
	for _, l := range d.lexicons {
		if l.name == name {
			return l
		}
	}
	return nil
}

func (d *Dimension) contains(tok string) bool {
	for _, l := range d.lexicons {
		if l.Contains(tok) {
			return true
		}
	}
	return false
}

// Registry is an ordered set of dimensions.
type Registry struct {
	dims  []*Dimension
	index map[string]int
}

// NewRegistry builds a registry; dimension names must be unique.
func NewRegistry(dims ...*Dimension) (*Registry, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("registry has no dimensions")
	}
	r := &Registry{dims: dims, index: make(map[string]int, len(dims))}
	for i, d := range dims {
		if _, dup := r.index[d.name]; dup {
			return nil, fmt.Errorf("duplicate dimension %q", d.name)
		}
		r.index[d.name] = i
	}
	return r, nil
}

// Dimensions returns dimension names in registry order.
func (r *Registry) Dimensions() []string {
	names := make([]string, len(r.dims))
	for i, d := range r.dims {
		names[i] = d.name
	}
	return names
}

// Dimension looks up a dimension by name.
func (r *Registry) Dimension(name string) (*Dimension, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.dims[i], true
}

// WeightSum is the sum of dimension weights.
func (r *Registry) WeightSum() float64 {
	var sum float64
	for _, d := range r.dims {
		sum += d.weight
	}
	return sum
}

// Match counts tokens found in the dimension's lexicons, each hit scaled by
// the weight of the lexicon it matched. Duplicates count every time. An
// unknown dimension scores 0.
func (r *Registry) Match(tokens []string, dimension string) float64 {
	d, ok := r.Dimension(dimension)
	if !ok {
		return 0
	}
	var total float64
	for _, tok := range tokens {
		for _, l := range d.lexicons {
			if l.Contains(tok) {
				total += l.weight
			}
		}
	}
	return total
}

// Hits returns, in token order, the tokens matched by one named lexicon of a
// dimension.
func (r *Registry) Hits(tokens []string, dimension, lexicon string) []string {
	hits := []string{}
	d, ok := r.Dimension(dimension)
	if !ok {
		return hits
	}
	l := d.Lexicon(lexicon)
	if l == nil {
		return hits
	}
	for _, tok := range tokens {
		if l.Contains(tok) {
			hits = append(hits, tok)
		}
	}
	return hits
}

// Matches reports whether tok belongs to any dimension.
func (r *Registry) Matches(tok string) bool {
	for _, d := range r.dims {
		if d.contains(tok) {
			return true
		}
	}
	return false
}

// Distinct returns every matched term once, in first-seen token order.
func (r *Registry) Distinct(tokens []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		if r.Matches(tok) {
			seen[tok] = struct{}{}
			out = append(out, tok)
		}
	}
	return out
}

// ExtractKeywords is Distinct capped at MaxKeywords.
func (r *Registry) ExtractKeywords(tokens []string) []string {
	kw := r.Distinct(tokens)
	if len(kw) > MaxKeywords {
		kw = kw[:MaxKeywords]
	}
	return kw
}

// Terms lists every term in the registry once.
func (r *Registry) Terms() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range r.dims {
		for _, l := range d.lexicons {
			for _, t := range l.order {
				if _, ok := seen[t]; ok {
					continue
				}
				seen[t] = struct{}{}
				out = append(out, t)
			}
		}
	}
	return out
}
