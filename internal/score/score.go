// Package score turns token sequences into per-dimension score vectors.
package score

import (
	"bemanai/internal/lexicon"
	"bytes"
	"encoding/json"
)

// Entry is one dimension's score.
type Entry struct {
	Dimension string  `json:"dimension" msgpack:"dimension" bson:"dimension"`
	Value     float64 `json:"value" msgpack:"value" bson:"value"`
}

// Vector holds scores in registry order.
type Vector []Entry

// Get returns the score of a dimension, or 0 when absent.
func (v Vector) Get(dimension string) float64 {
	for _, e := range v {
		if e.Dimension == dimension {
			return e.Value
		}
	}
	return 0
}

// Total sums every entry.
func (v Vector) Total() float64 {
	var sum float64
	for _, e := range v {
		sum += e.Value
	}
	return sum
}

// MarshalJSON encodes the vector as an object whose keys keep registry order.
func (v Vector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Dimension)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object produced by MarshalJSON, preserving key order.
func (v *Vector) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return err
	}
	out := Vector{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var val float64
		if err := dec.Decode(&val); err != nil {
			return err
		}
		out = append(out, Entry{Dimension: key, Value: val})
	}
	*v = out
	return nil
}

// Score computes the match score of every registry dimension. It is pure.
func Score(tokens []string, r *lexicon.Registry) Vector {
	dims := r.Dimensions()
	v := make(Vector, len(dims))
	for i, name := range dims {
		v[i] = Entry{Dimension: name, Value: r.Match(tokens, name)}
	}
	return v
}

// Matched counts tokens that belong to any dimension, each token once.
func Matched(tokens []string, r *lexicon.Registry) int {
	n := 0
	for _, tok := range tokens {
		if r.Matches(tok) {
			n++
		}
	}
	return n
}

// Density is Matched over the token count, 0 for no tokens.
func Density(tokens []string, r *lexicon.Registry) float64 {
	if len(tokens) == 0 {
		return 0
	}
	return float64(Matched(tokens, r)) / float64(len(tokens))
}
