package tokenize

import (
	"fmt"
	"strings"

	"github.com/go-ego/gse"
)

// Segmenter wraps the gse dictionary segmenter.
type Segmenter struct {
	seg gse.Segmenter
}

// NewSegmenter loads the given dictionary files, or the bundled Chinese
// dictionary when none are given.
func NewSegmenter(dictFiles ...string) (*Segmenter, error) {
	seg, err := gse.New(dictFiles...)
	if err != nil {
		return nil, fmt.Errorf("load gse dictionary: %w", err)
	}
	return &Segmenter{seg: seg}, nil
}

// Tokenize implements Tokenizer using HMM-assisted segmentation.
func (s *Segmenter) Tokenize(text string) []string {
	text = Normalize(text)
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	cut := s.seg.Cut(text, true)
	out := make([]string, 0, len(cut))
	for _, tok := range cut {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	return out
}
