package tokenize

import "fmt"

// Tokenizer modes accepted by NewBuilder.
const (
	ModeLexical    = "lexical"
	ModeLexicalGSE = "lexical+gse"
	ModeGSE        = "gse"
)

// NewBuilder returns a Builder for mode. Modes that use gse load its
// dictionary once and share the segmenter between every tokenizer built.
func NewBuilder(mode string, dictFiles ...string) (Builder, error) {
	switch mode {
	case ModeLexical:
		return func(terms []string) Tokenizer {
			return NewLexical(terms, nil)
		}, nil
	case ModeLexicalGSE, "":
		seg, err := NewSegmenter(dictFiles...)
		if err != nil {
			return nil, err
		}
		return func(terms []string) Tokenizer {
			return NewLexical(terms, seg)
		}, nil
	case ModeGSE:
		seg, err := NewSegmenter(dictFiles...)
		if err != nil {
			return nil, err
		}
		return func([]string) Tokenizer { return seg }, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer mode %q", mode)
	}
}
