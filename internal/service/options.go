package service

import (
	"bemanai/internal/classify"
	"bemanai/internal/tokenize"
	"time"
)

// Limits bound request sizes.
type Limits struct {
	MaxTextLength     int
	MaxDialogueLength int
	MaxBatchAnalyze   int
	MaxBatchDecode    int
	MaxBatchSkills    int
}

// DefaultLimits returns the limits of the public API.
func DefaultLimits() Limits {
	return Limits{
		MaxTextLength:     1000,
		MaxDialogueLength: 200,
		MaxBatchAnalyze:   100,
		MaxBatchDecode:    50,
		MaxBatchSkills:    20,
	}
}

// Options are shared by every analysis service.
type Options struct {
	Limits    Limits
	Intensity classify.Intensity
	Workers   int
	Debug     bool
	CacheTTL  time.Duration
	// Tokenizer builds each service's tokenizer from its lexicon terms.
	// Nil means a lexical tokenizer with no fallback.
	Tokenizer tokenize.Builder
	// Now stamps results; nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns options for tests and the CLI.
func DefaultOptions() Options {
	return Options{
		Limits:    DefaultLimits(),
		Intensity: classify.DefaultIntensity(),
		Workers:   8,
		CacheTTL:  time.Hour,
	}
}

func (o Options) tokenizer(terms []string) tokenize.Tokenizer {
	if o.Tokenizer == nil {
		return tokenize.NewLexical(terms, nil)
	}
	return o.Tokenizer(terms)
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}
