package service

import (
	"bemanai/internal/cache"
	"bemanai/internal/catalog"
	"bemanai/internal/classify"
	"bemanai/internal/lexicon"
	"bemanai/internal/model"
	"bemanai/internal/score"
	"bemanai/internal/suggest"
	"bemanai/internal/tokenize"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
)

const (
	// DecoderSuggestions caps personalized suggestions.
	DecoderSuggestions = 5
	// FocusKey is the only context key the decoder reads.
	FocusKey = "focus"

	negativePool = "negative_emotions"
)

// DecoderService decodes emotion state and relationship health
type DecoderService struct {
	patterns   *lexicon.Registry
	dimensions *lexicon.Registry
	templates  map[string]string // dimension -> suggestion pool
	tokenizer  tokenize.Tokenizer
	selector   *suggest.Selector
	axis       classify.Axis[classify.Primary]
	intensity  classify.Intensity
	opts       Options
	version    string

	cache cache.ResultCache
}

// NewDecoderService creates a new decoder service from the catalog
func NewDecoderService(cat *catalog.Catalog, opts Options) (*DecoderService, error) {
	patterns, err := catalog.Registry(cat.Decoder.Patterns)
	if err != nil {
		return nil, fmt.Errorf("decoder patterns: %w", err)
	}
	dimensions, err := catalog.DimensionRegistry(cat.Decoder.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("decoder dimensions: %w", err)
	}
	selector, err := catalog.Selector(cat.Decoder.Suggestions, "")
	if err != nil {
		return nil, fmt.Errorf("decoder suggestions: %w", err)
	}
	templates := make(map[string]string, len(cat.Decoder.Dimensions))
	for _, d := range cat.Decoder.Dimensions {
		templates[d.Name] = d.Template
	}

	terms := append(patterns.Terms(), dimensions.Terms()...)
	return &DecoderService{
		patterns:   patterns,
		dimensions: dimensions,
		templates:  templates,
		tokenizer:  opts.tokenizer(terms),
		selector:   selector,
		axis:       classify.PrimaryAxis(),
		intensity:  classify.DecoderIntensity(),
		opts:       opts,
		version:    cat.Version,
	}, nil
}

// SetCache enables the Redis result cache
func (s *DecoderService) SetCache(c cache.ResultCache) {
	s.cache = c
}

// Decode analyzes one text. ctxData is echoed in the result; its "focus"
// entry, when it names a dimension, puts that dimension's advice first.
func (s *DecoderService) Decode(ctx context.Context, text string, ctxData map[string]any, analysisType string) (*model.DecodeResult, error) {
	key := ""
	if s.cache != nil {
		key = decodeKey(text, analysisType, ctxData)
		cached, err := s.cache.GetDecode(ctx, key)
		if err != nil {
			log.Printf("decode cache get failed: %v", err)
		}
		if cached != nil {
			cached.ID = uuid.NewString()
			cached.AnalysisTime = s.opts.now()
			return cached, nil
		}
	}

	res, err := s.decode(text, ctxData, analysisType)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetDecode(ctx, key, res); err != nil {
			log.Printf("decode cache set failed: %v", err)
		}
	}
	return res, nil
}

// DecodeBatch decodes every text with a comprehensive analysis
func (s *DecoderService) DecodeBatch(ctx context.Context, texts []string, ctxData map[string]any) (*model.DecodeBatch, error) {
	if len(texts) == 0 {
		return nil, Validation("%s", msgBatchEmpty)
	}
	if limit := s.opts.Limits.MaxBatchDecode; limit > 0 && len(texts) > limit {
		return nil, Validation(msgBatchTooBig, limit)
	}

	results := runBatch(ctx, len(texts), s.opts.Workers, func(ctx context.Context, i int) model.DecodeResult {
		if err := ctx.Err(); err != nil {
			return s.failed(texts[i], ctxData, Computation(StageReceived, err))
		}
		res, err := s.Decode(ctx, texts[i], ctxData, string(model.AnalysisComprehensive))
		if err != nil {
			return s.failed(texts[i], ctxData, err)
		}
		return *res
	})

	success, failed := tally(results, func(r model.DecodeResult) bool { return r.Success })
	log.Printf("batch decode: total=%d success=%d failed=%d", len(results), success, failed)
	return &model.DecodeBatch{
		Results:      results,
		TotalCount:   len(results),
		SuccessCount: success,
		FailedCount:  failed,
	}, nil
}

// Info describes the decoder surface
func (s *DecoderService) Info() model.ServiceInfo {
	return model.ServiceInfo{
		Service:            "emotion-decoder",
		Version:            s.version,
		Description:        "情感状态与关系健康度解码服务",
		SupportedLanguages: []string{"zh"},
		MaxTextLength:      s.opts.Limits.MaxTextLength,
		MaxBatchSize:       s.opts.Limits.MaxBatchDecode,
		Features:           []string{"emotion_state", "relationship_health", "personalized_suggestions", "batch"},
		Details: map[string]any{
			"emotion_patterns":        s.patterns.Dimensions(),
			"relationship_dimensions": s.dimensions.Dimensions(),
			"analysis_types": []model.AnalysisType{
				model.AnalysisComprehensive, model.AnalysisEmotionOnly, model.AnalysisRelationOnly,
			},
		},
	}
}

func (s *DecoderService) decode(text string, ctxData map[string]any, analysisType string) (res *model.DecodeResult, err error) {
	r := newRun("decode", s.opts.Debug)
	defer r.guard(&err)

	if verr := checkText(text, s.opts.Limits.MaxTextLength, msgTextEmpty, msgTextTooLong); verr != nil {
		return nil, r.reject(verr)
	}
	kind, perr := model.ParseAnalysisType(analysisType)
	if perr != nil {
		return nil, r.reject(Validation("不支持的分析类型: %s", analysisType))
	}

	prepared := prepare(text)
	tokens := s.tokenizer.Tokenize(prepared)
	r.advance(StageTokenized)

	patternScores := score.Score(tokens, s.patterns)
	r.advance(StageScored)

	state := &model.EmotionState{
		PrimaryEmotion:  s.axis.Classify(patternScores),
		EmotionScores:   patternScores,
		Intensity:       s.intensity.Of(patternScores.Total(), len(tokens)),
		EmotionKeywords: s.patterns.ExtractKeywords(tokens),
	}
	dims := s.scoreDimensions(tokens)
	r.advance(StageClassified)

	agg := classify.Aggregate(dims)
	health := &model.RelationshipHealth{
		OverallScore:    agg.Overall,
		HealthLevel:     agg.Level,
		DimensionScores: agg.Dimensions,
		Strengths:       label(agg.Strengths, "表现优秀"),
		Weaknesses:      label(agg.Weaknesses, "需要改善"),
	}
	r.advance(StageAggregated)

	suggestions := s.personalize(state.PrimaryEmotion, agg, focusOf(ctxData))
	r.advance(StageSuggested)

	res = &model.DecodeResult{
		ID:           uuid.NewString(),
		Text:         text,
		AnalysisType: kind,
		Suggestions:  suggestions,
		Confidence:   classify.Confidence(score.Matched(tokens, s.patterns), len(tokens), prepared),
		Context:      ctxData,
		Success:      true,
		AnalysisTime: s.opts.now(),
	}
	if kind.WantsEmotion() {
		res.EmotionState = state
	}
	if kind.WantsRelationship() {
		res.RelationshipHealth = health
	}
	r.advance(StageAssembled)
	return res, nil
}

func (s *DecoderService) scoreDimensions(tokens []string) []classify.DimensionResult {
	names := s.dimensions.Dimensions()
	out := make([]classify.DimensionResult, 0, len(names))
	for _, name := range names {
		d, _ := s.dimensions.Dimension(name)
		pos := s.dimensions.Hits(tokens, name, catalog.PositiveLexicon)
		neg := s.dimensions.Hits(tokens, name, catalog.NegativeLexicon)
		out = append(out, classify.DimensionResult{
			Dimension:    name,
			Score:        classify.DimensionScore(float64(len(pos)), float64(len(neg))),
			Weight:       d.Weight(),
			PositiveHits: pos,
			NegativeHits: neg,
		})
	}
	return out
}

// personalize merges, in order: the focus dimension's advice, the negative
// emotion pool, the poor or critical health pool, and the first template of
// every weak dimension.
func (s *DecoderService) personalize(primary classify.Primary, h classify.Health, focus string) []string {
	var groups [][]string
	if pool, ok := s.templates[focus]; ok && pool != "" {
		groups = append(groups, s.selector.Select(pool, 1))
	}
	if primary == classify.PrimaryNegative {
		groups = append(groups, s.selector.Select(negativePool, 0))
	}
	switch h.Level {
	case classify.Poor, classify.Critical:
		groups = append(groups, s.selector.Select(h.Level.String(), 0))
	}
	for _, d := range h.Dimensions {
		if d.Score >= classify.WeaknessThreshold {
			continue
		}
		if pool := s.templates[d.Dimension]; pool != "" {
			groups = append(groups, s.selector.Select(pool, 1))
		}
	}
	return suggest.Merge(DecoderSuggestions, groups...)
}

func (s *DecoderService) failed(text string, ctxData map[string]any, err error) model.DecodeResult {
	return model.DecodeResult{
		ID:           uuid.NewString(),
		Text:         text,
		AnalysisType: model.AnalysisComprehensive,
		Suggestions:  []string{},
		Context:      ctxData,
		Success:      false,
		Message:      MessageOf(err),
		ErrorType:    string(KindOf(err)),
		AnalysisTime: s.opts.now(),
	}
}

func label(names []string, suffix string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n + ": " + suffix
	}
	return out
}

func focusOf(ctxData map[string]any) string {
	focus, _ := ctxData[FocusKey].(string)
	return focus
}

func decodeKey(text, analysisType string, ctxData map[string]any) string {
	raw, err := json.Marshal(ctxData)
	if err != nil {
		raw = []byte(fmt.Sprint(ctxData))
	}
	return cache.ResultKey("decode", text, analysisType, string(raw))
}
