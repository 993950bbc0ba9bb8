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
	"fmt"
	"log"

	"github.com/google/uuid"
)

// EmotionSuggestions is how many suggestions an emotion result carries.
const EmotionSuggestions = 3

const (
	msgTextEmpty   = "文本内容不能为空"
	msgTextTooLong = "文本长度超过限制(%d字符)"
	msgBatchEmpty  = "文本列表不能为空"
	msgBatchTooBig = "批量处理数量不能超过%d条"
)

// EmotionService classifies the emotion of single texts and batches
type EmotionService struct {
	registry  *lexicon.Registry
	tokenizer tokenize.Tokenizer
	selector  *suggest.Selector
	axis      classify.Axis[classify.Emotion]
	opts      Options
	version   string

	cache  cache.ResultCache
	trends cache.TrendCache
}

// NewEmotionService creates a new emotion service from the catalog
func NewEmotionService(cat *catalog.Catalog, opts Options) (*EmotionService, error) {
	registry, err := catalog.Registry(cat.Emotion.Lexicons)
	if err != nil {
		return nil, fmt.Errorf("emotion lexicons: %w", err)
	}
	selector, err := catalog.Selector(cat.Emotion.Suggestions, cat.Emotion.DefaultPool)
	if err != nil {
		return nil, fmt.Errorf("emotion suggestions: %w", err)
	}
	return &EmotionService{
		registry:  registry,
		tokenizer: opts.tokenizer(registry.Terms()),
		selector:  selector,
		axis:      classify.EmotionAxis(),
		opts:      opts,
		version:   cat.Version,
	}, nil
}

// SetCache enables the Redis result cache
func (s *EmotionService) SetCache(c cache.ResultCache) {
	s.cache = c
}

// SetTrends enables keyword trend counting
func (s *EmotionService) SetTrends(t cache.TrendCache) {
	s.trends = t
}

// Analyze classifies one text. A cached result is returned under a new id
// and timestamp, and counts toward keyword trends like a fresh one.
func (s *EmotionService) Analyze(ctx context.Context, text string) (*model.EmotionResult, error) {
	key := cache.ResultKey("emotion", text)
	var res *model.EmotionResult
	if s.cache != nil {
		cached, err := s.cache.GetEmotion(ctx, key)
		if err != nil {
			log.Printf("emotion cache get failed: %v", err)
		}
		if cached != nil {
			cached.ID = uuid.NewString()
			cached.GeneratedAt = s.opts.now()
			res = cached
		}
	}

	if res == nil {
		fresh, err := s.analyze(text)
		if err != nil {
			return nil, err
		}
		res = fresh
		if s.cache != nil {
			if err := s.cache.SetEmotion(ctx, key, res); err != nil {
				log.Printf("emotion cache set failed: %v", err)
			}
		}
	}

	if s.trends != nil {
		if err := s.trends.Record(ctx, res.Category.String(), res.Keywords); err != nil {
			log.Printf("keyword trend update failed: %v", err)
		}
	}
	return res, nil
}

// AnalyzeBatch classifies every text. Only an empty or oversized list fails
// as a whole; bad items become flagged records.
func (s *EmotionService) AnalyzeBatch(ctx context.Context, texts []string) (*model.EmotionBatch, error) {
	if len(texts) == 0 {
		return nil, Validation("%s", msgBatchEmpty)
	}
	if limit := s.opts.Limits.MaxBatchAnalyze; limit > 0 && len(texts) > limit {
		return nil, Validation(msgBatchTooBig, limit)
	}

	results := runBatch(ctx, len(texts), s.opts.Workers, func(ctx context.Context, i int) model.EmotionResult {
		if err := ctx.Err(); err != nil {
			return s.failed(texts[i], Computation(StageReceived, err))
		}
		res, err := s.Analyze(ctx, texts[i])
		if err != nil {
			return s.failed(texts[i], err)
		}
		return *res
	})

	success, failed := tally(results, func(r model.EmotionResult) bool { return r.Success })
	log.Printf("batch analyze: total=%d success=%d failed=%d", len(results), success, failed)
	return &model.EmotionBatch{
		Results:      results,
		TotalCount:   len(results),
		SuccessCount: success,
		FailedCount:  failed,
	}, nil
}

// Info describes the emotion analysis surface
func (s *EmotionService) Info() model.ServiceInfo {
	return model.ServiceInfo{
		Service:            "emotion-analysis",
		Version:            s.version,
		Description:        "基于词典的情感分析服务",
		SupportedLanguages: []string{"zh"},
		MaxTextLength:      s.opts.Limits.MaxTextLength,
		MaxBatchSize:       s.opts.Limits.MaxBatchAnalyze,
		Features:           []string{"emotion_classification", "intensity", "keyword_extraction", "suggestions", "batch"},
		Details:            map[string]any{"categories": s.axis.Dimensions()},
	}
}

func (s *EmotionService) analyze(text string) (res *model.EmotionResult, err error) {
	r := newRun("analyze", s.opts.Debug)
	defer r.guard(&err)

	if verr := checkText(text, s.opts.Limits.MaxTextLength, msgTextEmpty, msgTextTooLong); verr != nil {
		return nil, r.reject(verr)
	}

	tokens := s.tokenizer.Tokenize(text)
	r.advance(StageTokenized)

	scores := score.Score(tokens, s.registry)
	r.advance(StageScored)

	category := s.axis.Classify(scores)
	intensity := s.opts.Intensity.Of(float64(score.Matched(tokens, s.registry)), len(tokens))
	keywords := s.registry.ExtractKeywords(tokens)
	r.advance(StageClassified)

	suggestions := s.selector.Select(category.String(), EmotionSuggestions)
	r.advance(StageSuggested)

	res = &model.EmotionResult{
		ID:          uuid.NewString(),
		Text:        text,
		Category:    category,
		Intensity:   intensity,
		Scores:      scores,
		Keywords:    keywords,
		Suggestions: suggestions,
		Success:     true,
		GeneratedAt: s.opts.now(),
	}
	r.advance(StageAssembled)
	return res, nil
}

// failed builds the zero-valued record of a failed batch item
func (s *EmotionService) failed(text string, err error) model.EmotionResult {
	return model.EmotionResult{
		ID:          uuid.NewString(),
		Text:        text,
		Category:    classify.EmotionUnknown,
		Scores:      score.Vector{},
		Keywords:    []string{},
		Suggestions: []string{},
		Success:     false,
		Message:     MessageOf(err),
		ErrorType:   string(KindOf(err)),
		GeneratedAt: s.opts.now(),
	}
}
