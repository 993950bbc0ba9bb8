package service

import (
	"bemanai/internal/catalog"
	"bemanai/internal/classify"
	"bemanai/internal/lexicon"
	"bemanai/internal/model"
	"bemanai/internal/suggest"
	"bemanai/internal/tokenize"
	"context"
	"fmt"
)

// Content types accepted by Moderate.
var ContentTypes = []string{"general", "comment", "post", "message"}

const sensitiveDimension = "sensitive"

// ModerationService flags sensitive terms in user content
type ModerationService struct {
	registry  *lexicon.Registry
	tokenizer tokenize.Tokenizer
	selector  *suggest.Selector
	opts      Options
	version   string
}

// NewModerationService creates a new moderation service from the catalog
func NewModerationService(cat *catalog.Catalog, opts Options) (*ModerationService, error) {
	registry, err := catalog.Registry([]catalog.TermSet{{Name: sensitiveDimension, Terms: cat.Moderation.Terms}})
	if err != nil {
		return nil, fmt.Errorf("moderation terms: %w", err)
	}
	selector, err := catalog.Selector(cat.Moderation.Suggestions, classify.RiskLow.String())
	if err != nil {
		return nil, fmt.Errorf("moderation suggestions: %w", err)
	}
	return &ModerationService{
		registry:  registry,
		tokenizer: opts.tokenizer(registry.Terms()),
		selector:  selector,
		opts:      opts,
		version:   cat.Version,
	}, nil
}

// Moderate grades text by the number of distinct sensitive terms it uses
func (s *ModerationService) Moderate(ctx context.Context, text, contentType string) (res *model.ModerationResult, err error) {
	r := newRun("moderate", s.opts.Debug)
	defer r.guard(&err)

	if verr := checkText(text, s.opts.Limits.MaxTextLength, msgTextEmpty, msgTextTooLong); verr != nil {
		return nil, r.reject(verr)
	}
	if contentType == "" {
		contentType = ContentTypes[0]
	}
	if !validContentType(contentType) {
		return nil, r.reject(Validation("不支持的内容类型: %s", contentType))
	}

	tokens := s.tokenizer.Tokenize(text)
	r.advance(StageTokenized)

	flagged := s.registry.Distinct(tokens)
	r.advance(StageScored)

	level := classify.RiskOf(len(flagged))
	r.advance(StageClassified)

	suggestions := s.selector.Select(level.String(), 0)
	r.advance(StageSuggested)

	res = &model.ModerationResult{
		Text:            text,
		ContentType:     contentType,
		IsAppropriate:   level.Appropriate(),
		RiskLevel:       level,
		RiskScore:       classify.RiskScore(len(flagged)),
		FlaggedKeywords: flagged,
		Suggestions:     suggestions,
		ModerationTime:  s.opts.now(),
	}
	r.advance(StageAssembled)
	return res, nil
}

func validContentType(t string) bool {
	for _, c := range ContentTypes {
		if c == t {
			return true
		}
	}
	return false
}

// Info describes the moderation surface
func (s *ModerationService) Info() model.ServiceInfo {
	return model.ServiceInfo{
		Service:            "content-moderation",
		Version:            s.version,
		Description:        "敏感词内容审核服务",
		SupportedLanguages: []string{"zh"},
		MaxTextLength:      s.opts.Limits.MaxTextLength,
		Features:           []string{"sensitive_terms", "risk_level", "suggestions"},
		Details: map[string]any{
			"content_types": ContentTypes,
			"risk_levels":   []classify.RiskLevel{classify.RiskLow, classify.RiskMedium, classify.RiskHigh, classify.RiskExtreme},
		},
	}
}
