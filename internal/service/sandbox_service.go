package service

import (
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
	"strings"
)

// Conflict guide kinds.
const (
	ConflictEscalation = "escalation"
	ConflictResolution = "resolution"
	ConflictAll        = "all"
)

const (
	allScenariosName = "所有场景"
	allScenariosDesc = "完整的沟通场景库"
	noTemplate       = "请根据具体情况表达"
	generalNextSteps = "general"
	conflictSkill    = "conflict_resolution"
)

// SandboxService serves the communication practice sandbox
type SandboxService struct {
	cat         *catalog.Catalog
	emotions    *lexicon.Registry
	styles      *lexicon.Registry
	tokenizer   tokenize.Tokenizer
	emotionAxis classify.Axis[classify.Emotion]
	styleAxis   classify.Axis[classify.Style]

	immediate *suggest.Selector
	style     *suggest.Selector
	conflict  *suggest.Selector
	nextSteps *suggest.Selector

	opts Options
}

// NewSandboxService creates a new sandbox service from the catalog
func NewSandboxService(cat *catalog.Catalog, opts Options) (*SandboxService, error) {
	sb := cat.Sandbox
	emotions, err := catalog.Registry(sb.EmotionLexicons)
	if err != nil {
		return nil, fmt.Errorf("sandbox emotion lexicons: %w", err)
	}
	styles, err := catalog.Registry(sb.StyleLexicons)
	if err != nil {
		return nil, fmt.Errorf("sandbox style lexicons: %w", err)
	}

	s := &SandboxService{
		cat:         cat,
		emotions:    emotions,
		styles:      styles,
		tokenizer:   opts.tokenizer(append(emotions.Terms(), styles.Terms()...)),
		emotionAxis: classify.EmotionAxis(),
		styleAxis:   classify.StyleAxis(),
		opts:        opts,
	}
	for _, sel := range []struct {
		dst   **suggest.Selector
		pools map[string]catalog.Pool
		name  string
	}{
		{&s.immediate, sb.ImmediateResponse, "immediate_response"},
		{&s.style, sb.CommunicationStyle, "communication_style"},
		{&s.conflict, sb.ConflictResolution, "conflict_resolution"},
		{&s.nextSteps, sb.NextSteps, "next_steps"},
	} {
		compiled, err := catalog.Selector(sel.pools, "")
		if err != nil {
			return nil, fmt.Errorf("sandbox %s: %w", sel.name, err)
		}
		*sel.dst = compiled
	}
	return s, nil
}

// Scenarios lists scenarios of one category, or of every category when
// category is empty, optionally filtered by difficulty
func (s *SandboxService) Scenarios(category, difficulty string) (*model.ScenarioList, error) {
	if difficulty != "" && !catalog.ValidDifficulty(difficulty) {
		return nil, Validation("难度级别无效: %s", difficulty)
	}

	list := &model.ScenarioList{Category: allScenariosName, Description: allScenariosDesc}
	var scenarios []catalog.Scenario
	if category == "" {
		for _, c := range s.cat.Sandbox.Categories {
			scenarios = append(scenarios, c.Scenarios...)
		}
	} else {
		c, ok := s.cat.Category(category)
		if !ok {
			return nil, UnknownKey("场景类别不存在: %s", category)
		}
		list.Category = c.Name
		list.Description = c.Description
		scenarios = c.Scenarios
	}

	list.Scenarios = []catalog.Scenario{}
	for _, sc := range scenarios {
		if difficulty == "" || sc.Difficulty == difficulty {
			list.Scenarios = append(list.Scenarios, sc)
		}
	}
	return list, nil
}

// DialogueSuggestions analyzes what the user would say in a scenario and
// returns grouped advice
func (s *SandboxService) DialogueSuggestions(ctx context.Context, scenarioID, userInput string) (res *model.DialogueSuggestions, err error) {
	r := newRun("dialogue-suggestions", s.opts.Debug)
	defer r.guard(&err)

	scenario, ok := s.cat.Scenario(scenarioID)
	if !ok {
		return nil, r.reject(UnknownKey("场景不存在"))
	}
	if verr := checkText(userInput, s.opts.Limits.MaxTextLength, msgTextEmpty, msgTextTooLong); verr != nil {
		return nil, r.reject(verr)
	}

	analysis := s.analyzeInput(userInput, r)

	emotion, style := analysis.DominantEmotion.String(), analysis.DominantStyle.String()
	groups := model.SuggestionGroups{
		ImmediateResponse:  s.immediate.Select(emotion, 0),
		CommunicationStyle: s.style.Select(style, 0),
		ConflictResolution: s.conflictAdvice(scenario),
		LongTermStrategies: append([]string{}, s.cat.Sandbox.LongTermStrategies.Entries...),
	}
	next := suggest.Merge(0,
		s.nextSteps.Select(emotion, 0),
		s.nextSteps.Select(style, 0),
		s.nextSteps.Select(generalNextSteps, 0),
	)
	r.advance(StageSuggested)

	res = &model.DialogueSuggestions{
		Scenario:    scenario,
		Analysis:    analysis,
		Suggestions: groups,
		NextSteps:   next,
	}
	r.advance(StageAssembled)
	return res, nil
}

func (s *SandboxService) analyzeInput(text string, r *run) model.InputAnalysis {
	tokens := s.tokenizer.Tokenize(text)
	r.advance(StageTokenized)

	emotionScores := score.Score(tokens, s.emotions)
	styleScores := score.Score(tokens, s.styles)
	r.advance(StageScored)

	a := model.InputAnalysis{
		Words:           tokens,
		EmotionScores:   emotionScores,
		StyleScores:     styleScores,
		DominantEmotion: s.emotionAxis.Classify(emotionScores),
		DominantStyle:   s.styleAxis.Classify(styleScores),
	}
	r.advance(StageClassified)
	return a
}

// conflictAdvice uses the pool of the first scenario tag that has one.
func (s *SandboxService) conflictAdvice(sc catalog.Scenario) []string {
	for _, tag := range sc.Tags {
		if s.conflict.Has(tag) {
			return s.conflict.Select(tag, 0)
		}
	}
	return []string{}
}

// PracticeSkill returns practice material for one skill
func (s *SandboxService) PracticeSkill(skill string) (*model.SkillPractice, error) {
	sk, ok := s.cat.Skill(skill)
	if !ok {
		return nil, UnknownKey("技巧类型不存在")
	}
	return &model.SkillPractice{
		SkillType:         sk.Key,
		Tips:              append([]string{}, sk.Tips...),
		PracticeExercises: append([]string{}, sk.Exercises...),
		DailyGoal:         s.cat.Sandbox.DailyGoal,
		ProgressTracking:  s.cat.Sandbox.ProgressTracking,
		Success:           true,
	}, nil
}

// PracticeSkills looks up several skills; unknown skills become flagged
// records
func (s *SandboxService) PracticeSkills(ctx context.Context, skills []string) (*model.SkillBatch, error) {
	if len(skills) == 0 {
		return nil, Validation("技巧列表不能为空")
	}
	if limit := s.opts.Limits.MaxBatchSkills; limit > 0 && len(skills) > limit {
		return nil, Validation(msgBatchTooBig, limit)
	}

	results := runBatch(ctx, len(skills), s.opts.Workers, func(ctx context.Context, i int) model.SkillPractice {
		res, err := s.PracticeSkill(skills[i])
		if err != nil {
			return model.SkillPractice{
				SkillType:         skills[i],
				Tips:              []string{},
				PracticeExercises: []string{},
				Success:           false,
				Message:           MessageOf(err),
				ErrorType:         string(KindOf(err)),
			}
		}
		return *res
	})

	success, failed := tally(results, func(r model.SkillPractice) bool { return r.Success })
	log.Printf("batch practice: total=%d success=%d failed=%d", len(results), success, failed)
	return &model.SkillBatch{
		Results:      results,
		TotalCount:   len(results),
		SuccessCount: success,
		FailedCount:  failed,
	}, nil
}

// ConflictGuide returns the escalation guide, the resolution guide, or both
// when kind is empty or "all"
func (s *SandboxService) ConflictGuide(kind string) (*model.ConflictGuide, error) {
	c := s.cat.Sandbox.Conflict
	escalation := &model.EscalationGuide{
		WarningSigns:     c.EscalationPatterns,
		ImmediateActions: c.ImmediateActions,
		PreventionTips:   c.PreventionStrategies,
	}
	resolution := &model.ResolutionGuide{
		EffectivePatterns: c.ResolutionPatterns,
		StepByStepProcess: c.ResolutionSteps,
	}
	if sk, ok := s.cat.Skill(conflictSkill); ok {
		resolution.CommunicationTools = sk.Tips
	} else {
		resolution.CommunicationTools = []string{}
	}

	switch kind {
	case ConflictEscalation:
		return &model.ConflictGuide{ConflictType: kind, Escalation: escalation}, nil
	case ConflictResolution:
		return &model.ConflictGuide{ConflictType: kind, Resolution: resolution}, nil
	case "", ConflictAll:
		return &model.ConflictGuide{
			ConflictType: ConflictAll,
			Escalation:   escalation,
			Resolution:   resolution,
			GeneralTips:  c.GeneralTips,
		}, nil
	default:
		return nil, UnknownKey("冲突类型不存在: %s", kind)
	}
}

// DialogueTemplate picks one template of each kind from context cues in
// the situation and emotion
func (s *SandboxService) DialogueTemplate(situation, emotion string) *model.DialogueTemplate {
	return &model.DialogueTemplate{
		Situation: situation,
		Emotion:   emotion,
		Templates: model.DialogueTemplates{
			Opening:           s.template("opening_statements", situation),
			FeelingExpression: s.template("feeling_expressions", emotion),
			Understanding:     s.template("understanding_questions", situation),
			Resolution:        s.template("resolution_suggestions", situation),
		},
		UsageTips: append([]string{}, s.cat.Sandbox.UsageTips...),
	}
}

// template returns entry i of the named list when cue i occurs in text,
// entry 0 otherwise or when the list is too short.
func (s *SandboxService) template(name, text string) string {
	var entries []string
	for _, t := range s.cat.Sandbox.DialogueTemplates {
		if t.Name == name {
			entries = t.Terms
			break
		}
	}
	if len(entries) == 0 {
		return noTemplate
	}
	for i, cue := range s.cat.Sandbox.TemplateCues {
		for _, term := range cue.Terms {
			if strings.Contains(text, term) {
				if i < len(entries) {
					return entries[i]
				}
				return entries[0]
			}
		}
	}
	return entries[0]
}

// Skills lists the practicable skills
func (s *SandboxService) Skills() []model.SkillSummary {
	out := make([]model.SkillSummary, 0, len(s.cat.Sandbox.Skills))
	for _, sk := range s.cat.Sandbox.Skills {
		out = append(out, model.SkillSummary{Key: sk.Key, TipCount: len(sk.Tips), Exercises: len(sk.Exercises)})
	}
	return out
}

// Categories lists scenario categories
func (s *SandboxService) Categories() []model.CategorySummary {
	out := make([]model.CategorySummary, 0, len(s.cat.Sandbox.Categories))
	for _, c := range s.cat.Sandbox.Categories {
		out = append(out, model.CategorySummary{
			Key:           c.Key,
			Name:          c.Name,
			Description:   c.Description,
			ScenarioCount: len(c.Scenarios),
		})
	}
	return out
}

// Health reports the size of each sandbox component
func (s *SandboxService) Health() model.ComponentHealth {
	c := s.cat.Sandbox.Conflict
	patterns := 0
	for _, p := range [][]string{c.EscalationPatterns, c.ResolutionPatterns, c.PreventionStrategies} {
		if len(p) > 0 {
			patterns++
		}
	}
	return model.ComponentHealth{
		Service:   "communication-sandbox",
		Status:    "healthy",
		Timestamp: s.opts.now(),
		Components: map[string]int{
			"scenario_library":   len(s.cat.Sandbox.Categories),
			"scenarios":          s.cat.ScenarioCount(),
			"conflict_patterns":  patterns,
			"communication_tips": len(s.cat.Sandbox.Skills),
			"dialogue_templates": len(s.cat.Sandbox.DialogueTemplates),
		},
	}
}
