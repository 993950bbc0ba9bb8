package model

import (
	"bemanai/internal/catalog"
	"bemanai/internal/classify"
	"bemanai/internal/score"
	"time"
)

type ScenarioList struct {
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Scenarios   []catalog.Scenario `json:"scenarios"`
}

// InputAnalysis is the sandbox's reading of one user utterance
type InputAnalysis struct {
	Words           []string         `json:"words"`
	EmotionScores   score.Vector     `json:"emotion_analysis"`
	StyleScores     score.Vector     `json:"style_analysis"`
	DominantEmotion classify.Emotion `json:"dominant_emotion"`
	DominantStyle   classify.Style   `json:"dominant_style"`
}

type SuggestionGroups struct {
	ImmediateResponse  []string `json:"immediate_response"`
	CommunicationStyle []string `json:"communication_style"`
	ConflictResolution []string `json:"conflict_resolution"`
	LongTermStrategies []string `json:"long_term_strategies"`
}

type DialogueSuggestions struct {
	Scenario    catalog.Scenario `json:"scenario"`
	Analysis    InputAnalysis    `json:"user_input_analysis"`
	Suggestions SuggestionGroups `json:"suggestions"`
	NextSteps   []string         `json:"next_steps"`
}

type SkillPractice struct {
	SkillType         string   `json:"skill_type"`
	Tips              []string `json:"tips"`
	PracticeExercises []string `json:"practice_exercises"`
	DailyGoal         string   `json:"daily_goal"`
	ProgressTracking  string   `json:"progress_tracking"`
	Success           bool     `json:"success"`
	Message           string   `json:"message,omitempty"`
	ErrorType         string   `json:"error_type,omitempty"`
}

type SkillBatch struct {
	Results      []SkillPractice `json:"results"`
	TotalCount   int             `json:"total_count"`
	SuccessCount int             `json:"success_count"`
	FailedCount  int             `json:"failed_count"`
}

type EscalationGuide struct {
	WarningSigns     []string `json:"warning_signs"`
	ImmediateActions []string `json:"immediate_actions"`
	PreventionTips   []string `json:"prevention_tips"`
}

type ResolutionGuide struct {
	EffectivePatterns  []string `json:"effective_patterns"`
	StepByStepProcess  []string `json:"step_by_step_process"`
	CommunicationTools []string `json:"communication_tools"`
}

// ConflictGuide holds the escalation part, the resolution part, or both
// with general tips
type ConflictGuide struct {
	ConflictType string           `json:"conflict_type"`
	Escalation   *EscalationGuide `json:"escalation_guide,omitempty"`
	Resolution   *ResolutionGuide `json:"resolution_guide,omitempty"`
	GeneralTips  []string         `json:"general_tips,omitempty"`
}

type DialogueTemplates struct {
	Opening           string `json:"opening"`
	FeelingExpression string `json:"feeling_expression"`
	Understanding     string `json:"understanding"`
	Resolution        string `json:"resolution"`
}

type DialogueTemplate struct {
	Situation string            `json:"situation"`
	Emotion   string            `json:"emotion"`
	Templates DialogueTemplates `json:"templates"`
	UsageTips []string          `json:"usage_tips"`
}

type SkillSummary struct {
	Key       string `json:"key"`
	TipCount  int    `json:"tip_count"`
	Exercises int    `json:"exercise_count"`
}

type CategorySummary struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ScenarioCount int    `json:"scenario_count"`
}

type ComponentHealth struct {
	Service    string         `json:"service"`
	Status     string         `json:"status"`
	Timestamp  time.Time      `json:"timestamp"`
	Components map[string]int `json:"components"`
}
