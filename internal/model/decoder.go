package model

import (
	"bemanai/internal/classify"
	"bemanai/internal/score"
	"fmt"
	"time"
)

type AnalysisType string

const (
	AnalysisComprehensive AnalysisType = "comprehensive"
	AnalysisEmotionOnly   AnalysisType = "emotion_only"
	AnalysisRelationOnly  AnalysisType = "relationship_only"
)

// ParseAnalysisType parses an analysis type; empty means comprehensive
func ParseAnalysisType(s string) (AnalysisType, error) {
	switch t := AnalysisType(s); t {
	case "":
		return AnalysisComprehensive, nil
	case AnalysisComprehensive, AnalysisEmotionOnly, AnalysisRelationOnly:
		return t, nil
	default:
		return "", fmt.Errorf("unknown analysis type %q", s)
	}
}

// WantsEmotion reports whether emotion_state is part of the result
func (t AnalysisType) WantsEmotion() bool { return t != AnalysisRelationOnly }

// WantsRelationship reports whether relationship_health is part of the result
func (t AnalysisType) WantsRelationship() bool { return t != AnalysisEmotionOnly }

type EmotionState struct {
	PrimaryEmotion  classify.Primary `json:"primary_emotion" msgpack:"primary_emotion"`
	EmotionScores   score.Vector     `json:"emotion_scores" msgpack:"emotion_scores"`
	Intensity       float64          `json:"intensity" msgpack:"intensity"`
	EmotionKeywords []string         `json:"emotion_keywords" msgpack:"emotion_keywords"`
}

type RelationshipHealth struct {
	OverallScore    float64                    `json:"overall_score" msgpack:"overall_score"`
	HealthLevel     classify.HealthLevel       `json:"health_level" msgpack:"health_level"`
	DimensionScores []classify.DimensionResult `json:"dimension_scores" msgpack:"dimension_scores"`
	Strengths       []string                   `json:"strengths" msgpack:"strengths"`
	Weaknesses      []string                   `json:"weaknesses" msgpack:"weaknesses"`
}

// DecodeResult is the relationship decoder's record. EmotionState or
// RelationshipHealth is nil when the analysis type leaves it out.
type DecodeResult struct {
	ID                 string              `json:"id" msgpack:"id"`
	Text               string              `json:"text" msgpack:"text"`
	AnalysisType       AnalysisType        `json:"analysis_type" msgpack:"analysis_type"`
	EmotionState       *EmotionState       `json:"emotion_state,omitempty" msgpack:"emotion_state,omitempty"`
	RelationshipHealth *RelationshipHealth `json:"relationship_health,omitempty" msgpack:"relationship_health,omitempty"`
	Suggestions        []string            `json:"suggestions" msgpack:"suggestions"`
	Confidence         float64             `json:"confidence" msgpack:"confidence"`
	Context            map[string]any      `json:"context,omitempty" msgpack:"context,omitempty"`
	Success            bool                `json:"success" msgpack:"success"`
	Message            string              `json:"message,omitempty" msgpack:"message,omitempty"`
	ErrorType          string              `json:"error_type,omitempty" msgpack:"error_type,omitempty"`
	AnalysisTime       time.Time           `json:"analysis_time" msgpack:"analysis_time"`
}

type DecodeBatch struct {
	Results      []DecodeResult `json:"results"`
	TotalCount   int            `json:"total_count"`
	SuccessCount int            `json:"success_count"`
	FailedCount  int            `json:"failed_count"`
}
