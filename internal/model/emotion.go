package model

import (
	"bemanai/internal/classify"
	"bemanai/internal/score"
	"time"
)

// EmotionResult is the record produced for one analyzed text. Failed batch
// items keep Category unknown and carry ErrorType and Message.
type EmotionResult struct {
	ID          string           `json:"id" msgpack:"id"`
	Text        string           `json:"text" msgpack:"text"`
	Category    classify.Emotion `json:"emotion_category" msgpack:"emotion_category"`
	Intensity   float64          `json:"intensity" msgpack:"intensity"`
	Scores      score.Vector     `json:"emotion_scores" msgpack:"emotion_scores"`
	Keywords    []string         `json:"keywords" msgpack:"keywords"`
	Suggestions []string         `json:"suggestions" msgpack:"suggestions"`
	Success     bool             `json:"success" msgpack:"success"`
	Message     string           `json:"message,omitempty" msgpack:"message,omitempty"`
	ErrorType   string           `json:"error_type,omitempty" msgpack:"error_type,omitempty"`
	GeneratedAt time.Time        `json:"analysis_time" msgpack:"analysis_time"`
}

type EmotionBatch struct {
	Results      []EmotionResult `json:"results"`
	TotalCount   int             `json:"total_count"`
	SuccessCount int             `json:"success_count"`
	FailedCount  int             `json:"failed_count"`
}
