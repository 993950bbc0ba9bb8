package model

import (
	"bemanai/internal/classify"
	"time"
)

type ModerationResult struct {
	Text            string             `json:"text"`
	ContentType     string             `json:"content_type"`
	IsAppropriate   bool               `json:"is_appropriate"`
	RiskLevel       classify.RiskLevel `json:"risk_level"`
	RiskScore       float64            `json:"risk_score"`
	FlaggedKeywords []string           `json:"flagged_keywords"`
	Suggestions     []string           `json:"suggestions"`
	ModerationTime  time.Time          `json:"moderation_time"`
}
