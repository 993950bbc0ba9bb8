package model

import "time"

type RecordKind string

const (
	RecordEmotion    RecordKind = "emotion"
	RecordDecode     RecordKind = "decode"
	RecordModeration RecordKind = "moderation"
)

// AnalysisRecord is an archived copy of one analysis result
type AnalysisRecord struct {
	ID          string     `json:"id" bson:"_id"`
	UserID      string     `json:"userId" bson:"userId"`
	Kind        RecordKind `json:"kind" bson:"kind"`
	Text        string     `json:"text" bson:"text"`
	Label       string     `json:"label" bson:"label"` // emotion category, health level or risk level
	Score       float64    `json:"score" bson:"score"`
	Keywords    []string   `json:"keywords" bson:"keywords"`
	Suggestions []string   `json:"suggestions" bson:"suggestions"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
}
