package model

import "bemanai/internal/classify"

// ChatTurn is one earlier message of a conversation
type ChatTurn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

type ChatRequest struct {
	Message      string     `json:"message"`
	Context      []ChatTurn `json:"context"`
	UserID       string     `json:"user_id,omitempty"`
	DialogueType string     `json:"dialogue_type"`
}

type ChatResponse struct {
	Message           string                `json:"message"`
	Response          string                `json:"response"`
	ResponseType      classify.ResponseType `json:"response_type"`
	Confidence        float64               `json:"confidence"`
	FollowUpQuestions []string              `json:"follow_up_questions"`
	EmotionalTone     classify.Tone         `json:"emotional_tone"`
}
