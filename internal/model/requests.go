package model

// Request bodies accepted by the REST and websocket surfaces.

type AnalyzeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

type BatchAnalyzeRequest struct {
	Texts    []string `json:"texts"`
	Language string   `json:"language,omitempty"`
}

type DecodeRequest struct {
	Text         string         `json:"text"`
	Context      map[string]any `json:"context,omitempty"`
	AnalysisType string         `json:"analysis_type,omitempty"`
}

type BatchDecodeRequest struct {
	Texts   []string       `json:"texts"`
	Context map[string]any `json:"context,omitempty"`
}

type DialogueSuggestionRequest struct {
	ScenarioID string `json:"scenario_id"`
	UserInput  string `json:"user_input"`
}

type SkillRequest struct {
	SkillType string `json:"skill_type"`
}

type SkillsRequest struct {
	SkillTypes []string `json:"skill_types"`
}

type ConflictGuideRequest struct {
	ConflictType string `json:"conflict_type,omitempty"`
}

type TemplateRequest struct {
	Situation string `json:"situation"`
	Emotion   string `json:"emotion"`
}

type ModerateRequest struct {
	Text        string `json:"text"`
	ContentType string `json:"content_type,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

type SaveRecordRequest struct {
	Kind RecordKind `json:"kind"`
	Text string     `json:"text"`
}
