package model

// ServiceInfo describes one analysis surface for its /info endpoint
type ServiceInfo struct {
	Service            string         `json:"service"`
	Version            string         `json:"version"`
	Description        string         `json:"description"`
	SupportedLanguages []string       `json:"supported_languages"`
	MaxTextLength      int            `json:"max_text_length"`
	MaxBatchSize       int            `json:"max_batch_size,omitempty"`
	Features           []string       `json:"features"`
	Details            map[string]any `json:"details,omitempty"`
}
