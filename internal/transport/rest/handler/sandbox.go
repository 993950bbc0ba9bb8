package handler

import (
	"bemanai/internal/model"
	"bemanai/internal/service"
	"net/http"
)

// SandboxHandler handles communication sandbox endpoints
type SandboxHandler struct {
	sandboxSvc *service.SandboxService
}

// NewSandboxHandler creates a new sandbox handler
func NewSandboxHandler(sandboxSvc *service.SandboxService) *SandboxHandler {
	return &SandboxHandler{sandboxSvc: sandboxSvc}
}

// Scenarios handles GET /v1/sandbox/scenarios?category=&difficulty=
func (h *SandboxHandler) Scenarios(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.sandboxSvc.Scenarios(q.Get("category"), q.Get("difficulty"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// DialogueSuggestions handles POST /v1/sandbox/dialogue-suggestions
func (h *SandboxHandler) DialogueSuggestions(w http.ResponseWriter, r *http.Request) {
	var req model.DialogueSuggestionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.sandboxSvc.DialogueSuggestions(r.Context(), req.ScenarioID, req.UserInput)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PracticeSkill handles POST /v1/sandbox/practice-skill
func (h *SandboxHandler) PracticeSkill(w http.ResponseWriter, r *http.Request) {
	var req model.SkillRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.sandboxSvc.PracticeSkill(req.SkillType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PracticeSkills handles POST /v1/sandbox/practice-skills
func (h *SandboxHandler) PracticeSkills(w http.ResponseWriter, r *http.Request) {
	var req model.SkillsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	batch, err := h.sandboxSvc.PracticeSkills(r.Context(), req.SkillTypes)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// ConflictGuide handles POST /v1/sandbox/conflict-guide
func (h *SandboxHandler) ConflictGuide(w http.ResponseWriter, r *http.Request) {
	var req model.ConflictGuideRequest
	if !decodeBody(w, r, &req) {
		return
	}

	guide, err := h.sandboxSvc.ConflictGuide(req.ConflictType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, guide)
}

// DialogueTemplate handles POST /v1/sandbox/dialogue-template
func (h *SandboxHandler) DialogueTemplate(w http.ResponseWriter, r *http.Request) {
	var req model.TemplateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, h.sandboxSvc.DialogueTemplate(req.Situation, req.Emotion))
}

// Skills handles GET /v1/sandbox/skills
func (h *SandboxHandler) Skills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"skills": h.sandboxSvc.Skills()})
}

// Categories handles GET /v1/sandbox/categories
func (h *SandboxHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": h.sandboxSvc.Categories()})
}

// Health handles GET /v1/sandbox/health
func (h *SandboxHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sandboxSvc.Health())
}
