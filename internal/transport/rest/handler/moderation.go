package handler

import (
	"bemanai/internal/model"
	"bemanai/internal/service"
	"log"
	"net/http"
)

// ModerationHandler handles content moderation endpoints
type ModerationHandler struct {
	moderationSvc *service.ModerationService
}

// NewModerationHandler creates a new moderation handler
func NewModerationHandler(moderationSvc *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationSvc: moderationSvc}
}

// Moderate handles POST /v1/moderation/moderate
func (h *ModerationHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	var req model.ModerateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.moderationSvc.Moderate(r.Context(), req.Text, req.ContentType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if !res.IsAppropriate {
		log.Printf("moderation: risk=%s flagged=%d", res.RiskLevel, len(res.FlaggedKeywords))
	}
	writeJSON(w, http.StatusOK, res)
}

// Info handles GET /v1/moderation/info
func (h *ModerationHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.moderationSvc.Info())
}
