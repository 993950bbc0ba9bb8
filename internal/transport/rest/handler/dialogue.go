package handler

import (
	"bemanai/internal/model"
	"bemanai/internal/service"
	"bemanai/internal/transport/rest/middleware"
	"net/http"
)

// DialogueHandler handles dialogue chat endpoints
type DialogueHandler struct {
	dialogueSvc *service.DialogueService
}

// NewDialogueHandler creates a new dialogue handler
func NewDialogueHandler(dialogueSvc *service.DialogueService) *DialogueHandler {
	return &DialogueHandler{dialogueSvc: dialogueSvc}
}

// Chat handles POST /v1/dialogue/chat
func (h *DialogueHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if userID := middleware.GetUserID(r.Context()); userID != "" {
		req.UserID = userID
	}

	res, err := h.dialogueSvc.Chat(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Info handles GET /v1/dialogue/info
func (h *DialogueHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dialogueSvc.Info())
}
