package handler

import (
	"bemanai/internal/model"
	"bemanai/internal/service"
	"log"
	"net/http"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authSvc *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Token handles POST /v1/auth/token
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req model.TokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.authSvc.Login(req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	log.Printf("token issued: user=%s", req.Username)
	writeJSON(w, http.StatusOK, resp)
}
