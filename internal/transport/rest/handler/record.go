package handler

import (
	"bemanai/internal/model"
	"bemanai/internal/repository"
	"bemanai/internal/service"
	"bemanai/internal/transport/rest/middleware"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// RecordHandler handles analysis archive endpoints
type RecordHandler struct {
	archiveSvc *service.ArchiveService
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(archiveSvc *service.ArchiveService) *RecordHandler {
	return &RecordHandler{archiveSvc: archiveSvc}
}

// Save handles POST /v1/records
func (h *RecordHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, errorTypeAuth, "unauthorized")
		return
	}

	var req model.SaveRecordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	rec, err := h.archiveSvc.Save(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// List handles GET /v1/records?limit=20
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, errorTypeAuth, "unauthorized")
		return
	}

	limit := repository.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, errorTypeRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := h.archiveSvc.List(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}

// Get handles GET /v1/records/{id}
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, errorTypeAuth, "unauthorized")
		return
	}

	rec, err := h.archiveSvc.Get(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
