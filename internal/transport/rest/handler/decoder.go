package handler

import (
	"bemanai/internal/model"
	"bemanai/internal/service"
	"log"
	"net/http"
)

// DecoderHandler handles relationship decoder endpoints
type DecoderHandler struct {
	decoderSvc *service.DecoderService
}

// NewDecoderHandler creates a new decoder handler
func NewDecoderHandler(decoderSvc *service.DecoderService) *DecoderHandler {
	return &DecoderHandler{decoderSvc: decoderSvc}
}

// Decode handles POST /v1/decoder/decode
func (h *DecoderHandler) Decode(w http.ResponseWriter, r *http.Request) {
	var req model.DecodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.decoderSvc.Decode(r.Context(), req.Text, req.Context, req.AnalysisType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if res.RelationshipHealth != nil {
		log.Printf("decode: health=%s overall=%.1f", res.RelationshipHealth.HealthLevel, res.RelationshipHealth.OverallScore)
	}
	writeJSON(w, http.StatusOK, res)
}

// BatchDecode handles POST /v1/decoder/batch-decode
func (h *DecoderHandler) BatchDecode(w http.ResponseWriter, r *http.Request) {
	var req model.BatchDecodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	batch, err := h.decoderSvc.DecodeBatch(r.Context(), req.Texts, req.Context)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// Info handles GET /v1/decoder/info
func (h *DecoderHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.decoderSvc.Info())
}
