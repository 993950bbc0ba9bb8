package handler

import (
	"bemanai/internal/cache"
	"bemanai/internal/model"
	"bemanai/internal/service"
	"log"
	"net/http"
	"strconv"
)

const defaultTrendLimit = 10

// EmotionHandler handles emotion analysis endpoints
type EmotionHandler struct {
	emotionSvc *service.EmotionService
	trends     cache.TrendCache
}

// NewEmotionHandler creates a new emotion handler. trends may be nil.
func NewEmotionHandler(emotionSvc *service.EmotionService, trends cache.TrendCache) *EmotionHandler {
	return &EmotionHandler{emotionSvc: emotionSvc, trends: trends}
}

// Analyze handles POST /v1/emotion/analyze
func (h *EmotionHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.emotionSvc.Analyze(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	log.Printf("analyze: category=%s intensity=%.2f", res.Category, res.Intensity)
	writeJSON(w, http.StatusOK, res)
}

// BatchAnalyze handles POST /v1/emotion/batch-analyze
func (h *EmotionHandler) BatchAnalyze(w http.ResponseWriter, r *http.Request) {
	var req model.BatchAnalyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	batch, err := h.emotionSvc.AnalyzeBatch(r.Context(), req.Texts)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// Info handles GET /v1/emotion/info
func (h *EmotionHandler) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.emotionSvc.Info())
}

// Trends handles GET /v1/emotion/trends?category=positive&limit=10
func (h *EmotionHandler) Trends(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = "positive"
	}
	limit := defaultTrendLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, errorTypeRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries := []cache.KeywordCount{}
	if h.trends != nil {
		top, err := h.trends.Top(r.Context(), category, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, errorTypeUnavailable, "failed to read keyword trends")
			log.Printf("keyword trends failed: %v", err)
			return
		}
		entries = append(entries, top...)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"keywords": entries,
	})
}
