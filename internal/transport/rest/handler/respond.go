package handler

import (
	"bemanai/internal/cache"
	"bemanai/internal/service"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// maxBodyBytes bounds request bodies; text limits are enforced by the services.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type,omitempty"`
}

// Error types outside the pipeline kinds
const (
	errorTypeRequest     = "invalid_request"
	errorTypeAuth        = "authentication_error"
	errorTypeUnavailable = "service_unavailable"
	errorTypeRateLimited = "rate_limited"
	errorTypeNotFound    = "not_found"
)

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, errorType, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, ErrorType: errorType})
}

// writeServiceError maps service errors to status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, errorTypeAuth, err.Error())
		return
	case errors.Is(err, service.ErrAuthDisabled), errors.Is(err, service.ErrArchiveDisabled):
		writeError(w, http.StatusServiceUnavailable, errorTypeUnavailable, err.Error())
		return
	case errors.Is(err, service.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, errorTypeNotFound, err.Error())
		return
	case errors.Is(err, cache.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, errorTypeRateLimited, err.Error())
		return
	}

	kind := service.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case service.KindValidation:
		status = http.StatusBadRequest
	case service.KindUnknownKey:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Printf("request failed: %v", err)
	}
	writeError(w, status, string(kind), service.MessageOf(err))
}

// decodeBody decodes a JSON body and writes a 400 when it cannot
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, errorTypeRequest, "invalid request body")
		return false
	}
	return true
}

// WriteJSON writes data as a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, data)
}
