package rest

import (
	_ "bemanai/docs"
	"bemanai/internal/cache"
	"bemanai/internal/service"
	"bemanai/internal/transport/rest/handler"
	"bemanai/internal/transport/rest/middleware"
	"bemanai/internal/transport/ws"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	EmotionService    *service.EmotionService
	DecoderService    *service.DecoderService
	SandboxService    *service.SandboxService
	DialogueService   *service.DialogueService
	ModerationService *service.ModerationService
	AuthService       *service.AuthService
	ArchiveService    *service.ArchiveService

	Trends      cache.TrendCache  // nil without Redis
	RateLimiter cache.RateLimiter // nil disables rate limiting
	ChatHistory cache.ChatCache   // nil keeps chat history in memory
	WSHub       *ws.Hub

	APIKeyHeader string
	APIKeys      []string
	CORS         CORSConfig
	Version      string
}

// CORSConfig lists the allowed CORS values
type CORSConfig struct {
	Origins []string
	Methods []string
	Headers []string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()
	started := time.Now()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	emotionHandler := handler.NewEmotionHandler(c.EmotionService, c.Trends)
	decoderHandler := handler.NewDecoderHandler(c.DecoderService)
	sandboxHandler := handler.NewSandboxHandler(c.SandboxService)
	dialogueHandler := handler.NewDialogueHandler(c.DialogueService)
	moderationHandler := handler.NewModerationHandler(c.ModerationService)
	recordHandler := handler.NewRecordHandler(c.ArchiveService)
	wsHandler := ws.NewHandler(c.WSHub, c.DialogueService, c.ChatHistory)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService, c.APIKeyHeader, c.APIKeys)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))
	r.Use(middleware.RequestID)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, c, started)
	}).Methods("GET")

	// OpenAPI document
	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, `{"error":"api document not registered"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/token", authHandler.Token).Methods("POST", "OPTIONS")

	api := v1.NewRoute().Subrouter()
	api.Use(authMW.Require)
	if c.RateLimiter != nil {
		api.Use(middleware.RateLimit(c.RateLimiter))
	}

	api.HandleFunc("/emotion/analyze", emotionHandler.Analyze).Methods("POST", "OPTIONS")
	api.HandleFunc("/emotion/batch-analyze", emotionHandler.BatchAnalyze).Methods("POST", "OPTIONS")
	api.HandleFunc("/emotion/info", emotionHandler.Info).Methods("GET", "OPTIONS")
	api.HandleFunc("/emotion/trends", emotionHandler.Trends).Methods("GET", "OPTIONS")

	api.HandleFunc("/decoder/decode", decoderHandler.Decode).Methods("POST", "OPTIONS")
	api.HandleFunc("/decoder/batch-decode", decoderHandler.BatchDecode).Methods("POST", "OPTIONS")
	api.HandleFunc("/decoder/info", decoderHandler.Info).Methods("GET", "OPTIONS")

	api.HandleFunc("/sandbox/scenarios", sandboxHandler.Scenarios).Methods("GET", "OPTIONS")
	api.HandleFunc("/sandbox/dialogue-suggestions", sandboxHandler.DialogueSuggestions).Methods("POST", "OPTIONS")
	api.HandleFunc("/sandbox/practice-skill", sandboxHandler.PracticeSkill).Methods("POST", "OPTIONS")
	api.HandleFunc("/sandbox/practice-skills", sandboxHandler.PracticeSkills).Methods("POST", "OPTIONS")
	api.HandleFunc("/sandbox/conflict-guide", sandboxHandler.ConflictGuide).Methods("POST", "OPTIONS")
	api.HandleFunc("/sandbox/dialogue-template", sandboxHandler.DialogueTemplate).Methods("POST", "OPTIONS")
	api.HandleFunc("/sandbox/skills", sandboxHandler.Skills).Methods("GET", "OPTIONS")
	api.HandleFunc("/sandbox/categories", sandboxHandler.Categories).Methods("GET", "OPTIONS")
	api.HandleFunc("/sandbox/health", sandboxHandler.Health).Methods("GET", "OPTIONS")

	api.HandleFunc("/dialogue/chat", dialogueHandler.Chat).Methods("POST", "OPTIONS")
	api.HandleFunc("/dialogue/info", dialogueHandler.Info).Methods("GET", "OPTIONS")

	api.HandleFunc("/moderation/moderate", moderationHandler.Moderate).Methods("POST", "OPTIONS")
	api.HandleFunc("/moderation/info", moderationHandler.Info).Methods("GET", "OPTIONS")

	// WebSocket routes (token in query param)
	api.HandleFunc("/ws/dialogue", wsHandler.DialogueWS).Methods("GET")

	// Record routes (require user JWT)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)
	if c.RateLimiter != nil {
		userRoutes.Use(middleware.RateLimit(c.RateLimiter))
	}
	userRoutes.HandleFunc("/records", recordHandler.Save).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/records", recordHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/records/{id}", recordHandler.Get).Methods("GET", "OPTIONS")

	return r
}

func writeHealth(w http.ResponseWriter, c *Container, started time.Time) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": c.Version,
		"uptime":  time.Since(started).Round(time.Second).String(),
		"components": map[string]bool{
			"cache":   c.Trends != nil,
			"archive": c.ArchiveService != nil && c.ArchiveService.Enabled(),
			"auth":    c.AuthService != nil && c.AuthService.Enabled(),
		},
	}
	handler.WriteJSON(w, http.StatusOK, status)
}

func corsMiddleware(cfg CORSConfig) mux.MiddlewareFunc {
	origins := joinOr(cfg.Origins, "*")
	methods := joinOr(cfg.Methods, "GET, POST, OPTIONS")
	headers := joinOr(cfg.Headers, "Content-Type, Authorization")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origins)
			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", headers)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
