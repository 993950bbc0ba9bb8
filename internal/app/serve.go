package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
)

const shutdownTimeout = 30 * time.Second

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
func (a *App) Serve(ctx context.Context, version string) error {
	srv := &http.Server{
		Addr:              ":" + a.Config.Port,
		Handler:           a.Router(version),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on :%s", a.Config.Port)
		log.Printf("Tokenizer: %s, archive: %v, cache: %v, auth: %v",
			a.Config.Tokenizer, a.Archive.Enabled(), a.Trends != nil, a.Auth.Enabled())
		log.Println("Endpoints:")
		log.Println("  GET  /health")
		log.Println("  POST /v1/auth/token")
		log.Println("  POST /v1/emotion/analyze, /v1/emotion/batch-analyze")
		log.Println("  POST /v1/decoder/decode, /v1/decoder/batch-decode")
		log.Println("  GET  /v1/sandbox/scenarios")
		log.Println("  POST /v1/sandbox/dialogue-suggestions, /v1/sandbox/practice-skill")
		log.Println("  POST /v1/dialogue/chat")
		log.Println("  POST /v1/moderation/moderate")
		log.Println("  GET/POST /v1/records")
		log.Println("  WS   /v1/ws/dialogue")

		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server exited")
	return nil
}
