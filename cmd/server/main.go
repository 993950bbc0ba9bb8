package main

import (
	"bemanai/internal/app"
	"bemanai/internal/config"
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

var version = "dev"

// @title bemanai Relationship Analysis API
// @version 1.0
// @description Emotion analysis, relationship decoding, communication practice, dialogue and moderation
// @host localhost:8001
// @BasePath /v1
func main() {
	log.Println("started")

	cfg, err := config.Load(os.Getenv("BEMAN_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to start:", err)
	}
	defer a.Close(context.Background())

	if err := a.Serve(ctx, version); err != nil {
		log.Fatal("ListenAndServe:", err)
	}
}
