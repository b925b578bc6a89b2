// Package main is the entry point for Battle Arena.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"

	"github.com/samdwyer/battlearena/internal/config"
	"github.com/samdwyer/battlearena/internal/game"
	"github.com/samdwyer/battlearena/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.TuningPath != "" {
		log.Printf("Loaded tuning from %s", cfg.TuningPath)
	}

	ctx := context.Background()

	if setupOTelEnv() {
		logger := stdr.New(log.New(os.Stderr, "otel: ", log.LstdFlags))
		shutdown, err := telemetry.Setup(ctx, logger)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		log.Fatalf("Game error: %v", err)
	}
}

// setupOTelEnv fills in the OTLP exporter variables from our Honeycomb
// settings. It reports whether there is anywhere to send traces.
func setupOTelEnv() bool {
	apiKey := os.Getenv("HONEYCOMB_BATTLEARENA_API_KEY")
	if apiKey == "" {
		return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
	}

	dataset := os.Getenv("HONEYCOMB_BATTLEARENA_DATASET")
	if dataset == "" {
		dataset = "battlearena"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	return true
}
