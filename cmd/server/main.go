// Command main is the entry point for the Threadnest backend server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"threadnest/internal/config"
	"threadnest/internal/observability"
	"threadnest/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Distributed tracing (no-op unless TRACING_ENABLED is set)
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "threadnest-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        os.Getenv("TRACING_ENABLED") == "true",
		Exporter:       os.Getenv("TRACING_EXPORTER"),
		OTLPEndpoint:   os.Getenv("OTLP_ENDPOINT"),
		SamplerRatio:   1.0,
	})
	if err != nil {
		log.Printf("Tracing disabled: %v", err)
	}

	// Create server with dependency injection
	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if shutdownTracing != nil {
			if err := shutdownTracing(ctx); err != nil {
				log.Printf("Tracing shutdown error: %v", err)
			}
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
}
