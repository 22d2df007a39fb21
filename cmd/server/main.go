package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apper-canvas/nimblerailbook/internal/booking"
	"github.com/apper-canvas/nimblerailbook/internal/catalog"
	"github.com/apper-canvas/nimblerailbook/internal/config"
	"github.com/apper-canvas/nimblerailbook/internal/handlers"
	"github.com/apper-canvas/nimblerailbook/internal/router"
	"github.com/apper-canvas/nimblerailbook/internal/station"
	"github.com/apper-canvas/nimblerailbook/internal/store"
	"github.com/apper-canvas/nimblerailbook/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	recordStore, cleanup, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open record store: %v", err)
	}
	defer cleanup()

	// Initialize services
	stations := station.NewDirectory(recordStore)
	trainCatalog := catalog.NewCatalog(recordStore, nil)
	invoker := booking.NewHTTPFunctionInvoker(cfg.Functions.BaseURL)
	ledger := booking.NewLedger(recordStore, invoker, cfg.Functions.TicketPDF, nil, nil)

	hub := websocket.NewHub()
	go hub.Run()

	// Initialize handlers and router
	h := handlers.NewHandler(stations, trainCatalog, ledger, hub)
	r := router.SetupRouter(h)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("API Server starting on port %d (store driver: %s)", cfg.Server.Port, cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// openStore dials the configured record store backend
func openStore(cfg *config.AppConfig) (store.RecordStore, func(), error) {
	switch cfg.Store.Driver {
	case "postgres":
		pool, err := pgxpool.New(context.Background(), cfg.Store.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(context.Background()); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to reach database: %w", err)
		}
		return store.NewPostgresStore(pool), pool.Close, nil
	default:
		return store.NewMemoryStore(), func() {}, nil
	}
}
