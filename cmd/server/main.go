// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modesq/dynamic-form-fullstack-app/api"
	"github.com/modesq/dynamic-form-fullstack-app/config"
	"github.com/modesq/dynamic-form-fullstack-app/internal/logger"
	"github.com/modesq/dynamic-form-fullstack-app/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		customLog.Errorf("Server exited: %v", err)
		os.Exit(1)
	}
}

// run owns every resource so deferred cleanup finishes before main exits.
func run() error {
	customLog.Println("Starting dynamic form server...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Initialize Database Connection
	db, err := storage.ConnectDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		customLog.Println("Closing database connection...")
		if err := db.Close(); err != nil {
			customLog.Printf("Error closing database: %v", err)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 3. Seed the sample form
	if cfg.SeedFormFields {
		n, err := storage.SeedFormFields(ctx, db)
		if err != nil {
			return fmt.Errorf("failed to seed form fields: %w", err)
		}
		if n > 0 {
			customLog.Printf("Seeded %d form fields", n)
		}
	}

	// 4. Setup Router (passing dependencies)
	router, err := api.SetupRouter(db, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up router: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 5. Start Server
	errCh := make(chan error, 1)
	go func() {
		customLog.Printf("Server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	customLog.Println("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shut down: %w", err)
	}
	return nil
}
