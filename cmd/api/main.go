package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/riya-sharma-12/LangSync/internal/app"
	"github.com/riya-sharma-12/LangSync/internal/sdk/mongodb"
	"github.com/riya-sharma-12/LangSync/internal/services/hash"
	"github.com/riya-sharma-12/LangSync/internal/services/jwt"
	"github.com/riya-sharma-12/LangSync/internal/services/sentry"
	"github.com/riya-sharma-12/LangSync/internal/services/stream"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func run() error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	logger.Info("GOMAXPROCS", "cpu", runtime.GOMAXPROCS(0))

	// 1. Initialize Services
	hashService := hash.NewHashService()

	// A missing signing secret is fatal: tokens signed with an empty secret
	// would be forgeable.
	jwtService, err := jwt.NewTokenService()
	if err != nil {
		return err
	}

	sentryService := sentry.NewSentryService()
	defer sentryService.Close()

	streamService := stream.NewService(logger)

	// 2. Initialize Database
	dbService, err := mongodb.New(context.Background(), hashService)
	if err != nil {
		return err
	}

	// 3. Initialize App
	application := app.NewApp(dbService, hashService, jwtService, streamService, sentryService, logger)

	// 4. Configure Server
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080 // Fallback default
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      application.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// 5. Graceful Shutdown Logic
	done := make(chan bool, 1)
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down gracefully, press Ctrl+C again to force")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server forced to shutdown", "error", err)
		}

		if err := dbService.Close(ctx); err != nil {
			logger.Error("Database disconnect failed", "error", err)
		}

		done <- true
	}()

	// 6. Start Server
	logger.Info("Starting server", "port", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}

	<-done
	logger.Info("Graceful shutdown complete")
	return nil
}
