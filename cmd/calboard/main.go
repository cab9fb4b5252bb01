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

	"calboard/internal/config"
	"calboard/internal/database"
	"calboard/internal/handlers"
	"calboard/internal/middleware"
	"calboard/pkg/logger"
	"calboard/pkg/utils"
)

const defaultMaxBody = 10 << 20

func main() {
	utils.LoadEnv()

	if os.Getenv("STARTUP_LOG_ACTIVE") != "false" {
		printSignature()
	}

	cfg := config.Load()
	logger.SetLevel(cfg.Logging.Level)

	store, err := database.Open(cfg.Database)
	if err != nil {
		logger.LogFatal("%v", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go database.NewCleaner(store, cfg.Database).Run(ctx)

	mux := http.NewServeMux()
	handlers.New(store).Register(mux)
	handlers.MountStatic(mux, cfg.Static.Dir)

	rl := middleware.NewRateLimiter(cfg.Security.RateLimit)
	go rl.RunCleanup(ctx)

	maxBody := utils.SizeToBytes(cfg.Server.MaxBodySize, defaultMaxBody)
	finalHandler := rl.Middleware(
		middleware.CorsMiddleware(cfg.Security.CorsOrigins)(
			middleware.BodyLimitMiddleware(maxBody)(
				middleware.LoggerMiddleware(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      finalHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.LogInfo("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.LogError("Server shutdown error: %v", err)
		}
	}()

	logger.LogServerStart(cfg.Server.Port, cfg.GetBaseUrl())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.LogFatal("Server failed: %v", err)
	}
	logger.LogSuccess("Server stopped")
}
