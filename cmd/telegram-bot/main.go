package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"platepal/internal/app"
	"platepal/internal/config"
	"platepal/internal/logger"
	"platepal/internal/telegram"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Stderr))
}

// run starts the bot server and blocks until a shutdown signal. Failures
// before the logger exists go to stderr.
func run(stderr io.Writer) int {
	// 1. Load Configuration
	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if err := logger.Init(cfg.LogEnv); err != nil {
		fmt.Fprintf(stderr, "Failed to init logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx := context.Background()

	// 2. Wire the API client and suggestion backend
	application, closeBackend, err := app.Wire(ctx, cfg)
	if err != nil {
		logger.Error("failed to wire application", zap.Error(err))
		return 1
	}
	defer closeBackend()

	// 3. Initialize Telegram Bot
	bot, err := telegram.NewBot(cfg, application)
	if err != nil {
		logger.Error("failed to initialize Telegram Bot", zap.Error(err))
		return 1
	}

	// 4. Start Server with Graceful Shutdown
	mux := http.NewServeMux()
	bot.RegisterHandlers(mux)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		logger.Info("telegram bot server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return 1
	}

	logger.Info("server exiting")
	return 0
}
