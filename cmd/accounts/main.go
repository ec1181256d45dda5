package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/msmraqeeb/Euro-IT-Accounts/internal/assist"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/backend"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/config"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/events"
	apphttp "github.com/msmraqeeb/Euro-IT-Accounts/internal/http"
	"github.com/msmraqeeb/Euro-IT-Accounts/internal/ledger"
	applog "github.com/msmraqeeb/Euro-IT-Accounts/internal/log"
)

func main() {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := applog.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := backend.NewFactory(logger).Create(ctx, cfg.BackendConfig())
	if err != nil {
		logger.Error("failed to initialize backend", "error", err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	// Mutation events are optional: a broker problem downgrades to a warning
	// and the application runs without publishing.
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("failed to initialize AMQP publisher, continuing without events", "error", err)
			publisher = nil
		} else {
			defer publisher.Close()
			logger.Info("initialized AMQP publisher",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	sessionStore := ledger.NewStore()
	coord := ledger.NewCoordinator(sessionStore, result.Backend, publisher, logger)

	// The session is unusable without its initial load; surface the failure
	// and stop. Restarting the process is the retry.
	loadCtx, loadCancel := context.WithTimeout(ctx, 60*time.Second)
	if err := coord.Refresh(loadCtx); err != nil {
		loadCancel()
		logger.Error("cannot load data", "backend", result.Type, "error", err)
		os.Exit(1)
	}
	loadCancel()
	logger.Info("ledger loaded", "backend", result.Type)

	var narrator *assist.Narrator
	if n, err := assist.NewNarrator(ctx, cfg.GeminiModel); err != nil {
		logger.Warn("narrative summary unavailable", "error", err)
	} else {
		narrator = n
	}

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.NewAPI(coord, narrator))

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("starting accounts server", "port", cfg.Port, "backend", result.Type)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped gracefully")
}
