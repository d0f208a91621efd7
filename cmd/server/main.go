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

	"github.com/katilimfinans/payment-plan-engine/internal/config"
	"github.com/katilimfinans/payment-plan-engine/internal/logger"
	"github.com/katilimfinans/payment-plan-engine/internal/server"
	"github.com/katilimfinans/payment-plan-engine/internal/tools"
	"github.com/katilimfinans/payment-plan-engine/internal/tracing"
	"github.com/katilimfinans/payment-plan-engine/internal/worker"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := tracing.InitTracing(ctx, cfg.OTELServiceName, cfg.OTELEndpoint, log)
	if err != nil {
		return fmt.Errorf("failed to init tracing: %w", err)
	}

	runner := worker.NewRunner(cfg.MaxConcurrentCalculations, log)
	registry := tools.Registry(cfg, provider.Tracer, runner, log)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.New(registry, cfg.CalculationTimeout, log).Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.CalculationTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("payment-plan-engine listening",
			zap.String("addr", srv.Addr),
			zap.Int("max_concurrent_calculations", cfg.MaxConcurrentCalculations),
			zap.Duration("calculation_timeout", cfg.CalculationTimeout),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := provider.Shutdown(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", zap.Error(err))
	}

	log.Info("stopped")
	return nil
}
