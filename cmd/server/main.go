package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trustlabel/internal/app"
	"trustlabel/internal/config"
	"trustlabel/internal/handler"
	"trustlabel/internal/logger"
	"trustlabel/internal/metrics"
	"trustlabel/internal/router"
	"trustlabel/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engines, err := app.Build(cfg.Engine, zl)
	if err != nil {
		return err
	}
	m := metrics.New()

	// Initialize services
	analysisSvc := service.NewAnalysisService(
		engines.Parser,
		engines.Validator,
		engines.Rules,
		m,
		zl,
		service.BatchConfig{Concurrency: cfg.Batch.Concurrency, MaxItems: cfg.Batch.MaxItems},
	)

	// Initialize handlers
	analysisH := handler.NewAnalysisHandler(analysisSvc, zl)
	rulesH := handler.NewRulesHandler(analysisSvc, zl)
	healthH := handler.NewHealthHandler(engines.Vocabulary.Version(), engines.Rules.Version())

	r := router.Setup(cfg.Server, zl, m, analysisH, rulesH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
