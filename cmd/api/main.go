// @title         Resume Portfolio Analyzer API
// @version       1.0
// @description   Upload a resume PDF and receive a Gemini-generated critique, gamified portfolio signals or a skill-gap report.
// @BasePath      /
// @schemes       http
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "resumelens/portfolio-analyzer/docs"
	"resumelens/portfolio-analyzer/internal/config"
	"resumelens/portfolio-analyzer/internal/handlers"
	"resumelens/portfolio-analyzer/internal/logger"
	"resumelens/portfolio-analyzer/internal/metrics"
	"resumelens/portfolio-analyzer/internal/repositories"
	"resumelens/portfolio-analyzer/internal/services"
)

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	zl.Info("config loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("model", cfg.Gemini.Model),
		zap.Int64("max_file_size", cfg.Upload.MaxFileSize),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := metrics.NewRegistry()

	// A missing key is not fatal: the service starts and reports it via
	// /health, and every analysis fails with a configuration error.
	var generator services.GeminiService
	if cfg.GeminiConfigured() {
		generator, err = services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, zl)
		if err != nil {
			zl.Fatal("failed to initialize gemini client", zap.Error(err))
		}
		zl.Info("gemini client initialized")
	} else {
		zl.Warn("GOOGLE_API_KEY is not set; analysis requests will fail until it is configured")
	}

	audit := services.NewNoopAuditRecorder()
	if cfg.Audit.Enabled {
		db, err := config.InitDatabase(cfg, zl)
		if err != nil {
			zl.Fatal("failed to initialize audit database", zap.Error(err))
		}
		audit = services.NewAuditWorker(repositories.NewAuditRepository(db), registry, zl, cfg.Audit.Workers)
	}
	audit.Start(ctx)

	analyzer := services.NewAnalyzerService(
		services.NewUploadGate(cfg.Upload.MaxFileSize),
		services.NewPDFParserService(),
		generator,
		audit,
		registry,
		zl,
		services.AnalyzerOptions{
			Model:          cfg.Gemini.Model,
			GapMaxTokens:   cfg.Gemini.MaxTokens,
			GapTemperature: cfg.Gemini.Temperature,
			ThinkingBudget: cfg.Gemini.ThinkingBudget,
		},
	)

	app := handlers.NewApp(handlers.AppOptions{
		Analyzer:        analyzer,
		Metrics:         registry,
		Logger:          zl,
		MaxFileSize:     cfg.Upload.MaxFileSize,
		DevMode:         cfg.IsDevelopment(),
		AllowOrigins:    cfg.Server.AllowOrigins,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window,
		AccessLog:       os.Stdout,
	})

	go func() {
		<-ctx.Done()
		zl.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zl.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("server starting",
		zap.String("addr", addr),
		zap.Bool("gemini_configured", cfg.GeminiConfigured()),
		zap.String("docs", fmt.Sprintf("http://localhost%s/swagger/index.html", addr)),
	)

	if err := app.Listen(addr); err != nil {
		zl.Error("failed to start server", zap.Error(err))
	}

	audit.Stop()
	zl.Info("server stopped")
}
