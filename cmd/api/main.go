package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/app"
	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/handlers"
	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("config loaded", zap.String("env", cfg.Server.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := config.InitDatabase(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	analysisRepo := repositories.NewAnalysisRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
	}

	core, err := app.NewCore(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize analyzer", zap.Error(err))
	}

	// History index is optional; without it analyses are only stored in the database.
	index, err := app.NewHistoryIndex(ctx, cfg, zlog)
	if err != nil {
		zlog.Warn("history index disabled", zap.Error(err))
		index = nil
	}

	var embedder services.GeminiService
	if index != nil {
		embedder = core.Gemini
	}

	// Start recorder
	recorder := services.NewRecorder(
		analysisRepo,
		index,
		embedder,
		cfg.Recorder.Concurrency,
		cfg.Recorder.QueueSize,
		zlog,
	)
	recorder.Start(ctx)

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(
		core.Analyzer,
		core.Loader,
		storageService,
		recorder,
		handlers.MatchHandlerOptions{
			MaxFileSize: cfg.Storage.MaxFileSize,
			KeepUploads: cfg.Storage.KeepUploads,
		},
		zlog,
	)
	historyHandler := handlers.NewHistoryHandler(analysisRepo, index, embedder, cfg.HistoryMax, zlog)

	server := handlers.NewApp(matchHandler, historyHandler, handlers.AppOptions{
		BodyLimit:         int(cfg.Storage.MaxFileSize) + 1<<20,
		AccessLog:         true,
		SimilarityBackend: core.Engine.Backend(),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		if err := server.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := server.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}

	// Queued analyses are written before exit.
	recorder.Stop()
}
