package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/adboard/config"
	"github.com/princinho/adboard/controllers"
	"github.com/princinho/adboard/database"
	"github.com/princinho/adboard/logger"
	"github.com/princinho/adboard/middleware"
	"github.com/princinho/adboard/repository"
	"github.com/princinho/adboard/services"
	"github.com/princinho/adboard/storage"
	"github.com/princinho/adboard/utils"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logr := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = logr.Sync() }()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	store, err := database.Connect(connectCtx, cfg.Mongo.URI, cfg.Mongo.DatabaseName, logr)
	cancel()
	if err != nil {
		logr.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		logr.Fatal("failed to create indexes", zap.Error(err))
	}

	stager, err := storage.New(ctx, cfg)
	if err != nil {
		logr.Fatal("failed to init file storage", zap.String("driver", cfg.Upload.Driver), zap.Error(err))
	}
	if closer, ok := stager.(io.Closer); ok {
		defer closer.Close()
	}

	categoryRepo := repository.NewCategoryRepository(store)
	adRepo := repository.NewAdRepository(store)

	r := gin.New()
	r.Use(middleware.CORS(cfg.AllowedOrigins, logr))
	r.Use(middleware.RequestLogger(logr))
	r.Use(gin.Recovery())

	if local, ok := stager.(*storage.LocalStager); ok {
		r.Static("/uploads", local.Dir())
	}

	controllers.RegisterRoutes(r, controllers.Deps{
		Ads:          services.NewAdService(adRepo, categoryRepo, stager, logr),
		Categories:   services.NewCategoryService(categoryRepo, adRepo, logr),
		Validator:    utils.NewImageValidator(cfg.Upload.AllowedExtensions, cfg.Upload.AllowedMimeTypes, cfg.Upload.MaxSizeMB),
		MaxBulkFiles: cfg.Upload.MaxBulkFiles,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Upload.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server shutdown", zap.Error(err))
	}
	if err := store.Close(shutdownCtx); err != nil {
		logr.Error("mongo disconnect", zap.Error(err))
	}
}
