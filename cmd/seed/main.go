// Command seed resets the categories collection to the default set.
package main

import (
	"context"
	"os"
	"time"

	"github.com/princinho/adboard/config"
	"github.com/princinho/adboard/database"
	"github.com/princinho/adboard/logger"
	"github.com/princinho/adboard/repository"
	"github.com/princinho/adboard/utils"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		return 1
	}
	logr := logger.New(cfg.Log.Level, cfg.Log.Encoding)
	defer func() { _ = logr.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := database.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.DatabaseName, logr)
	if err != nil {
		logr.Error("failed to connect to MongoDB", zap.Error(err))
		return 1
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logr.Error("mongo disconnect", zap.Error(err))
		}
	}()

	if err := store.EnsureIndexes(ctx); err != nil {
		logr.Error("failed to create indexes", zap.Error(err))
		return 1
	}

	if _, err := utils.SeedCategories(ctx, repository.NewCategoryRepository(store), os.Stdout); err != nil {
		logr.Error("seeding failed", zap.Error(err))
		return 1
	}
	return 0
}
