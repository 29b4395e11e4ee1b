// Package storage stages uploaded files in managed storage until an ad record
// claims them, and discards them when a later step fails.
package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/princinho/adboard/config"
	"github.com/princinho/adboard/models"
)

// Stager writes uploads to durable storage. Discard must succeed when the
// file is already gone.
type Stager interface {
	Stage(ctx context.Context, fileHeader *multipart.FileHeader) (*models.StagedFile, error)
	Discard(ctx context.Context, path string) error
}

// New returns the stager selected by cfg.Upload.Driver.
func New(ctx context.Context, cfg *config.Config) (Stager, error) {
	switch cfg.Upload.Driver {
	case config.StorageDriverLocal:
		return NewLocalStager(cfg.Upload.Dir), nil
	case config.StorageDriverR2:
		return NewR2Stager(ctx, cfg.R2.Endpoint, cfg.R2.AccessKeyID, cfg.R2.SecretAccessKey, cfg.R2.Bucket)
	case config.StorageDriverGCS:
		return NewGCSStager(ctx, cfg.GCS.Bucket, cfg.GCS.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Upload.Driver)
	}
}
