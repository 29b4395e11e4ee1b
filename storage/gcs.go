package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	gcs "cloud.google.com/go/storage"
	"github.com/princinho/adboard/models"
	"github.com/princinho/adboard/utils"
	"google.golang.org/api/option"
)

// GCSStager stages uploads in a Google Cloud Storage bucket. The staged path
// is the object name.
type GCSStager struct {
	client *gcs.Client
	bucket string
}

// NewGCSStager authenticates with the service account file at credentialsPath
// (relative to the working directory), or with application default
// credentials when the path is empty.
func NewGCSStager(ctx context.Context, bucket, credentialsPath string) (*GCSStager, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithAuthCredentialsFile(option.ServiceAccount, filepath.Join(wd, credentialsPath)))
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCSStager{client: client, bucket: bucket}, nil
}

func (s *GCSStager) Stage(ctx context.Context, fileHeader *multipart.FileHeader) (*models.StagedFile, error) {
	objectName := objectPrefix + utils.StagedFileName(fileHeader.Filename)
	ct := utils.DetectMimeType(fileHeader)

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	w := s.client.Bucket(s.bucket).Object(objectName).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = ct

	n, err := io.Copy(w, f)
	if err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("upload copy: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("upload close: %w", err)
	}

	return &models.StagedFile{
		Path:         objectName,
		OriginalName: fileHeader.Filename,
		MimeType:     ct,
		Size:         n,
	}, nil
}

func (s *GCSStager) Discard(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	err := s.client.Bucket(s.bucket).Object(path).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

func (s *GCSStager) Close() error {
	return s.client.Close()
}
