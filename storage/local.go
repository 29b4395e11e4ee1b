package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/princinho/adboard/models"
	"github.com/princinho/adboard/utils"
)

type LocalStager struct {
	dir string
}

func NewLocalStager(dir string) *LocalStager {
	return &LocalStager{dir: dir}
}

func (s *LocalStager) Dir() string {
	return s.dir
}

func (s *LocalStager) Stage(_ context.Context, fileHeader *multipart.FileHeader) (*models.StagedFile, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	path := filepath.Join(s.dir, utils.StagedFileName(fileHeader.Filename))
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	n, err := io.Copy(dst, src)
	if err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("close %s: %w", path, err)
	}

	return &models.StagedFile{
		Path:         path,
		OriginalName: fileHeader.Filename,
		MimeType:     utils.DetectMimeType(fileHeader),
		Size:         n,
	}, nil
}

func (s *LocalStager) Discard(_ context.Context, path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}
