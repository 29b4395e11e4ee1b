package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	defaultImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	defaultImageMimeTypes  = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
)

type FileValidator struct {
	allowedExt  map[string]bool
	allowedMime map[string]bool
	maxSize     int64
}

// NewImageValidator accepts image uploads up to maxSizeMB. Empty allow-lists
// fall back to the common web image formats.
func NewImageValidator(extensions, mimeTypes []string, maxSizeMB int) *FileValidator {
	if len(extensions) == 0 {
		extensions = defaultImageExtensions
	}
	if len(mimeTypes) == 0 {
		mimeTypes = defaultImageMimeTypes
	}
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}

	allowedExt := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimSpace(strings.ToLower(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		allowedExt[ext] = true
	}
	allowedMime := make(map[string]bool, len(mimeTypes))
	for _, m := range mimeTypes {
		allowedMime[strings.TrimSpace(strings.ToLower(m))] = true
	}

	return &FileValidator{
		allowedExt:  allowedExt,
		allowedMime: allowedMime,
		maxSize:     int64(maxSizeMB) << 20,
	}
}

// ValidateFile checks size, extension and sniffed content type and returns the detected MIME type.
func (v *FileValidator) ValidateFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > v.maxSize {
		return "", fmt.Errorf("file too large (max %d MB)", v.maxSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !v.allowedExt[ext] {
		return "", fmt.Errorf("invalid file extension")
	}

	detected, err := sniffMimeType(fileHeader)
	if err != nil {
		return "", err
	}
	if !v.allowedMime[detected] {
		return "", fmt.Errorf("invalid file type")
	}
	return detected, nil
}

// DetectMimeType prefers the declared multipart Content-Type and falls back to sniffing the content.
func DetectMimeType(fileHeader *multipart.FileHeader) string {
	ct := strings.ToLower(strings.TrimSpace(fileHeader.Header.Get("Content-Type")))
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	detected, err := sniffMimeType(fileHeader)
	if err != nil {
		return "application/octet-stream"
	}
	return detected
}

func sniffMimeType(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file header")
	}
	// strip parameters such as "; charset=utf-8"
	detected, _, _ := strings.Cut(mt.String(), ";")
	return strings.ToLower(strings.TrimSpace(detected)), nil
}
