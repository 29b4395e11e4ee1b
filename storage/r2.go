package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/princinho/adboard/models"
	"github.com/princinho/adboard/utils"
)

const objectPrefix = "ads/"

// R2Stager stages uploads in a Cloudflare R2 (or any S3-compatible) bucket.
// The staged path is the object key.
type R2Stager struct {
	s3     *s3.Client
	bucket string
}

func NewR2Stager(ctx context.Context, endpoint, accessKey, secretKey, bucket string) (*R2Stager, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true // required for R2
	})
	return &R2Stager{s3: client, bucket: bucket}, nil
}

func (s *R2Stager) Stage(ctx context.Context, fileHeader *multipart.FileHeader) (*models.StagedFile, error) {
	key := objectPrefix + utils.StagedFileName(fileHeader.Filename)
	ct := utils.DetectMimeType(fileHeader)

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	_, err = s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(fileHeader.Size),
		ContentType:   aws.String(ct),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", fileHeader.Filename, err)
	}

	return &models.StagedFile{
		Path:         key,
		OriginalName: fileHeader.Filename,
		MimeType:     ct,
		Size:         fileHeader.Size,
	}, nil
}

// Discard deletes the object. S3 DeleteObject succeeds for missing keys.
func (s *R2Stager) Discard(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	_, err := s.s3.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}
