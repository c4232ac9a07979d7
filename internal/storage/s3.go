package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/recipeshare/backend/config"
)

// S3Store keeps images in an S3 (or S3-compatible) bucket
type S3Store struct {
	cfg *config.S3Config
}

// NewS3Store wraps an initialised S3 client and bucket
func NewS3Store(cfg *config.S3Config) *S3Store {
	return &S3Store{cfg: cfg}
}

func (s *S3Store) Save(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.cfg.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return s.cfg.BaseURL + "/" + key, nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, s.cfg.BaseURL+"/")
	if !ok || key == "" {
		return ErrForeignReference
	}
	_, err := s.cfg.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// New picks the S3 store when a bucket is configured and the local store otherwise
func New(ctx context.Context, cfg *config.Config) (ImageStore, error) {
	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to configure S3: %w", err)
		}
		return NewS3Store(s3cfg), nil
	}
	return NewLocalStore(cfg.MediaRoot, cfg.MediaURL)
}
