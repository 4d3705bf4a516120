package snapshot

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 serves snapshots from an S3-compatible bucket (AWS S3 or MinIO).
// Keys map to object keys directly.
type S3 struct {
	client *s3.Client
	bucket string
}

// S3Config holds explicit construction parameters (mostly for tests). For
// production the environment variables below are the primary interface.
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string // optional; enables a custom endpoint (e.g. MinIO)
	AccessKeyID     string // optional (falls back to default credentials chain)
	SecretAccessKey string // optional
	PathStyle       bool
}

// Environment variables:
//
//	PROVIDERDIR_SNAPSHOT_S3_BUCKET=<bucket> (required)
//	PROVIDERDIR_SNAPSHOT_S3_REGION=<region> (default us-east-1)
//	PROVIDERDIR_SNAPSHOT_S3_ENDPOINT=<url> (optional, for MinIO)
//	PROVIDERDIR_SNAPSHOT_S3_PATH_STYLE=true|false (default false)
//	AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY (optional)

// NewS3 creates an S3 snapshot source from S3Config.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return &S3{client: client, bucket: cfg.Bucket}, nil
}

// OpenS3FromEnv constructs an S3 source from process environment.
func OpenS3FromEnv(ctx context.Context) (*S3, error) {
	bucket := os.Getenv("PROVIDERDIR_SNAPSHOT_S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("PROVIDERDIR_SNAPSHOT_S3_BUCKET required for s3 driver")
	}
	return NewS3(ctx, S3Config{
		Bucket:    bucket,
		Region:    os.Getenv("PROVIDERDIR_SNAPSHOT_S3_REGION"),
		Endpoint:  os.Getenv("PROVIDERDIR_SNAPSHOT_S3_ENDPOINT"),
		PathStyle: strings.EqualFold(os.Getenv("PROVIDERDIR_SNAPSHOT_S3_PATH_STYLE"), "true"),
	})
}

// Driver implements Source.
func (s *S3) Driver() Driver { return DriverS3 }

// Fetch implements Source.
func (s *S3) Fetch(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{Bucket: &s.bucket, Key: &key})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
