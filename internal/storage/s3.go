package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3/MinIO configuration
type S3Config struct {
	Endpoint        string // e.g., "http://localhost:9000" for MinIO, empty for AWS
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
	Prefix          string // key prefix for exported objects
	PublicURL       string // optional base URL reported instead of s3://bucket/key
}

// S3Exporter writes export snapshots to an S3-compatible bucket
type S3Exporter struct {
	client    *s3.Client
	bucket    string
	prefix    string
	publicURL string
	now       func() time.Time
}

// NewS3Exporter creates a new S3 exporter
func NewS3Exporter(cfg S3Config) (*S3Exporter, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	opts := s3.Options{
		Region: cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true // Required for MinIO
	}

	return &S3Exporter{
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		prefix:    strings.Trim(cfg.Prefix, "/"),
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
		now:       time.Now,
	}, nil
}

// Put uploads body under <prefix>/<yyyy>/<mm>/<dd>/<name> and returns its location
func (e *S3Exporter) Put(ctx context.Context, name, contentType string, body []byte) (string, error) {
	key := path.Join(e.prefix, e.now().UTC().Format("2006/01/02"), name)

	_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(e.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("uploading to s3: %w", err)
	}

	if e.publicURL != "" {
		return e.publicURL + "/" + key, nil
	}
	return fmt.Sprintf("s3://%s/%s", e.bucket, key), nil
}
