package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-bounce-raytracer/pkg/core"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// S3Config describes an S3-compatible bucket
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty for AWS; set for MinIO, R2, Spaces and similar
	Region    string
	Bucket    string
	ACL       string // Optional canned ACL such as "public-read"
}

// S3Sink uploads objects to an S3 bucket
type S3Sink struct {
	client s3iface.S3API
	bucket string
	acl    string
	logger core.Logger
}

// NewS3Sink creates a sink using static credentials and path-style addressing
func NewS3Sink(cfg S3Config, logger core.Logger) (*S3Sink, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}

	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3SinkWithClient(s3.New(sess), cfg.Bucket, cfg.ACL, logger), nil
}

// NewS3SinkWithClient wraps an existing client
func NewS3SinkWithClient(client s3iface.S3API, bucket, acl string, logger core.Logger) *S3Sink {
	return &S3Sink{client: client, bucket: bucket, acl: acl, logger: logger}
}

// Put uploads data as bucket/key
func (s *S3Sink) Put(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if s.acl != "" {
		input.ACL = aws.String(s.acl)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if s.logger != nil {
		s.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, s.bucket, size)
	}
	return nil
}
