package s3

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"garden-backend/internal/shared/storage/object"
)

// Store implements ObjectStore against any S3-compatible endpoint, including
// DigitalOcean Spaces.
type Store struct {
	client *s3.Client
	bucket string
}

// New creates a new S3-backed object store. A non-empty endpoint overrides the
// default AWS endpoint so the client can talk to Spaces.
func New(ctx context.Context, key, secret, endpoint, region, bucket string) (object.ObjectStore, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("object storage bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	if key != "" && secret != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if trimmed := strings.TrimSpace(endpoint); trimmed != "" {
			o.BaseEndpoint = aws.String(trimmed)
		}
	})

	return &Store{client: client, bucket: bucket}, nil
}

// Put uploads data under the given key with content type and metadata tags.
func (s *Store) Put(ctx context.Context, key, contentType string, data []byte, metadata map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(strings.TrimLeft(key, "/")),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if len(metadata) > 0 {
		input.Metadata = metadata
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, key, err)
	}
	return nil
}

var _ object.ObjectStore = (*Store)(nil)
