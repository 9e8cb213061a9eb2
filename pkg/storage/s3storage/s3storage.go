// Package s3storage stores export files in an S3 compatible bucket.
package s3storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sgaunet/issue-manager/pkg/storage"
)

// S3Storage implements storage.Storage on an S3 bucket. File names are
// stored under the configured key prefix.
type S3Storage struct {
	s3Client *s3.Client
	bucket   string
	prefix   string
}

var _ storage.Storage = (*S3Storage)(nil)

type s3Options struct {
	accessKey string
	secretKey string
}

// Option configures an S3Storage.
type Option func(*s3Options)

// WithStaticCredentials uses the given key pair instead of the default AWS
// credential chain.
func WithStaticCredentials(accessKey, secretKey string) Option {
	return func(o *s3Options) {
		o.accessKey = accessKey
		o.secretKey = secretKey
	}
}

// NewS3Storage returns a storage for bucket in region. A non-empty endpoint
// targets an S3 compatible server (minio...) with path-style addressing.
func NewS3Storage(ctx context.Context, region, endpoint, bucket, prefix string, opts ...Option) (*S3Storage, error) {
	var o s3Options
	for _, opt := range opts {
		opt(&o)
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if o.accessKey != "" && o.secretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.accessKey, o.secretKey, "")))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if endpoint != "" {
			so.BaseEndpoint = aws.String(endpoint)
			so.UsePathStyle = true
		}
	})

	return &S3Storage{
		s3Client: client,
		bucket:   bucket,
		prefix:   prefix,
	}, nil
}

func (s *S3Storage) key(filename string) string {
	if s.prefix == "" {
		return filename
	}
	return path.Join(s.prefix, filename)
}

// SaveFile uploads src as dstFilename. Non seekable readers are buffered
// first so the payload can be signed.
func (s *S3Storage) SaveFile(ctx context.Context, src io.Reader, dstFilename string) error {
	body, ok := src.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(src)
		if err != nil {
			return fmt.Errorf("failed to read source: %w", err)
		}
		body = bytes.NewReader(data)
	}

	_, err := s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(dstFilename)),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", dstFilename, err)
	}
	return nil
}

// Open downloads filename. The returned body must be closed.
func (s *S3Storage) Open(ctx context.Context, filename string) (io.ReadCloser, error) {
	out, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(filename)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: s3://%s/%s", storage.ErrFileNotFound, s.bucket, s.key(filename))
		}
		return nil, fmt.Errorf("failed to download %s: %w", filename, err)
	}
	return out.Body, nil
}
