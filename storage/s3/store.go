// Package s3 implements storage.ObjectStore on AWS S3 and S3-compatible services.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// Client is the subset of the S3 API the store uses. *s3.Client satisfies it.
type Client interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store reads and writes objects in a single bucket.
type Store struct {
	client   Client
	bucket   string
	pageSize int32
	logger   *slog.Logger
}

var _ storage.ObjectStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithPageSize sets the number of keys requested per listing page.
// Zero leaves the service default (1000 on AWS).
func WithPageSize(size int32) Option {
	return func(s *Store) error {
		if size < 0 {
			return fmt.Errorf("page size must not be negative, got %d", size)
		}
		s.pageSize = size
		return nil
	}
}

// NewStore creates a store over an existing client.
func NewStore(client Client, bucket string, opts ...Option) (*Store, error) {
	if client == nil {
		return nil, ErrClientRequired
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, ErrBucketRequired
	}

	s := &Store{
		client: client,
		bucket: bucket,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ClientConfig describes how to reach the object store.
type ClientConfig struct {
	Region          string
	Endpoint        string // Custom endpoint for S3-compatible services; empty for AWS
	AccessKeyID     string // Static credentials; empty uses the default AWS chain
	SecretAccessKey string
	UsePathStyle    bool
}

// NewClient builds an S3 client from cfg using the AWS default configuration chain.
func NewClient(ctx context.Context, cfg ClientConfig) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *Store) Close() error {
	return nil
}

// List pages through every object under prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]core.ObjectInfo, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, input, func(o *s3.ListObjectsV2PaginatorOptions) {
		o.Limit = s.pageSize
	})

	infos := []core.ObjectInfo{}
	pages := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing s3://%s/%s: %w", s.bucket, prefix, err)
		}
		pages++
		for _, obj := range page.Contents {
			infos = append(infos, objectInfo(obj))
		}
	}

	s.logger.Debug("listed objects", "bucket", s.bucket, "prefix", prefix, "pages", pages, "objects", len(infos))
	return infos, nil
}

// Get downloads the object stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
		}
		return nil, fmt.Errorf("getting s3://%s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading s3://%s/%s: %w", s.bucket, key, err)
	}
	return data, nil
}

// Put uploads data under key.
func (s *Store) Put(ctx context.Context, key string, data []byte) (core.ObjectInfo, error) {
	if err := core.ValidateKey(key); err != nil {
		return core.ObjectInfo{}, err
	}

	out, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return core.ObjectInfo{}, fmt.Errorf("putting s3://%s/%s: %w", s.bucket, key, err)
	}

	return core.ObjectInfo{
		Key:  key,
		Size: int64(len(data)),
		ETag: strings.Trim(aws.ToString(out.ETag), `"`),
	}, nil
}

// Delete removes the object stored under key. S3 reports success for
// missing keys, so Delete never returns storage.ErrNotFound here.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

func objectInfo(obj types.Object) core.ObjectInfo {
	return core.ObjectInfo{
		Key:        aws.ToString(obj.Key),
		Size:       aws.ToInt64(obj.Size),
		ETag:       strings.Trim(aws.ToString(obj.ETag), `"`),
		ModifiedAt: aws.ToTime(obj.LastModified),
	}
}
