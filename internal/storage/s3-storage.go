package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const cacheControl = "public, max-age=31536000"

// Storage hosts thumbnail images at public URLs.
type Storage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Options configures the S3-compatible bucket.
type Options struct {
	Endpoint      string
	AccessKeyID   string
	SecretKey     string
	BucketName    string
	UseSSL        bool
	PublicBaseURL string
}

type s3Storage struct {
	client     *minio.Client
	bucketName string
	baseURL    string
}

func NewS3Storage(ctx context.Context, opts Options) (Storage, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, opts.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, opts.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	// Objects are served directly to browsers, so the bucket is world-readable.
	if err := client.SetBucketPolicy(ctx, opts.BucketName, PublicReadPolicy(opts.BucketName)); err != nil {
		return nil, fmt.Errorf("failed to set bucket policy: %w", err)
	}

	return &s3Storage{
		client:     client,
		bucketName: opts.BucketName,
		baseURL:    BaseURL(opts),
	}, nil
}

// PublicReadPolicy grants anonymous GetObject on every key of bucket.
func PublicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// BaseURL is the prefix public object URLs are built from.
func BaseURL(opts Options) string {
	if opts.PublicBaseURL != "" {
		return strings.TrimRight(opts.PublicBaseURL, "/")
	}
	scheme := "http"
	if opts.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, opts.Endpoint, opts.BucketName)
}

func (s *s3Storage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	reader := bytes.NewReader(data)

	_, err := s.client.PutObject(
		ctx,
		s.bucketName,
		key,
		reader,
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType:  contentType,
			CacheControl: cacheControl,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s.PublicURL(key), nil
}

// PublicURL is the address an object stored under key is served from.
func (s *s3Storage) PublicURL(key string) string {
	return joinURL(s.baseURL, key)
}

func joinURL(base, key string) string {
	segments := strings.Split(strings.TrimLeft(path.Clean("/"+key), "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return base + "/" + strings.Join(segments, "/")
}
