package s3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SscSPs/docflow_app/internal/adapters/filestorage"
	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/ports/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Options configures the S3 backend.
type Options struct {
	Bucket    string
	Region    string
	Endpoint  string // S3-compatible endpoint such as LocalStack or MinIO, empty for AWS
	AccessKey string
	SecretKey string
	Prefix    string
}

// objectAPI is the part of *s3.Client the storage uses.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3FileStorage struct {
	client objectAPI
	bucket string
	prefix string
}

// NewS3FileStorage builds an S3 backed storage from the default AWS
// credential chain, or static keys when given.
func NewS3FileStorage(ctx context.Context, opts Options) (storage.FileStorage, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newWithClient(client, opts.Bucket, opts.Prefix), nil
}

func newWithClient(client objectAPI, bucket, prefix string) *s3FileStorage {
	return &s3FileStorage{client: client, bucket: bucket, prefix: filestorage.SafeSegment(prefix)}
}

var _ storage.FileStorage = (*s3FileStorage)(nil)

func (s *s3FileStorage) key(rel string) string {
	if s.prefix == "" {
		return rel
	}
	return s.prefix + "/" + rel
}

func (s *s3FileStorage) Store(ctx context.Context, r io.Reader, suggestedName, folder string) (string, error) {
	rel := filestorage.ObjectName(suggestedName, folder)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(rel)),
		Body:   r,
	})
	if err != nil {
		return "", apperrors.NewPersistenceError("failed to upload file", err)
	}
	return rel, nil
}

func (s *s3FileStorage) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		return apperrors.NewPersistenceError("failed to delete file", err)
	}
	return nil
}

func (s *s3FileStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, apperrors.NewNotFoundError("file")
		}
		return nil, apperrors.NewPersistenceError("failed to download file", err)
	}
	return out.Body, nil
}
