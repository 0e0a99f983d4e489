package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"

	"github.com/dfryer1193/gallery/gallery/domain"
)

var _ domain.Storage = (*S3)(nil)

const s3KeyPrefix = "images/"

// S3Options configures an S3-compatible object store.
type S3Options struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Region          string
}

// S3 stores blobs in an S3-compatible object store (AWS S3, MinIO, ...).
type S3 struct {
	client   *s3.Client
	bucket   string
	endpoint string
}

// NewS3 creates an S3 storage and makes sure the configured bucket exists.
func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if opts.Endpoint != "" {
			return aws.Endpoint{
				URL:               opts.Endpoint,
				HostnameImmutable: true,
				Source:            aws.EndpointSourceCustom,
			}, nil
		}
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID,
			opts.SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion(opts.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	store := &S3{
		client:   client,
		bucket:   opts.Bucket,
		endpoint: strings.TrimRight(opts.Endpoint, "/"),
	}

	if err := store.ensureBucketExists(ctx, opts.Region); err != nil {
		log.Warn().Err(err).Str("bucket", opts.Bucket).Msg("Failed to ensure bucket exists")
	}

	return store, nil
}

func (s *S3) ensureBucketExists(ctx context.Context, region string) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	log.Info().Str("bucket", s.bucket).Msg("Creating bucket")

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
		CreateBucketConfiguration: &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(region),
		},
	})

	return err
}

// Store uploads the blob under a fresh unique key.
func (s *S3) Store(ctx context.Context, fileName, contentType string, r io.Reader, size int64) (domain.StoredObject, error) {
	var zero domain.StoredObject

	key := s3KeyPrefix + objectName(fileName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return zero, fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return domain.StoredObject{
		URL:         fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key),
		DeletionKey: key,
	}, nil
}

// Fetch downloads a stored blob back into memory.
func (s *S3) Fetch(ctx context.Context, deletionKey string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(deletionKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download object %s: %w", deletionKey, err)
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", deletionKey, err)
	}

	return buf.Bytes(), nil
}

// Remove deletes a stored blob. S3 treats deleting an absent key as success.
func (s *S3) Remove(ctx context.Context, deletionKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(deletionKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", deletionKey, err)
	}

	return nil
}
