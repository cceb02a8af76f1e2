package receipt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// ObjectPutter is the subset of the S3 client used by the receipt store.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3Store implements Store on AWS S3.
type s3Store struct {
	client ObjectPutter
	bucket string
	logger zerolog.Logger
}

// NewS3Store creates an S3-backed receipt store using the default AWS credential chain.
func NewS3Store(ctx context.Context, bucket, region string, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "receipt-s3-store").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 receipt store initialised")

	return NewS3StoreWithClient(s3.NewFromConfig(cfg), bucket, logger), nil
}

// NewS3StoreWithClient creates an S3-backed receipt store over an existing client.
func NewS3StoreWithClient(client ObjectPutter, bucket string, logger zerolog.Logger) Store {
	return &s3Store{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Save uploads the gzipped receipt to bucket/key.
func (s *s3Store) Save(ctx context.Context, key string, r *Receipt) error {
	body, err := encodeBytes(r)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          aws.String(s.bucket),
		Key:             aws.String(key),
		Body:            bytes.NewReader(body),
		ContentType:     aws.String("application/json"),
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("bucket", s.bucket).
			Str("key", key).
			Msg("failed to put receipt to S3")
		return fmt.Errorf("failed to put receipt to S3 (bucket=%s, key=%s): %w", s.bucket, key, err)
	}

	s.logger.Debug().
		Str("bucket", s.bucket).
		Str("key", key).
		Msg("receipt archived to S3")

	return nil
}

// fallbackStore tries S3 first, then falls back to the local file system.
type fallbackStore struct {
	s3Store   Store
	fileStore Store
	s3Prefix  string
	s3Enabled bool
	logger    zerolog.Logger
}

// NewFallbackStore creates a store that writes to S3 first and falls back to
// fileStore on failure. If s3Store is nil, only fileStore is used.
func NewFallbackStore(s3Store, fileStore Store, s3Prefix string, s3Enabled bool, logger zerolog.Logger) Store {
	return &fallbackStore{
		s3Store:   s3Store,
		fileStore: fileStore,
		s3Prefix:  s3Prefix,
		s3Enabled: s3Enabled,
		logger:    logger.With().Str("component", "receipt-fallback-store").Logger(),
	}
}

// Save writes to S3 under s3Prefix+key, or locally under key.
func (s *fallbackStore) Save(ctx context.Context, key string, r *Receipt) error {
	if s.s3Enabled && s.s3Store != nil {
		s3Key := s.s3Prefix + key

		err := s.s3Store.Save(ctx, s3Key, r)
		if err == nil {
			return nil
		}

		s.logger.Warn().
			Err(err).
			Str("s3_key", s3Key).
			Msg("failed to archive receipt to S3, falling back to local file system")
	}

	return s.fileStore.Save(ctx, key, r)
}
