package asset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/polkiloo/profilecard/internal/config"
	"github.com/polkiloo/profilecard/internal/domain/model"
)

// ErrEmptyPublicID is returned by Delete when no asset identifier is given.
var ErrEmptyPublicID = errors.New("empty asset public id")

// Uploader exposes operations against the remote asset store.
type Uploader interface {
	Upload(ctx context.Context, upload model.Upload) (*model.Asset, error)
	Delete(ctx context.Context, publicID string) error
}

// objectAPI is the subset of the S3 client used by S3Uploader.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Uploader stores profile images in an S3 compatible bucket (R2, MinIO, S3).
type S3Uploader struct {
	api           objectAPI
	bucket        string
	folder        string
	publicBaseURL string
	newKey        func() string
	logger        *slog.Logger
}

// NewS3Uploader builds an uploader talking to the configured endpoint with static credentials.
func NewS3Uploader(ctx context.Context, cfg config.AssetConfig, logger *slog.Logger) (*S3Uploader, error) {
	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse asset endpoint: %w", err)
	}
	if !endpoint.IsAbs() {
		return nil, fmt.Errorf("asset endpoint must be absolute")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load asset store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint.String())
		o.UsePathStyle = true
		// R2 and MinIO reject the default trailing checksums
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return newS3Uploader(client, cfg, logger), nil
}

func newS3Uploader(api objectAPI, cfg config.AssetConfig, logger *slog.Logger) *S3Uploader {
	return &S3Uploader{
		api:           api,
		bucket:        cfg.Bucket,
		folder:        strings.Trim(cfg.Folder, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		newKey:        uuid.NewString,
		logger:        logger,
	}
}

// Upload streams the spooled file to the bucket and returns its public identifier and URL.
func (u *S3Uploader) Upload(ctx context.Context, upload model.Upload) (*model.Asset, error) {
	f, err := os.Open(upload.Path)
	if err != nil {
		return nil, fmt.Errorf("open spooled file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat spooled file: %w", err)
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("rewind spooled file: %w", err)
	}

	key := u.objectKey(upload.OriginalName)
	contentType := mtype.String()
	_, err = u.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(info.Size()),
	})
	if err != nil {
		return nil, fmt.Errorf("put object %s: %w", key, err)
	}

	u.logger.Debug("asset uploaded", slog.String("public_id", key), slog.Int64("bytes", info.Size()))

	return &model.Asset{
		PublicID:    key,
		SecureURL:   u.publicBaseURL + "/" + key,
		ContentType: contentType,
		Bytes:       info.Size(),
	}, nil
}

// Delete removes a previously uploaded asset.
func (u *S3Uploader) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return ErrEmptyPublicID
	}
	_, err := u.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", publicID, err)
	}
	return nil
}

func (u *S3Uploader) objectKey(originalName string) string {
	name := u.newKey() + strings.ToLower(filepath.Ext(originalName))
	if u.folder == "" {
		return name
	}
	return path.Join(u.folder, name)
}
