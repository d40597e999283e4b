package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"needsleads/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrInvalidS3URL = errors.New("expected a url of the form s3://bucket/key")

// S3API is the part of the S3 client the bucket uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// DatasetBucket stores exported datasets as objects in one S3 bucket.
type DatasetBucket struct {
	client S3API
	bucket string
}

func NewDatasetBucket(client S3API, bucket string) *DatasetBucket {
	return &DatasetBucket{client: client, bucket: bucket}
}

func (b *DatasetBucket) Bucket() string {
	return b.bucket
}

// Upload writes body under key and returns the s3:// url of the object.
func (b *DatasetBucket) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return S3URL(b.bucket, key), nil
}

func (b *DatasetBucket) Download(ctx context.Context, key string) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return data, nil
}

// NewDatasetKey names a dataset object <prefix>/<YYYYMMDD>-<nanoid>.<ext>.
func NewDatasetKey(prefix, ext string, now time.Time) string {
	name := fmt.Sprintf("%s-%s.%s", now.UTC().Format("20060102"), utils.NanoID(), ext)
	return path.Join(strings.Trim(prefix, "/"), name)
}

func S3URL(bucket, key string) string {
	return fmt.Sprintf("s3://%s/%s", bucket, key)
}

// ParseS3URL splits s3://bucket/key into its bucket and key.
func ParseS3URL(raw string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(raw, "s3://")
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidS3URL, raw)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidS3URL, raw)
	}

	return bucket, key, nil
}

func IsS3URL(raw string) bool {
	return strings.HasPrefix(raw, "s3://")
}
