package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	objects     map[string][]byte
	contentType map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, contentType: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	name := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.objects[name] = data
	f.contentType[name] = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestDatasetBucketUploadDownload(t *testing.T) {
	ctx := context.Background()
	client := newFakeS3()
	bucket := NewDatasetBucket(client, "eomy-data")

	url, err := bucket.Upload(ctx, "datasets/a.json", []byte(`{"needs":[]}`), "application/json")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "s3://eomy-data/datasets/a.json" {
		t.Errorf("url = %q", url)
	}
	if ct := client.contentType["eomy-data/datasets/a.json"]; ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	data, err := bucket.Download(ctx, "datasets/a.json")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if string(data) != `{"needs":[]}` {
		t.Errorf("downloaded %q", data)
	}

	if _, err := bucket.Download(ctx, "datasets/missing.json"); err == nil {
		t.Error("expected an error for a missing object")
	}
}

func TestNewDatasetKey(t *testing.T) {
	now := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	key := NewDatasetKey("/datasets/", "yaml", now)

	if !regexp.MustCompile(`^datasets/20250301-[0-9A-Za-z]{21}\.yaml$`).MatchString(key) {
		t.Errorf("unexpected key %q", key)
	}

	if other := NewDatasetKey("datasets", "yaml", now); other == key {
		t.Error("keys should be unique")
	}
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := ParseS3URL("s3://eomy-data/datasets/20250301-x.json")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "eomy-data" || key != "datasets/20250301-x.json" {
		t.Errorf("got %q %q", bucket, key)
	}

	for _, bad := range []string{"eomy-data/x.json", "s3://", "s3://eomy-data", "s3://eomy-data/", "https://eomy-data/x"} {
		if _, _, err := ParseS3URL(bad); !errors.Is(err, ErrInvalidS3URL) {
			t.Errorf("ParseS3URL(%q) err = %v", bad, err)
		}
	}
}
