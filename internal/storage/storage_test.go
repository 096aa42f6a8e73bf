package storage_test

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"go-couture-api/internal/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	assert.NoError(t, storage.ValidateImage("image/jpeg", 1024))
	assert.NoError(t, storage.ValidateImage("IMAGE/PNG", storage.MaxImageSize))
	assert.ErrorIs(t, storage.ValidateImage("application/pdf", 10), storage.ErrNotImage)
	assert.ErrorIs(t, storage.ValidateImage("image/webp", storage.MaxImageSize+1), storage.ErrImageTooLarge)
}

func TestNewObjectPath(t *testing.T) {
	now := time.UnixMilli(1717171717171)

	p := storage.NewObjectPath("Front View.JPG", "image/jpeg", now)
	assert.Regexp(t, regexp.MustCompile(`^products/[0-9a-f]{12}-1717171717171\.jpg$`), p)

	p = storage.NewObjectPath("blob", "image/webp", now)
	assert.Regexp(t, regexp.MustCompile(`\.webp$`), p)

	assert.NotEqual(t,
		storage.NewObjectPath("a.png", "image/png", now),
		storage.NewObjectPath("a.png", "image/png", now),
	)
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Service(t *testing.T) {
	ctx := context.Background()

	t.Run("aws url", func(t *testing.T) {
		client := &fakeS3{}
		svc := storage.NewS3ServiceWithClient(client, storage.S3Config{Bucket: "product-images", Region: "eu-west-1"})

		url, err := svc.Upload(ctx, "products/abc-1.jpg", stringsReader("data"), "image/jpeg")
		require.NoError(t, err)

		assert.Equal(t, "https://product-images.s3.eu-west-1.amazonaws.com/products/abc-1.jpg", url)
		assert.Equal(t, "product-images", aws.ToString(client.input.Bucket))
		assert.Equal(t, "products/abc-1.jpg", aws.ToString(client.input.Key))
		assert.Equal(t, "image/jpeg", aws.ToString(client.input.ContentType))
		assert.Equal(t, "data", string(client.body))
	})

	t.Run("custom endpoint", func(t *testing.T) {
		svc := storage.NewS3ServiceWithClient(&fakeS3{}, storage.S3Config{Bucket: "b", Endpoint: "http://localhost:4566/"})
		url, err := svc.PublicURL("products/x.png")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:4566/b/products/x.png", url)
	})

	t.Run("put failure", func(t *testing.T) {
		svc := storage.NewS3ServiceWithClient(&fakeS3{err: errors.New("denied")}, storage.S3Config{Bucket: "b"})
		_, err := svc.Upload(ctx, "products/x.png", stringsReader("d"), "image/png")
		assert.Error(t, err)
	})
}

func TestCloudinaryService_PublicURL(t *testing.T) {
	svc, err := storage.NewCloudinaryService("demo", "key", "secret", "product-images")
	require.NoError(t, err)

	url, err := svc.PublicURL("products/abc-1.jpg")
	require.NoError(t, err)
	assert.Contains(t, url, "demo/image/upload")
	assert.Contains(t, url, "product-images/products/abc-1")
}
