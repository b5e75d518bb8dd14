package gcs

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcsapi"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/testutil"
)

func TestClientUpload(t *testing.T) {
	t.Run("streams content and returns handle", func(t *testing.T) {
		content := []byte("uploaded payload")
		mock := &testutil.MockStorageClient{
			InsertObjectFunc: func(_ context.Context, req *gcsapi.InsertObjectRequest, r io.Reader) (*gcsapi.Object, error) {
				assert.Equal(t, "my-bucket", req.Bucket)
				assert.Equal(t, "new.txt", req.Name)
				got, err := io.ReadAll(r)
				require.NoError(t, err)
				assert.Equal(t, content, got, "sniffed prefix is replayed ahead of the stream")
				return testutil.NewTestObjectWithContent("my-bucket", "new.txt", 1, content), nil
			},
		}

		file, err := newTestClient(t, mock).Upload(context.Background(), "my-bucket", "new.txt", bytes.NewReader(content))
		require.NoError(t, err)
		assert.Equal(t, "new.txt", file.Name())
		assert.Equal(t, int64(1), file.Generation())
	})

	t.Run("content type sniffed when unset", func(t *testing.T) {
		mock := &testutil.MockStorageClient{
			InsertObjectFunc: func(_ context.Context, req *gcsapi.InsertObjectRequest, r io.Reader) (*gcsapi.Object, error) {
				_, _ = io.Copy(io.Discard, r)
				assert.Contains(t, req.ContentType, "application/json")
				return testutil.NewTestObject("my-bucket", "data.json", 1), nil
			},
		}

		_, err := newTestClient(t, mock).Upload(context.Background(), "my-bucket", "data.json",
			strings.NewReader(`{"key": "value"}`))
		require.NoError(t, err)
	})

	t.Run("explicit content type wins over sniffing", func(t *testing.T) {
		mock := &testutil.MockStorageClient{
			InsertObjectFunc: func(_ context.Context, req *gcsapi.InsertObjectRequest, r io.Reader) (*gcsapi.Object, error) {
				_, _ = io.Copy(io.Discard, r)
				assert.Equal(t, "text/csv", req.ContentType)
				return testutil.NewTestObject("my-bucket", "data.csv", 1), nil
			},
		}

		_, err := newTestClient(t, mock).Upload(context.Background(), "my-bucket", "data.csv",
			strings.NewReader("a,b,c"), WithContentType("text/csv"))
		require.NoError(t, err)
	})

	t.Run("metadata acl and encryption options applied", func(t *testing.T) {
		key := bytes.Repeat([]byte{0x09}, 32)
		mock := &testutil.MockStorageClient{
			InsertObjectFunc: func(_ context.Context, req *gcsapi.InsertObjectRequest, r io.Reader) (*gcsapi.Object, error) {
				_, _ = io.Copy(io.Discard, r)
				assert.Equal(t, map[string]string{"env": "prod"}, req.Metadata)
				assert.Equal(t, "publicRead", req.PredefinedACL, "alias resolved")
				assert.Equal(t, "no-store", req.CacheControl)
				require.Len(t, req.Headers, 3)
				assert.Equal(t, "AES256", req.Headers["x-goog-encryption-algorithm"])
				return testutil.NewTestObject("my-bucket", "opts.bin", 1), nil
			},
		}

		_, err := newTestClient(t, mock).Upload(context.Background(), "my-bucket", "opts.bin",
			bytes.NewReader([]byte("data")),
			WithMetadata(map[string]string{"env": "prod"}),
			WithUploadACL("public"),
			WithCacheControl("no-store"),
			WithUploadEncryptionKey(key),
		)
		require.NoError(t, err)
	})

	t.Run("nil reader rejected", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		_, err := newTestClient(t, mock).Upload(context.Background(), "my-bucket", "new.txt", nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidInput(err))
		assert.Zero(t, mock.InsertObjectCalls)
	})

	t.Run("invalid encryption key rejected", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		_, err := newTestClient(t, mock).Upload(context.Background(), "my-bucket", "new.txt",
			bytes.NewReader([]byte("data")), WithUploadEncryptionKey([]byte("short")))
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidEncryptionKey)
		assert.Zero(t, mock.InsertObjectCalls)
	})

	t.Run("invalid bucket name rejected", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		_, err := newTestClient(t, mock).Upload(context.Background(), "NO", "new.txt", bytes.NewReader(nil))
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidBucketName)
	})
}

func TestClientUploadFile(t *testing.T) {
	content := []byte("local file payload")
	filesystem := billy.NewInMemoryFS()
	require.NoError(t, filesystem.WriteFile("/data/local.txt", content, 0o644))

	mock := &testutil.MockStorageClient{
		InsertObjectFunc: func(_ context.Context, _ *gcsapi.InsertObjectRequest, r io.Reader) (*gcsapi.Object, error) {
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, content, got)
			return testutil.NewTestObjectWithContent("my-bucket", "remote.txt", 1, content), nil
		},
	}

	client, err := New(mock, WithFilesystem(filesystem))
	require.NoError(t, err)

	file, err := client.UploadFile(context.Background(), "my-bucket", "remote.txt", "/data/local.txt")
	require.NoError(t, err)
	assert.Equal(t, "remote.txt", file.Name())
}

func TestClientUploadFileMissingPath(t *testing.T) {
	client, err := New(&testutil.MockStorageClient{}, WithFilesystem(billy.NewInMemoryFS()))
	require.NoError(t, err)

	_, err = client.UploadFile(context.Background(), "my-bucket", "remote.txt", "/absent.txt")
	require.Error(t, err)
}
