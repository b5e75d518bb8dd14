package gcs

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcsapi"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcstypes"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/testutil"
)

// serveDownload wires mock to write content for any download and records
// the request.
func serveDownload(mock *testutil.MockStorageClient, content []byte, gotReq **gcsapi.DownloadObjectRequest) {
	mock.DownloadObjectFunc = func(_ context.Context, req *gcsapi.DownloadObjectRequest, w io.Writer) (int64, error) {
		if gotReq != nil {
			*gotReq = req
		}
		n, err := w.Write(content)
		return int64(n), err
	}
}

func TestFileDownload(t *testing.T) {
	content := []byte("downloaded content")

	t.Run("default md5 verification against handle digests", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		file := fetchTestFile(t, mock, testutil.NewTestObjectWithContent("my-bucket", "data.bin", 2, content))
		serveDownload(mock, content, nil)

		var buf bytes.Buffer
		require.NoError(t, file.Download(context.Background(), &buf))
		assert.Equal(t, content, buf.Bytes())
	})

	t.Run("pins the handle generation", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		file := fetchTestFile(t, mock, testutil.NewTestObjectWithContent("my-bucket", "data.bin", 9, content))
		var gotReq *gcsapi.DownloadObjectRequest
		serveDownload(mock, content, &gotReq)

		var buf bytes.Buffer
		require.NoError(t, file.Download(context.Background(), &buf))
		require.NotNil(t, gotReq)
		assert.Equal(t, int64(9), gotReq.Generation)
	})

	t.Run("tampered content fails default verification", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		file := fetchTestFile(t, mock, testutil.NewTestObjectWithContent("my-bucket", "data.bin", 2, content))
		serveDownload(mock, []byte("tampered"), nil)

		var buf bytes.Buffer
		err := file.Download(context.Background(), &buf)
		require.Error(t, err)
		assert.True(t, errors.IsVerification(err))
		assert.Equal(t, []byte("tampered"), buf.Bytes(), "writer already received the bytes")
	})

	t.Run("verify none accepts tampered content", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		file := fetchTestFile(t, mock, testutil.NewTestObjectWithContent("my-bucket", "data.bin", 2, content))
		serveDownload(mock, []byte("tampered"), nil)

		var buf bytes.Buffer
		assert.NoError(t, file.Download(context.Background(), &buf, WithVerify(gcstypes.VerifyNone)))
	})

	t.Run("verify all checks both digests", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		file := fetchTestFile(t, mock, testutil.NewTestObjectWithContent("my-bucket", "data.bin", 2, content))
		serveDownload(mock, content, nil)

		var buf bytes.Buffer
		assert.NoError(t, file.Download(context.Background(), &buf, WithVerify(gcstypes.VerifyAll)))
	})

	t.Run("unknown verify mode rejected before any request", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		file := fetchTestFile(t, mock, testutil.NewTestObjectWithContent("my-bucket", "data.bin", 2, content))

		var buf bytes.Buffer
		err := file.Download(context.Background(), &buf, WithVerify(gcstypes.VerifyMode("sha1")))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidInput(err))
		assert.Zero(t, mock.DownloadObjectCalls)
	})

	t.Run("decryption key becomes encryption headers", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		file := fetchTestFile(t, mock, testutil.NewTestObjectWithContent("my-bucket", "data.bin", 2, content))
		var gotReq *gcsapi.DownloadObjectRequest
		serveDownload(mock, content, &gotReq)

		key := bytes.Repeat([]byte{0x07}, 32)
		var buf bytes.Buffer
		require.NoError(t, file.Download(context.Background(), &buf, WithDecryptionKey(key)))

		require.NotNil(t, gotReq)
		require.Len(t, gotReq.Headers, 3)
		assert.Equal(t, "AES256", gotReq.Headers["x-goog-encryption-algorithm"])
	})

	t.Run("invalid decryption key rejected", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		file := fetchTestFile(t, mock, testutil.NewTestObjectWithContent("my-bucket", "data.bin", 2, content))

		var buf bytes.Buffer
		err := file.Download(context.Background(), &buf, WithDecryptionKey([]byte("too short")))
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidEncryptionKey)
		assert.Zero(t, mock.DownloadObjectCalls)
	})
}

func TestFileDownloadFile(t *testing.T) {
	content := []byte("file contents")
	filesystem := billy.NewInMemoryFS()

	mock := &testutil.MockStorageClient{}
	file := fetchTestFile(t, mock, testutil.NewTestObjectWithContent("my-bucket", "data.bin", 2, content))
	file.c.SetFilesystem(filesystem)
	serveDownload(mock, content, nil)

	require.NoError(t, file.DownloadFile(context.Background(), "/downloads/data.bin"))

	got, err := filesystem.ReadFile("/downloads/data.bin")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFileDownloadBytes(t *testing.T) {
	content := []byte("bytes in memory")

	t.Run("verified content returned", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		file := fetchTestFile(t, mock, testutil.NewTestObjectWithContent("my-bucket", "data.bin", 2, content))
		serveDownload(mock, content, nil)

		got, err := file.DownloadBytes(context.Background())
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("bytes returned alongside verification failure", func(t *testing.T) {
		mock := &testutil.MockStorageClient{}
		file := fetchTestFile(t, mock, testutil.NewTestObjectWithContent("my-bucket", "data.bin", 2, content))
		serveDownload(mock, []byte("tampered"), nil)

		got, err := file.DownloadBytes(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsVerification(err))
		assert.Equal(t, []byte("tampered"), got)
	})
}
