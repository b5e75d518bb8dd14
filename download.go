// Package gcs provides the download surface of the file handle.
package gcs

import (
	"context"
	"io"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcstypes"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/encryption"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/operations/download"
)

// downloadConfig resolves download options against the handle's state.
func (f *File) downloadConfig(op string, opts []gcstypes.DownloadOption) (*download.Config, error) {
	config := &gcstypes.DownloadOptionConfig{
		Verify: gcstypes.VerifyMD5,
	}
	for _, opt := range opts {
		opt(config)
	}

	switch config.Verify {
	case gcstypes.VerifyNone, gcstypes.VerifyMD5, gcstypes.VerifyCRC32C, gcstypes.VerifyAll:
	default:
		return nil, errors.NewError(op, errors.ErrInvalidInput).
			WithBucket(f.bucket).
			WithObject(f.name).
			WithMessage("unknown verification mode " + string(config.Verify))
	}

	if err := encryption.ValidateKey(config.EncryptionKey); err != nil {
		return nil, errors.NewError(op, err).WithBucket(f.bucket).WithObject(f.name)
	}

	return &download.Config{
		Verify:       config.Verify,
		Headers:      encryption.DestinationHeaders(config.EncryptionKey),
		Generation:   f.attrs.Generation,
		RemoteMD5:    f.attrs.MD5,
		RemoteCRC32C: f.attrs.CRC32C,
	}, nil
}

// downloader builds the download worker bound to the client's current
// filesystem.
func (f *File) downloader() *download.Downloader {
	return download.New(f.c.service, f.c.filesystem(), f.c.log, nil)
}

// Download streams the object's content into w, then checks the bytes
// written against the digests the service stored for this generation.
// The default check is MD5; use WithVerify to choose a different mode.
//
// Verification is detection, not prevention: on a digest mismatch w has
// already received the content and the returned error wraps
// ErrVerification.
func (f *File) Download(ctx context.Context, w io.Writer, opts ...gcstypes.DownloadOption) error {
	config, err := f.downloadConfig("download", opts)
	if err != nil {
		return err
	}

	_, err = f.downloader().Download(ctx, f.bucket, f.name, w, config)
	return err
}

// DownloadFile downloads the object's content to a file at path on the
// client's filesystem, creating or truncating it, then verifies the bytes
// written. On a verification failure the file keeps the downloaded bytes.
func (f *File) DownloadFile(ctx context.Context, path string, opts ...gcstypes.DownloadOption) error {
	config, err := f.downloadConfig("downloadFile", opts)
	if err != nil {
		return err
	}

	_, err = f.downloader().DownloadFile(ctx, f.bucket, f.name, path, config)
	return err
}

// DownloadBytes downloads the object's content into memory, verifies it,
// and returns it. On a verification failure the downloaded bytes are
// returned alongside the error.
func (f *File) DownloadBytes(ctx context.Context, opts ...gcstypes.DownloadOption) ([]byte, error) {
	config, err := f.downloadConfig("downloadBytes", opts)
	if err != nil {
		return nil, err
	}

	return f.downloader().DownloadBytes(ctx, f.bucket, f.name, config)
}
