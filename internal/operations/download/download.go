// Package download handles object download operations.
// This includes stream-based downloads, file downloads, and in-memory
// downloads, each followed by digest verification of the bytes written.
//
// Verification is detection, not prevention: by the time a digest mismatch
// is reported the destination already holds the (untrusted) bytes.
package download

import (
	"bytes"
	"context"
	"io"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/rs/zerolog"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcsapi"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcstypes"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/verify"
)

// Downloader handles download operations with integrity verification.
type Downloader struct {
	client   gcsapi.StorageAPI
	fs       fs.Filesystem
	log      zerolog.Logger
	verifier *verify.Verifier
}

// New creates a new Downloader instance. A nil verifier selects the
// standard digest implementations.
func New(client gcsapi.StorageAPI, filesystem fs.Filesystem, log zerolog.Logger, verifier *verify.Verifier) *Downloader {
	if verifier == nil {
		verifier = verify.New()
	}
	return &Downloader{
		client:   client,
		fs:       filesystem,
		log:      log,
		verifier: verifier,
	}
}

// Config carries the per-download settings resolved by the caller.
type Config struct {
	// Verify selects which digests to check; empty means VerifyMD5.
	Verify gcstypes.VerifyMode

	// Headers are the customer-supplied encryption headers, if any.
	Headers map[string]string

	// Generation pins the download to a specific object version; zero
	// downloads the live version.
	Generation int64

	// RemoteMD5 and RemoteCRC32C are the handle's stored base64 digests
	// the downloaded bytes are checked against.
	RemoteMD5    string
	RemoteCRC32C string
}

// Download streams the object into writer and verifies the bytes written.
// The caller's writer receives the full content even when verification
// fails afterwards.
func (d *Downloader) Download(
	ctx context.Context,
	bucket, name string,
	writer io.Writer,
	config *Config,
) (int64, error) {
	mode := config.Verify
	if mode == "" {
		mode = gcstypes.VerifyMD5
	}

	// Verification needs the payload back; tee it while streaming unless
	// the caller opted out of verification.
	var payload bytes.Buffer
	dest := writer
	if mode != gcstypes.VerifyNone {
		dest = io.MultiWriter(writer, &payload)
	}

	req := &gcsapi.DownloadObjectRequest{
		Bucket:     bucket,
		Name:       name,
		Generation: config.Generation,
		Headers:    config.Headers,
	}

	written, err := d.client.DownloadObject(ctx, req, dest)
	if err != nil {
		return written, errors.NewError("download", err).WithBucket(bucket).WithObject(name)
	}

	d.log.Debug().
		Str("bucket", bucket).
		Str("object", name).
		Int64("bytes", written).
		Str("verify", string(mode)).
		Msg("download complete")

	if err := d.verifier.Verify(mode, payload.Bytes(), config.RemoteMD5, config.RemoteCRC32C); err != nil {
		return written, errors.NewError("download", err).WithBucket(bucket).WithObject(name)
	}

	return written, nil
}

// DownloadFile streams the object to a file at path on the configured
// filesystem. The file is created if absent and truncated if present; on a
// verification failure the file keeps the downloaded bytes.
func (d *Downloader) DownloadFile(
	ctx context.Context,
	bucket, name, path string,
	config *Config,
) (int64, error) {
	file, err := d.fs.Create(path)
	if err != nil {
		return 0, errors.NewError("downloadFile", err).WithBucket(bucket).WithObject(name)
	}

	written, downloadErr := d.Download(ctx, bucket, name, file, config)
	if closeErr := file.Close(); closeErr != nil && downloadErr == nil {
		return written, errors.NewError("downloadFile", closeErr).WithBucket(bucket).WithObject(name)
	}
	return written, downloadErr
}

// DownloadBytes downloads the whole object into memory and returns it.
// On a verification failure the downloaded bytes are returned alongside
// the error, mirroring the file and stream cases.
func (d *Downloader) DownloadBytes(
	ctx context.Context,
	bucket, name string,
	config *Config,
) ([]byte, error) {
	var buf bytes.Buffer
	_, err := d.Download(ctx, bucket, name, &buf, config)
	return buf.Bytes(), err
}
