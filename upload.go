// Package gcs provides the upload surface of the client.
package gcs

import (
	"bytes"
	"context"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcstypes"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/encryption"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/operations/upload"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/validation"
)

// sniffLen is how many leading bytes content-type detection may consume.
// It matches the mimetype library's own detection window.
const sniffLen = 3072

// Upload creates an object from r and returns a handle on it. When no
// content type is supplied, one is sniffed from the leading bytes of r.
func (c *Client) Upload(
	ctx context.Context,
	bucket, name string,
	r io.Reader,
	opts ...gcstypes.UploadOption,
) (*File, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}
	if err := validation.ValidateObjectName(name); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.NewError("upload", errors.ErrInvalidInput).
			WithBucket(bucket).
			WithObject(name).
			WithMessage("reader cannot be nil")
	}

	config := &gcstypes.UploadOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	if err := encryption.ValidateKey(config.EncryptionKey); err != nil {
		return nil, errors.NewError("upload", err).WithBucket(bucket).WithObject(name)
	}

	if config.ContentType == "" {
		contentType, reader, err := detectContentType(r)
		if err != nil {
			return nil, errors.NewError("upload", err).
				WithBucket(bucket).
				WithObject(name).
				WithMessage("failed to detect content type")
		}
		config.ContentType = contentType
		r = reader
	}

	obj, err := upload.New(c.service).Upload(ctx, bucket, name, r, config)
	if err != nil {
		return nil, err
	}

	return c.fileFromObject(obj), nil
}

// UploadFile creates an object from a file at path on the client's
// filesystem and returns a handle on it.
func (c *Client) UploadFile(
	ctx context.Context,
	bucket, name, path string,
	opts ...gcstypes.UploadOption,
) (*File, error) {
	file, err := c.filesystem().Open(path)
	if err != nil {
		return nil, errors.NewError("uploadFile", err).WithBucket(bucket).WithObject(name)
	}
	defer file.Close() //nolint:errcheck // read-only handle

	return c.Upload(ctx, bucket, name, file, opts...)
}

// detectContentType sniffs the content type from the leading bytes of r and
// returns a reader that replays them ahead of the rest of the stream.
func detectContentType(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, err
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	return mtype.String(), io.MultiReader(bytes.NewReader(head), r), nil
}
