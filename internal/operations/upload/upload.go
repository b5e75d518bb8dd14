// Package upload handles object creation through the service's insert
// primitive. Content streams straight through to the service; the returned
// metadata becomes the caller's file handle.
package upload

import (
	"context"
	"io"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcsapi"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcstypes"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/encryption"
)

// Uploader handles object creation.
type Uploader struct {
	client gcsapi.StorageAPI
}

// New creates a new Uploader instance.
func New(client gcsapi.StorageAPI) *Uploader {
	return &Uploader{
		client: client,
	}
}

// Upload creates an object from reader and returns its metadata.
func (u *Uploader) Upload(
	ctx context.Context,
	bucket, name string,
	reader io.Reader,
	config *gcstypes.UploadOptionConfig,
) (*gcsapi.Object, error) {
	req := &gcsapi.InsertObjectRequest{
		Bucket:             bucket,
		Name:               name,
		CacheControl:       config.CacheControl,
		ContentDisposition: config.ContentDisposition,
		ContentEncoding:    config.ContentEncoding,
		ContentLanguage:    config.ContentLanguage,
		ContentType:        config.ContentType,
		StorageClass:       config.StorageClass,
		Metadata:           config.Metadata,
		PredefinedACL:      gcstypes.ResolvePredefinedACL(config.PredefinedACL),
		Headers:            encryption.DestinationHeaders(config.EncryptionKey),
	}

	obj, err := u.client.InsertObject(ctx, req, reader)
	if err != nil {
		return nil, errors.NewError("upload", err).WithBucket(bucket).WithObject(name)
	}

	return obj, nil
}
