// Package gcs provides the file handle and its operations.
package gcs

import (
	"context"
	"maps"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcsapi"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcstypes"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/encryption"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/operations/rewrite"
	"github.com/input-output-hk/catalyst-forge-libs/gcs/internal/validation"
)

// File is a handle on one object generation. It holds the metadata fetched
// from the service, frozen: mutating an object's metadata goes through a
// copy or update descriptor, never through the handle's own attributes.
//
// A File is independently owned by its caller. Sharing one handle across
// goroutines is unsupported without external synchronization; every
// operation is a blocking round trip (or bounded sequence of round trips)
// to the service.
type File struct {
	c *Client

	// Identity. Reload refreshes everything else in place but never
	// rebinds the handle to a different object or client.
	bucket string
	name   string

	attrs gcstypes.FileAttrs
}

// File fetches an object's metadata and returns a handle on it.
// Use WithGeneration to address a specific version instead of the live one.
func (c *Client) File(ctx context.Context, bucket, name string, opts ...gcstypes.FileOption) (*File, error) {
	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}
	if err := validation.ValidateObjectName(name); err != nil {
		return nil, err
	}

	config := &gcstypes.FileOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	obj, err := c.service.GetObject(ctx, &gcsapi.GetObjectRequest{
		Bucket:     bucket,
		Name:       name,
		Generation: config.Generation,
	})
	if err != nil {
		return nil, errors.NewError("file", err).WithBucket(bucket).WithObject(name)
	}

	return c.fileFromObject(obj), nil
}

// fileFromObject builds a handle from a service object record.
func (c *Client) fileFromObject(obj *gcsapi.Object) *File {
	return &File{
		c:      c,
		bucket: obj.Bucket,
		name:   obj.Name,
		attrs:  gcstypes.FileAttrsFromObject(obj),
	}
}

// Bucket returns the name of the bucket containing the object.
func (f *File) Bucket() string { return f.bucket }

// Name returns the object name.
func (f *File) Name() string { return f.name }

// Generation returns the object generation this handle refers to.
func (f *File) Generation() int64 { return f.attrs.Generation }

// Attrs returns a copy of the object's metadata. The copy is deep: editing
// the returned value never touches the handle.
func (f *File) Attrs() gcstypes.FileAttrs {
	return f.attrs.Clone()
}

// Metadata returns a copy of the user metadata mapping. The fetched mapping
// itself is frozen; edits go through an update descriptor.
func (f *File) Metadata() map[string]string {
	return maps.Clone(f.attrs.Metadata)
}

// MD5 returns the base64 MD5 digest the service stored for this generation.
func (f *File) MD5() string { return f.attrs.MD5 }

// CRC32C returns the base64 CRC32C digest the service stored for this generation.
func (f *File) CRC32C() string { return f.attrs.CRC32C }

// ID returns the service's opaque object identifier.
func (f *File) ID() string { return f.attrs.ID }

// Etag returns the HTTP entity tag for this generation.
func (f *File) Etag() string { return f.attrs.Etag }

// Size returns the content length in bytes.
func (f *File) Size() int64 { return f.attrs.Size }

// CreatedAt returns the creation time of this generation.
func (f *File) CreatedAt() time.Time { return f.attrs.CreatedAt }

// UpdatedAt returns the last metadata modification time.
func (f *File) UpdatedAt() time.Time { return f.attrs.UpdatedAt }

// MediaURL returns the download link for the object's content.
func (f *File) MediaURL() string { return f.attrs.MediaURL }

// SelfURL returns the canonical link to the object resource.
func (f *File) SelfURL() string { return f.attrs.SelfURL }

// ContentType returns the stored content type.
func (f *File) ContentType() string { return f.attrs.ContentType }

// StorageClass returns the object's storage class.
func (f *File) StorageClass() string { return f.attrs.StorageClass }

// Delete deletes the object. The call is a single round trip; deleting an
// already-deleted object surfaces whatever the service reports.
func (f *File) Delete(ctx context.Context) error {
	err := f.c.service.DeleteObject(ctx, &gcsapi.DeleteObjectRequest{
		Bucket: f.bucket,
		Name:   f.name,
	})
	if err != nil {
		return errors.NewError("delete", err).WithBucket(f.bucket).WithObject(f.name)
	}
	return nil
}

// Exists reports whether the object currently exists.
// Returns false without error when the service reports not-found.
func (f *File) Exists(ctx context.Context) (bool, error) {
	_, err := f.c.service.GetObject(ctx, &gcsapi.GetObjectRequest{
		Bucket: f.bucket,
		Name:   f.name,
	})
	if err != nil {
		if errors.IsObjectNotFound(err) {
			return false, nil
		}
		return false, errors.NewError("exists", err).WithBucket(f.bucket).WithObject(f.name)
	}
	return true, nil
}

// Reload re-fetches the live object's metadata and replaces this handle's
// attributes in place. The handle identity and client binding are
// preserved, so every holder of this reference observes the update,
// including a changed generation after an overwrite.
func (f *File) Reload(ctx context.Context) error {
	obj, err := f.c.service.GetObject(ctx, &gcsapi.GetObjectRequest{
		Bucket: f.bucket,
		Name:   f.name,
	})
	if err != nil {
		return errors.NewError("reload", err).WithBucket(f.bucket).WithObject(f.name)
	}

	f.attrs = gcstypes.FileAttrsFromObject(obj)
	return nil
}

// Copy copies the object to a new name in the same bucket and returns a
// handle on the copy. The receiver is not modified.
func (f *File) Copy(ctx context.Context, destName string, opts ...gcstypes.CopyOption) (*File, error) {
	return f.CopyTo(ctx, f.bucket, destName, opts...)
}

// CopyTo copies the object to a destination bucket and name through the
// service's rewrite protocol, driving the continuation-token loop until the
// service reports completion. Returns a handle on the destination built
// from the completed rewrite's resource; the receiver is not modified.
func (f *File) CopyTo(ctx context.Context, destBucket, destName string, opts ...gcstypes.CopyOption) (*File, error) {
	config := &gcstypes.CopyOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	// Copies carry the source key on both sides so a customer-encrypted
	// object stays readable with its original key.
	return f.rewriteTo(ctx, "copy", destBucket, destName, config, config.EncryptionKey, config.EncryptionKey)
}

// Rotate re-encrypts the object in place: a same-bucket, same-name copy
// whose only effect is the key change. All three combinations are valid:
// key to key (rotation), none to key (first-time encryption), and key to
// none (back to service-managed encryption). Returns a handle on the new
// generation; the receiver is not modified.
func (f *File) Rotate(ctx context.Context, opts ...gcstypes.RotateOption) (*File, error) {
	config := &gcstypes.RotateOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	copyConfig := &gcstypes.CopyOptionConfig{}
	return f.rewriteTo(ctx, "rotate", f.bucket, f.name, copyConfig, config.SourceEncryptionKey, config.NewEncryptionKey)
}

// rewriteTo validates inputs, resolves the mutation block and encryption
// headers, and runs the rewrite loop.
func (f *File) rewriteTo(
	ctx context.Context,
	op, destBucket, destName string,
	config *gcstypes.CopyOptionConfig,
	sourceKey, destKey []byte,
) (*File, error) {
	if err := validation.ValidateBucketName(destBucket); err != nil {
		return nil, err
	}
	if err := validation.ValidateObjectName(destName); err != nil {
		return nil, err
	}
	if err := encryption.ValidateKey(sourceKey); err != nil {
		return nil, errors.NewError(op, err).WithBucket(destBucket).WithObject(destName).
			WithMessage("source encryption key must be 32 bytes")
	}
	if err := encryption.ValidateKey(destKey); err != nil {
		return nil, errors.NewError(op, err).WithBucket(destBucket).WithObject(destName).
			WithMessage("destination encryption key must be 32 bytes")
	}

	// Run the caller's mutation block against a descriptor seeded from the
	// source; an untouched block yields a nil patch and no metadata update
	// is sent.
	var patch *gcsapi.ObjectPatch
	if config.Update != nil {
		update := gcstypes.NewFileAttrsToUpdate(f.attrs)
		config.Update(update)
		patch = update.Patch()
	}

	req := &rewrite.Request{
		SourceBucket:      f.bucket,
		SourceName:        f.name,
		DestinationBucket: destBucket,
		DestinationName:   destName,
		Patch:             patch,
		PredefinedACL:     gcstypes.ResolvePredefinedACL(config.PredefinedACL),
		SourceGeneration:  config.SourceGeneration,
		Headers:           encryption.Headers(sourceKey, destKey),
	}

	obj, err := f.c.rewriter().Rewrite(ctx, req)
	if err != nil {
		return nil, err
	}

	return f.c.fileFromObject(obj), nil
}

// Update applies a metadata patch to the object without copying it. The
// block receives a descriptor seeded with the current settable attributes;
// if it changes nothing, no request is sent. On success the handle's
// attributes are refreshed in place from the patched resource.
func (f *File) Update(ctx context.Context, update func(*gcstypes.FileAttrsToUpdate)) error {
	if update == nil {
		return errors.NewError("update", errors.ErrInvalidInput).
			WithBucket(f.bucket).
			WithObject(f.name).
			WithMessage("update block cannot be nil")
	}

	descriptor := gcstypes.NewFileAttrsToUpdate(f.attrs)
	update(descriptor)
	patch := descriptor.Patch()
	if patch == nil {
		return nil
	}

	obj, err := f.c.service.PatchObject(ctx, &gcsapi.PatchObjectRequest{
		Bucket: f.bucket,
		Name:   f.name,
		Patch:  patch,
	})
	if err != nil {
		return errors.NewError("update", err).WithBucket(f.bucket).WithObject(f.name)
	}

	f.attrs = gcstypes.FileAttrsFromObject(obj)
	return nil
}
