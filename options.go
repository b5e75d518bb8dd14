// Package gcs provides functional options for configuring client behavior.
// These options follow the functional options pattern for clean, composable configuration.
package gcs

import (
	"github.com/cenkalti/backoff/v4"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/rs/zerolog"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcstypes"
)

// WithLogger sets the logger receiving debug events from long-running
// operations (rewrite progress, download verification).
// Default is a no-op logger, so the library stays silent unless configured.
func WithLogger(logger zerolog.Logger) gcstypes.Option {
	return func(c *gcstypes.ClientConfig) {
		c.Logger = logger
	}
}

// WithFilesystem sets a custom filesystem implementation for file operations.
// This allows using in-memory filesystems for testing or virtual filesystems.
// If not specified, defaults to the OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) gcstypes.Option {
	return func(c *gcstypes.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithRewriteMaxIterations caps the number of service calls one copy or
// rotation may issue before failing with ErrRewriteIncomplete.
// Default is 100. Non-positive values are ignored.
func WithRewriteMaxIterations(max int) gcstypes.Option {
	return func(c *gcstypes.ClientConfig) {
		if max > 0 {
			c.RewriteMaxIterations = max
		}
	}
}

// WithRewriteBackOff sets the wait strategy applied between rewrite
// iterations. The factory is invoked once per copy so concurrent copies
// never share backoff state. Default is a constant one-second wait.
func WithRewriteBackOff(newBackOff func() backoff.BackOff) gcstypes.Option {
	return func(c *gcstypes.ClientConfig) {
		c.NewRewriteBackOff = newBackOff
	}
}

// WithGeneration pins a file handle fetch to a specific object generation
// instead of the live version.
func WithGeneration(generation int64) gcstypes.FileOption {
	return func(c *gcstypes.FileOptionConfig) {
		c.Generation = generation
	}
}

// WithPredefinedACL applies a predefined ACL to the destination of a copy.
// Symbolic aliases ("public", "auth", "owner_full", ...) resolve to the
// service's predefined ACL strings; other values pass through unchanged.
func WithPredefinedACL(acl string) gcstypes.CopyOption {
	return func(c *gcstypes.CopyOptionConfig) {
		c.PredefinedACL = acl
	}
}

// WithSourceGeneration copies a specific generation of the source object
// instead of the live version.
func WithSourceGeneration(generation int64) gcstypes.CopyOption {
	return func(c *gcstypes.CopyOptionConfig) {
		c.SourceGeneration = generation
	}
}

// WithEncryptionKey supplies the customer-supplied AES-256 key of the
// source object for a copy. The same key is applied to the destination, so
// the copy stays readable with the original key.
func WithEncryptionKey(key []byte) gcstypes.CopyOption {
	return func(c *gcstypes.CopyOptionConfig) {
		c.EncryptionKey = key
	}
}

// WithUpdate supplies a mutation block for the copy destination's metadata.
// The block receives a descriptor seeded with the source's current settable
// attributes; only fields the block changes are sent, and a block that
// changes nothing sends no metadata update at all.
func WithUpdate(update func(*gcstypes.FileAttrsToUpdate)) gcstypes.CopyOption {
	return func(c *gcstypes.CopyOptionConfig) {
		c.Update = update
	}
}

// WithSourceEncryptionKey supplies the key that decrypts the current object
// during a rotation. Omit it when the object uses service-managed encryption.
func WithSourceEncryptionKey(key []byte) gcstypes.RotateOption {
	return func(c *gcstypes.RotateOptionConfig) {
		c.SourceEncryptionKey = key
	}
}

// WithNewEncryptionKey supplies the key that encrypts the object resulting
// from a rotation. Omit it to move the object to service-managed encryption.
func WithNewEncryptionKey(key []byte) gcstypes.RotateOption {
	return func(c *gcstypes.RotateOptionConfig) {
		c.NewEncryptionKey = key
	}
}

// WithVerify selects which digests a download checks.
// Default is VerifyMD5.
func WithVerify(mode gcstypes.VerifyMode) gcstypes.DownloadOption {
	return func(c *gcstypes.DownloadOptionConfig) {
		c.Verify = mode
	}
}

// WithDecryptionKey supplies the customer-supplied AES-256 key needed to
// download a customer-encrypted object.
func WithDecryptionKey(key []byte) gcstypes.DownloadOption {
	return func(c *gcstypes.DownloadOptionConfig) {
		c.EncryptionKey = key
	}
}

// WithContentType sets the content type for upload operations.
// When unset, the content type is detected from the data or the object name.
func WithContentType(contentType string) gcstypes.UploadOption {
	return func(c *gcstypes.UploadOptionConfig) {
		c.ContentType = contentType
	}
}

// WithMetadata sets user metadata for upload operations.
func WithMetadata(metadata map[string]string) gcstypes.UploadOption {
	return func(c *gcstypes.UploadOptionConfig) {
		if c.Metadata == nil {
			c.Metadata = make(map[string]string)
		}
		for k, v := range metadata {
			c.Metadata[k] = v
		}
	}
}

// WithCacheControl sets the Cache-Control header stored with an upload.
func WithCacheControl(cacheControl string) gcstypes.UploadOption {
	return func(c *gcstypes.UploadOptionConfig) {
		c.CacheControl = cacheControl
	}
}

// WithContentDisposition sets the Content-Disposition stored with an upload.
func WithContentDisposition(contentDisposition string) gcstypes.UploadOption {
	return func(c *gcstypes.UploadOptionConfig) {
		c.ContentDisposition = contentDisposition
	}
}

// WithContentEncoding sets the Content-Encoding stored with an upload.
func WithContentEncoding(contentEncoding string) gcstypes.UploadOption {
	return func(c *gcstypes.UploadOptionConfig) {
		c.ContentEncoding = contentEncoding
	}
}

// WithContentLanguage sets the Content-Language stored with an upload.
func WithContentLanguage(contentLanguage string) gcstypes.UploadOption {
	return func(c *gcstypes.UploadOptionConfig) {
		c.ContentLanguage = contentLanguage
	}
}

// WithStorageClass sets the storage class for upload operations.
func WithStorageClass(storageClass string) gcstypes.UploadOption {
	return func(c *gcstypes.UploadOptionConfig) {
		c.StorageClass = storageClass
	}
}

// WithUploadACL applies a predefined ACL to an uploaded object. The same
// symbolic aliases as WithPredefinedACL are accepted.
func WithUploadACL(acl string) gcstypes.UploadOption {
	return func(c *gcstypes.UploadOptionConfig) {
		c.PredefinedACL = acl
	}
}

// WithUploadEncryptionKey encrypts an uploaded object with a
// customer-supplied AES-256 key.
func WithUploadEncryptionKey(key []byte) gcstypes.UploadOption {
	return func(c *gcstypes.UploadOptionConfig) {
		c.EncryptionKey = key
	}
}
