// Package gcstypes provides shared type definitions for the gcs module.
package gcstypes

import (
	"maps"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/rs/zerolog"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcsapi"
)

// VerifyMode selects which digests are checked after a download.
type VerifyMode string

// Verification modes for downloads.
const (
	// VerifyNone skips integrity verification entirely
	VerifyNone VerifyMode = "none"

	// VerifyMD5 checks the MD5 digest (the default)
	VerifyMD5 VerifyMode = "md5"

	// VerifyCRC32C checks the CRC32C digest
	VerifyCRC32C VerifyMode = "crc32c"

	// VerifyAll checks both digests; both are always computed even when
	// the first comparison already failed
	VerifyAll VerifyMode = "all"
)

// Predefined ACL values accepted by the service.
const (
	// ACLAuthenticatedRead grants project team owners full control and
	// all authenticated users read access
	ACLAuthenticatedRead = "authenticatedRead"

	// ACLOwnerFullControl grants the bucket owner full control
	ACLOwnerFullControl = "bucketOwnerFullControl"

	// ACLOwnerRead grants the bucket owner read access
	ACLOwnerRead = "bucketOwnerRead"

	// ACLPrivate grants the object owner full control and nobody else access
	ACLPrivate = "private"

	// ACLProjectPrivate grants access according to project roles
	ACLProjectPrivate = "projectPrivate"

	// ACLPublicRead grants all users read access
	ACLPublicRead = "publicRead"
)

// predefinedACLAliases maps symbolic shorthand ACL names onto the service's
// predefined ACL strings. Unrecognized values pass through as-is.
var predefinedACLAliases = map[string]string{
	"auth":               ACLAuthenticatedRead,
	"auth_read":          ACLAuthenticatedRead,
	"authenticated":      ACLAuthenticatedRead,
	"authenticated_read": ACLAuthenticatedRead,
	"owner_full":         ACLOwnerFullControl,
	"owner_read":         ACLOwnerRead,
	"private":            ACLPrivate,
	"project_private":    ACLProjectPrivate,
	"public":             ACLPublicRead,
	"public_read":        ACLPublicRead,
}

// ResolvePredefinedACL resolves a symbolic ACL alias (e.g. "public") to the
// service's predefined ACL string (e.g. "publicRead"). Values that are not
// aliases are returned unchanged so callers can pass predefined ACL strings
// directly.
func ResolvePredefinedACL(acl string) string {
	if resolved, ok := predefinedACLAliases[acl]; ok {
		return resolved
	}
	return acl
}

// FileAttrs is the metadata of one object generation as fetched from the
// service. Instances held by a file handle are treated as frozen; edits go
// through a FileAttrsToUpdate descriptor, never through a fetched FileAttrs.
type FileAttrs struct {
	// Bucket is the bucket containing the object
	Bucket string

	// Name is the object name
	Name string

	// Generation identifies this object version; it increases monotonically
	// with each overwrite
	Generation int64

	// Metageneration identifies this version's metadata revision
	Metageneration int64

	// ID is the service's opaque object identifier
	ID string

	// Etag is the HTTP entity tag for this generation
	Etag string

	// Size is the content length in bytes
	Size int64

	// MD5 is the base64-encoded MD5 digest of the content; empty for
	// composite objects
	MD5 string

	// CRC32C is the base64-encoded big-endian CRC32C (Castagnoli) digest
	CRC32C string

	// CreatedAt is the creation time of this generation
	CreatedAt time.Time

	// UpdatedAt is the last metadata modification time
	UpdatedAt time.Time

	// MediaURL is the download link for the content
	MediaURL string

	// SelfURL is the canonical link to this object resource
	SelfURL string

	// Settable metadata, applied server-side through copy or patch.
	CacheControl       string
	ContentDisposition string
	ContentEncoding    string
	ContentLanguage    string
	ContentType        string
	StorageClass       string

	// Metadata is the user-provided key/value mapping. Treat it as
	// read-only; accessors hand out copies.
	Metadata map[string]string

	// CustomerKeySHA256 is the base64 SHA-256 of the customer-supplied
	// encryption key, when the object is customer-encrypted.
	CustomerKeySHA256 string
}

// FileAttrsFromObject converts a service object record into FileAttrs.
func FileAttrsFromObject(o *gcsapi.Object) FileAttrs {
	attrs := FileAttrs{
		Bucket:             o.Bucket,
		Name:               o.Name,
		Generation:         o.Generation,
		Metageneration:     o.Metageneration,
		ID:                 o.ID,
		Etag:               o.Etag,
		Size:               o.Size,
		MD5:                o.MD5Hash,
		CRC32C:             o.CRC32C,
		CreatedAt:          o.Created,
		UpdatedAt:          o.Updated,
		MediaURL:           o.MediaLink,
		SelfURL:            o.SelfLink,
		CacheControl:       o.CacheControl,
		ContentDisposition: o.ContentDisposition,
		ContentEncoding:    o.ContentEncoding,
		ContentLanguage:    o.ContentLanguage,
		ContentType:        o.ContentType,
		StorageClass:       o.StorageClass,
		Metadata:           maps.Clone(o.Metadata),
	}
	if o.CustomerEncryption != nil {
		attrs.CustomerKeySHA256 = o.CustomerEncryption.KeySHA256
	}
	return attrs
}

// Clone returns a deep copy of the attributes.
func (a FileAttrs) Clone() FileAttrs {
	out := a
	out.Metadata = maps.Clone(a.Metadata)
	return out
}

// FileAttrsToUpdate is the outbound mutation descriptor passed to
// caller-supplied update blocks. It is seeded with the source object's
// current settable attributes; whatever the block leaves behind is diffed
// against that seed, and only changed fields are sent. A block that touches
// nothing produces no update payload at all.
type FileAttrsToUpdate struct {
	CacheControl       string
	ContentDisposition string
	ContentEncoding    string
	ContentLanguage    string
	ContentType        string
	StorageClass       string
	Metadata           map[string]string

	seed FileAttrs
}

// NewFileAttrsToUpdate seeds an update descriptor from fetched attributes.
func NewFileAttrsToUpdate(attrs FileAttrs) *FileAttrsToUpdate {
	return &FileAttrsToUpdate{
		CacheControl:       attrs.CacheControl,
		ContentDisposition: attrs.ContentDisposition,
		ContentEncoding:    attrs.ContentEncoding,
		ContentLanguage:    attrs.ContentLanguage,
		ContentType:        attrs.ContentType,
		StorageClass:       attrs.StorageClass,
		Metadata:           maps.Clone(attrs.Metadata),
		seed:               attrs.Clone(),
	}
}

// Patch diffs the descriptor against its seed and returns the partial update
// to send, or nil when nothing changed.
func (u *FileAttrsToUpdate) Patch() *gcsapi.ObjectPatch {
	patch := &gcsapi.ObjectPatch{}
	changed := false

	set := func(dst **string, current, seeded string) {
		if current != seeded {
			v := current
			*dst = &v
			changed = true
		}
	}
	set(&patch.CacheControl, u.CacheControl, u.seed.CacheControl)
	set(&patch.ContentDisposition, u.ContentDisposition, u.seed.ContentDisposition)
	set(&patch.ContentEncoding, u.ContentEncoding, u.seed.ContentEncoding)
	set(&patch.ContentLanguage, u.ContentLanguage, u.seed.ContentLanguage)
	set(&patch.ContentType, u.ContentType, u.seed.ContentType)
	set(&patch.StorageClass, u.StorageClass, u.seed.StorageClass)

	if !maps.Equal(u.Metadata, u.seed.Metadata) {
		patch.Metadata = maps.Clone(u.Metadata)
		if patch.Metadata == nil {
			patch.Metadata = map[string]string{}
		}
		changed = true
	}

	if !changed {
		return nil
	}
	return patch
}

// Configuration types for functional options

// ClientConfig holds configuration for the storage client.
type ClientConfig struct {
	// Logger receives debug events from long-running operations.
	Logger zerolog.Logger

	// Filesystem is the abstraction used for path-based downloads and
	// uploads.
	Filesystem fs.Filesystem

	// RewriteMaxIterations caps the number of rewrite calls one copy may
	// issue before failing with ErrRewriteIncomplete.
	RewriteMaxIterations int

	// NewRewriteBackOff builds the wait strategy applied between rewrite
	// iterations. A fresh BackOff is built per copy so concurrent copies
	// never share backoff state.
	NewRewriteBackOff func() backoff.BackOff
}

// FileOptionConfig holds configuration for file handle fetches via functional options.
type FileOptionConfig struct {
	Generation int64
}

// CopyOptionConfig holds configuration for copy operations via functional options.
type CopyOptionConfig struct {
	PredefinedACL    string
	SourceGeneration int64

	// EncryptionKey is the customer-supplied key of the source object. The
	// same key is applied to the copy, so a copy of a customer-encrypted
	// object stays readable with the original key.
	EncryptionKey []byte

	// Update is the caller's mutation block for the destination metadata.
	Update func(*FileAttrsToUpdate)
}

// RotateOptionConfig holds configuration for key rotation via functional options.
type RotateOptionConfig struct {
	// SourceEncryptionKey decrypts the current object; nil when the object
	// uses service-managed encryption.
	SourceEncryptionKey []byte

	// NewEncryptionKey encrypts the resulting object; nil switches the
	// object back to service-managed encryption.
	NewEncryptionKey []byte
}

// DownloadOptionConfig holds configuration for download operations via functional options.
type DownloadOptionConfig struct {
	Verify        VerifyMode
	EncryptionKey []byte
}

// UploadOptionConfig holds configuration for upload operations via functional options.
type UploadOptionConfig struct {
	CacheControl       string
	ContentDisposition string
	ContentEncoding    string
	ContentLanguage    string
	ContentType        string
	StorageClass       string
	Metadata           map[string]string
	PredefinedACL      string
	EncryptionKey      []byte
}

// Option is a functional option for configuring the storage client.
type (
	Option func(*ClientConfig)
	// FileOption is a functional option for configuring file handle fetches.
	FileOption func(*FileOptionConfig)
	// CopyOption is a functional option for configuring copy operations.
	CopyOption func(*CopyOptionConfig)
	// RotateOption is a functional option for configuring key rotation.
	RotateOption func(*RotateOptionConfig)
	// DownloadOption is a functional option for configuring download operations.
	DownloadOption func(*DownloadOptionConfig)
	// UploadOption is a functional option for configuring upload operations.
	UploadOption func(*UploadOptionConfig)
)
