// Package gcsapi defines the storage service interface consumed by this module.
// The interface covers the object-level JSON API primitives the client needs;
// transports implement it, tests mock it. Authentication, request signing, and
// wire serialization live behind implementations of StorageAPI, not here.
package gcsapi

import (
	"context"
	"io"
	"time"
)

// StorageAPI is the set of service primitives the client operates on.
//
// Implementations must surface HTTP 404 responses as errors wrapping
// errors.ErrObjectNotFound (or ErrBucketNotFound) so callers can use
// errors.Is. All other transport failures pass through unchanged; this
// module never retries them.
type StorageAPI interface {
	// GetObject fetches object metadata without downloading content.
	// A zero Generation means the live version.
	GetObject(ctx context.Context, req *GetObjectRequest) (*Object, error)

	// DownloadObject streams object content into w and returns the number
	// of bytes written.
	DownloadObject(ctx context.Context, req *DownloadObjectRequest, w io.Writer) (int64, error)

	// DeleteObject deletes an object. Deleting an already-gone object is
	// the service's concern; the call is not pre-checked client-side.
	DeleteObject(ctx context.Context, req *DeleteObjectRequest) error

	// RewriteObject performs one step of the server-side rewrite protocol.
	// The response reports whether the rewrite completed; if not, the
	// returned token must be threaded into the next call.
	RewriteObject(ctx context.Context, req *RewriteObjectRequest) (*RewriteResponse, error)

	// InsertObject uploads a new object from r and returns its metadata.
	InsertObject(ctx context.Context, req *InsertObjectRequest, r io.Reader) (*Object, error)

	// PatchObject applies a partial metadata update to an object.
	PatchObject(ctx context.Context, req *PatchObjectRequest) (*Object, error)
}

// Object is the service's object resource record. Digest fields carry
// standard base64 of the raw digest bytes, as on the wire.
type Object struct {
	ID             string
	Bucket         string
	Name           string
	Generation     int64
	Metageneration int64
	Etag           string

	Size      int64
	MD5Hash   string
	CRC32C    string
	Created   time.Time
	Updated   time.Time
	MediaLink string
	SelfLink  string

	CacheControl       string
	ContentDisposition string
	ContentEncoding    string
	ContentLanguage    string
	ContentType        string
	StorageClass       string
	Metadata           map[string]string

	// CustomerEncryption is present when the object is encrypted with a
	// customer-supplied key.
	CustomerEncryption *CustomerEncryption
}

// CustomerEncryption describes the customer-supplied encryption applied to
// an object, as reported by the service.
type CustomerEncryption struct {
	EncryptionAlgorithm string
	KeySHA256           string
}

// ObjectPatch is a partial metadata update. Nil pointer fields are left
// untouched by the service; a pointer to the empty string clears the field.
// A nil Metadata map leaves metadata unchanged.
type ObjectPatch struct {
	CacheControl       *string
	ContentDisposition *string
	ContentEncoding    *string
	ContentLanguage    *string
	ContentType        *string
	StorageClass       *string
	Metadata           map[string]string
}

// GetObjectRequest identifies the object whose metadata to fetch.
type GetObjectRequest struct {
	Bucket     string
	Name       string
	Generation int64
}

// DownloadObjectRequest identifies the object to stream and carries any
// customer-supplied encryption headers the request needs.
type DownloadObjectRequest struct {
	Bucket     string
	Name       string
	Generation int64
	Headers    map[string]string
}

// DeleteObjectRequest identifies the object to delete.
type DeleteObjectRequest struct {
	Bucket     string
	Name       string
	Generation int64
}

// RewriteObjectRequest carries one iteration of the rewrite protocol.
// Everything except RewriteToken stays constant across the iterations of
// one logical copy.
type RewriteObjectRequest struct {
	SourceBucket      string
	SourceName        string
	DestinationBucket string
	DestinationName   string

	// Patch is the metadata mutation applied to the destination, or nil
	// when the copy changes nothing.
	Patch *ObjectPatch

	DestinationPredefinedACL string
	SourceGeneration         int64
	RewriteToken             string
	Headers                  map[string]string
}

// RewriteResponse is the service's report on one rewrite iteration.
type RewriteResponse struct {
	Done                bool
	RewriteToken        string
	TotalBytesRewritten int64
	ObjectSize          int64

	// Resource is the destination object's metadata, set when Done.
	Resource *Object
}

// InsertObjectRequest describes a new object to create from an upload stream.
type InsertObjectRequest struct {
	Bucket string
	Name   string

	CacheControl       string
	ContentDisposition string
	ContentEncoding    string
	ContentLanguage    string
	ContentType        string
	StorageClass       string
	Metadata           map[string]string

	PredefinedACL string
	Headers       map[string]string
}

// PatchObjectRequest applies Patch to the named object.
type PatchObjectRequest struct {
	Bucket string
	Name   string
	Patch  *ObjectPatch
}
