// Package errors provides error types and handling for object storage operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a storage operation error with context about the operation
// that failed. It wraps the underlying service or local error with additional
// context for better debugging.
type Error struct {
	// Op is the operation that failed (e.g., "copy", "download", "delete")
	Op string

	// Bucket is the bucket name (if applicable)
	Bucket string

	// Object is the object name (if applicable)
	Object string

	// Err is the underlying error from the service or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Object != "" {
		return fmt.Sprintf("gcs.%s %s/%s: %v", e.Op, e.Bucket, e.Object, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("gcs.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Object != "" {
		return fmt.Sprintf("gcs.%s object %s: %v", e.Op, e.Object, e.Err)
	}
	return fmt.Sprintf("gcs.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithObject adds object name context to an existing error.
func (e *Error) WithObject(object string) *Error {
	e.Object = object
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewObjectError creates a new Error with bucket and object context.
func NewObjectError(op, bucket, object string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Object: object,
		Err:    err,
	}
}

// Sentinel errors for common storage operation failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrObjectNotFound indicates that the requested object does not exist
	ErrObjectNotFound = errors.New("gcs: object not found")

	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("gcs: bucket not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("gcs: invalid input")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("gcs: invalid bucket name")

	// ErrInvalidObjectName indicates that the object name is invalid
	ErrInvalidObjectName = errors.New("gcs: invalid object name")

	// ErrInvalidEncryptionKey indicates that a customer-supplied encryption
	// key is not a 32-byte AES-256 key
	ErrInvalidEncryptionKey = errors.New("gcs: invalid encryption key")

	// ErrVerification indicates that a downloaded object's content did not
	// match its stored digest. The bytes have already been written to the
	// destination; the failure marks them untrusted, not absent.
	ErrVerification = errors.New("gcs: download verification failed")

	// ErrRewriteIncomplete indicates that a rewrite sequence exceeded its
	// iteration budget before the service reported completion
	ErrRewriteIncomplete = errors.New("gcs: rewrite did not complete")
)

// IsObjectNotFound checks if an error indicates that an object was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsBucketNotFound checks if an error indicates that a bucket was not found.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

// IsVerification checks if an error indicates a download integrity failure.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsVerification(err error) bool {
	return errors.Is(err, ErrVerification)
}

// IsRewriteIncomplete checks if an error indicates an exhausted rewrite loop.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsRewriteIncomplete(err error) bool {
	return errors.Is(err, ErrRewriteIncomplete)
}

// IsInvalidInput checks if an error indicates invalid input.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
