// Package validation provides centralized input validation logic.
// Bucket and object names are checked before any request is sent to the
// service, so malformed identifiers fail fast with typed errors instead of
// opaque transport failures.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
)

// ValidateBucketName validates that a bucket name complies with the
// service's naming rules. Returns ErrInvalidBucketName if it does not.
func ValidateBucketName(bucket string) error {
	if bucket == "" {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage("bucket name cannot be empty")
	}

	// 3-63 characters; longer names exist for dotted domain-style buckets,
	// but 63 covers every name this client should be constructing.
	if len(bucket) < 3 || len(bucket) > 63 {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage("bucket name must be between 3 and 63 characters long")
	}

	for _, char := range bucket {
		if !isValidBucketChar(char) {
			return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
				WithBucket(bucket).
				WithMessage("bucket name can only contain lowercase letters, numbers, dots, hyphens, and underscores")
		}
	}

	if !isLowerAlnum(rune(bucket[0])) || !isLowerAlnum(rune(bucket[len(bucket)-1])) {
		return errors.NewError("validateBucketName", errors.ErrInvalidBucketName).
			WithBucket(bucket).
			WithMessage("bucket name must start and end with a letter or number")
	}

	return nil
}

// ValidateObjectName validates that an object name is acceptable to the
// service. Names are UTF-8, at most 1024 bytes, and may not contain
// carriage returns or line feeds.
func ValidateObjectName(name string) error {
	if name == "" {
		return errors.NewError("validateObjectName", errors.ErrInvalidObjectName).
			WithObject(name).
			WithMessage("object name cannot be empty")
	}

	if len(name) > 1024 {
		return errors.NewError("validateObjectName", errors.ErrInvalidObjectName).
			WithObject(name).
			WithMessage("object name cannot exceed 1024 bytes")
	}

	if !utf8.ValidString(name) {
		return errors.NewError("validateObjectName", errors.ErrInvalidObjectName).
			WithObject(name).
			WithMessage("object name must be valid UTF-8")
	}

	if strings.ContainsAny(name, "\r\n") {
		return errors.NewError("validateObjectName", errors.ErrInvalidObjectName).
			WithObject(name).
			WithMessage("object name cannot contain carriage returns or line feeds")
	}

	if name == "." || name == ".." {
		return errors.NewError("validateObjectName", errors.ErrInvalidObjectName).
			WithObject(name).
			WithMessage("object name cannot be '.' or '..'")
	}

	return nil
}

// isValidBucketChar checks if a character is valid in a bucket name.
func isValidBucketChar(char rune) bool {
	return isLowerAlnum(char) || char == '.' || char == '-' || char == '_'
}

// isLowerAlnum checks for a lowercase letter or digit.
func isLowerAlnum(char rune) bool {
	return (char >= '0' && char <= '9') || (char >= 'a' && char <= 'z')
}
