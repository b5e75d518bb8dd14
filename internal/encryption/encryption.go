// Package encryption derives the customer-supplied encryption key headers
// for storage requests. The header names and value encodings are a wire
// contract: values are standard base64 (with padding) of the raw key bytes
// and of the SHA-256 digest of the key.
package encryption

import (
	"crypto/sha256"
	"encoding/base64"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/errors"
)

// Customer-supplied encryption header names.
const (
	headerAlgorithm = "x-goog-encryption-algorithm"
	headerKey       = "x-goog-encryption-key"
	headerKeySHA256 = "x-goog-encryption-key-sha256"

	headerSourceAlgorithm = "x-goog-copy-source-encryption-algorithm"
	headerSourceKey       = "x-goog-copy-source-encryption-key"
	headerSourceKeySHA256 = "x-goog-copy-source-encryption-key-sha256"

	algorithm = "AES256"

	keyLength = 32
)

// ValidateKey checks that key is usable as an AES-256 customer-supplied key.
// A nil key is valid and means "no customer encryption".
func ValidateKey(key []byte) error {
	if key == nil {
		return nil
	}
	if len(key) != keyLength {
		return errors.ErrInvalidEncryptionKey
	}
	return nil
}

// Headers derives the header set for a rewrite request from the optional
// source and destination keys. With both keys nil the result is nil, so no
// header option is attached to the request at all.
func Headers(sourceKey, destKey []byte) map[string]string {
	if sourceKey == nil && destKey == nil {
		return nil
	}
	headers := make(map[string]string, 6)
	if sourceKey != nil {
		headers[headerSourceAlgorithm] = algorithm
		headers[headerSourceKey] = base64.StdEncoding.EncodeToString(sourceKey)
		headers[headerSourceKeySHA256] = keyDigest(sourceKey)
	}
	if destKey != nil {
		headers[headerAlgorithm] = algorithm
		headers[headerKey] = base64.StdEncoding.EncodeToString(destKey)
		headers[headerKeySHA256] = keyDigest(destKey)
	}
	return headers
}

// DestinationHeaders derives the header set identifying the key of the
// object a request operates on directly, as used by downloads and uploads.
func DestinationHeaders(key []byte) map[string]string {
	return Headers(nil, key)
}

// SourceHeaders derives the copy-source header set alone.
func SourceHeaders(key []byte) map[string]string {
	return Headers(key, nil)
}

func keyDigest(key []byte) string {
	sum := sha256.Sum256(key)
	return base64.StdEncoding.EncodeToString(sum[:])
}
