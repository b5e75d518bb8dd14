// Package testutil provides test data generators.
package testutil

import (
	"crypto/md5" //nolint:gosec // test fixtures mirror the service's integrity digest
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/gcs/gcsapi"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// MD5Base64 returns the base64 MD5 digest of data, as the service reports it.
func MD5Base64(data []byte) string {
	sum := md5.Sum(data) //nolint:gosec // test fixture
	return base64.StdEncoding.EncodeToString(sum[:])
}

// CRC32CBase64 returns the base64 big-endian CRC32C digest of data.
func CRC32CBase64(data []byte) string {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], crc32.Checksum(data, castagnoli))
	return base64.StdEncoding.EncodeToString(buf[:])
}

// NewTestObject builds an object record with plausible metadata for tests.
func NewTestObject(bucket, name string, generation int64) *gcsapi.Object {
	created := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	return &gcsapi.Object{
		ID:             bucket + "/" + name + "/1",
		Bucket:         bucket,
		Name:           name,
		Generation:     generation,
		Metageneration: 1,
		Etag:           `"test-etag"`,
		Size:           11,
		Created:        created,
		Updated:        created,
		MediaLink:      "https://storage.example.com/download/b/" + bucket + "/o/" + name,
		SelfLink:       "https://storage.example.com/b/" + bucket + "/o/" + name,
		ContentType:    "text/plain",
		StorageClass:   "STANDARD",
		Metadata:       map[string]string{"env": "test"},
	}
}

// NewTestObjectWithContent builds an object record whose digests and size
// match content, so verified downloads of content succeed.
func NewTestObjectWithContent(bucket, name string, generation int64, content []byte) *gcsapi.Object {
	obj := NewTestObject(bucket, name, generation)
	obj.Size = int64(len(content))
	obj.MD5Hash = MD5Base64(content)
	obj.CRC32C = CRC32CBase64(content)
	return obj
}
